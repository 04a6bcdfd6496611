package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"food-tracker/domain"
	"food-tracker/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is an in-memory implementation of the repository interfaces. It is safe
// for concurrent use and is intended for tests and local development. Missing
// rows are reported with gorm.ErrRecordNotFound, like the gorm repositories.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users      map[string]entities.User
	foods      map[string]entities.Food
	categories map[string]entities.Category
	logs       map[string]entities.UsageLog
	centers    map[string]entities.DonationCenter
	offers     map[string]entities.DonationOffer
	offerItems map[string][]entities.DonationOfferItem

	now func() time.Time
}

type txKey struct{}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:      make(map[string]entities.User),
		foods:      make(map[string]entities.Food),
		categories: make(map[string]entities.Category),
		logs:       make(map[string]entities.UsageLog),
		centers:    make(map[string]entities.DonationCenter),
		offers:     make(map[string]entities.DonationOffer),
		offerItems: make(map[string][]entities.DonationOfferItem),
		now:        time.Now,
	}
}

// SetClock replaces the clock used for created_at stamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Transactor ------------------------------------------------------------------

// WithinTransaction serializes transactions and restores a snapshot of every
// table when fn fails. Nested calls join the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	defer func() {
		if r := recover(); r != nil {
			s.restore(snap)
			panic(r)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, true))
}

type snapshot struct {
	users      map[string]entities.User
	foods      map[string]entities.Food
	categories map[string]entities.Category
	logs       map[string]entities.UsageLog
	centers    map[string]entities.DonationCenter
	offers     map[string]entities.DonationOffer
	offerItems map[string][]entities.DonationOfferItem
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make(map[string][]entities.DonationOfferItem, len(s.offerItems))
	for k, v := range s.offerItems {
		items[k] = append([]entities.DonationOfferItem(nil), v...)
	}
	return snapshot{
		users:      copyMap(s.users),
		foods:      copyMap(s.foods),
		categories: copyMap(s.categories),
		logs:       copyMap(s.logs),
		centers:    copyMap(s.centers),
		offers:     copyMap(s.offers),
		offerItems: items,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = snap.users
	s.foods = snap.foods
	s.categories = snap.categories
	s.logs = snap.logs
	s.centers = snap.centers
	s.offers = snap.offers
	s.offerItems = snap.offerItems
}

func copyMap[T any](in map[string]T) map[string]T {
	out := make(map[string]T, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *Store) stamp(ts *entities.Timestamp) {
	now := s.now().UTC()
	if ts.CreatedAt.IsZero() {
		ts.CreatedAt = now
	}
	ts.UpdatedAt = now
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// Users -----------------------------------------------------------------------

func (s *Store) RegisterUser(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate email %s", user.Email)
		}
	}
	ensureID(&user.ID)
	s.stamp(&user.Timestamp)
	s.users[user.ID.String()] = *user
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (s *Store) UpdateUser(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[user.ID.String()]
	if !ok {
		return nil
	}
	u.Name = user.Name
	u.Phone = user.Phone
	s.stamp(&u.Timestamp)
	s.users[u.ID.String()] = u
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

// Food ------------------------------------------------------------------------

func (s *Store) AddFoodItem(_ context.Context, food *entities.Food) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ensureID(&food.ID)
	if food.Version == 0 {
		food.Version = 1
	}
	if food.Status == "" {
		food.Status = domain.FoodStatusAvailable
	}
	s.stamp(&food.Timestamp)
	s.foods[food.ID.String()] = *food
	return nil
}

func (s *Store) GetFoodItemByID(_ context.Context, id string) (*entities.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.foods[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &f, nil
}

// GetFoodItemForUpdate relies on WithinTransaction serializing writers.
func (s *Store) GetFoodItemForUpdate(ctx context.Context, id string) (*entities.Food, error) {
	return s.GetFoodItemByID(ctx, id)
}

func (s *Store) GetFoodItemsByIDs(_ context.Context, ids []string) ([]*entities.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	foods := []*entities.Food{}
	for _, id := range ids {
		if f, ok := s.foods[id]; ok {
			foods = append(foods, &f)
		}
	}
	return foods, nil
}

func (s *Store) GetFoodItems(_ context.Context, userID string) ([]*entities.Food, error) {
	return s.filterFoods(func(f entities.Food) bool { return f.UserID.String() == userID }), nil
}

func (s *Store) GetFoodItemsByStatus(_ context.Context, userID string, status domain.FoodStatus) ([]*entities.Food, error) {
	return s.filterFoods(func(f entities.Food) bool {
		return f.UserID.String() == userID && f.Status == status
	}), nil
}

func (s *Store) filterFoods(keep func(entities.Food) bool) []*entities.Food {
	s.mu.RLock()
	defer s.mu.RUnlock()

	foods := []*entities.Food{}
	for _, f := range s.foods {
		if keep(f) {
			f := f
			foods = append(foods, &f)
		}
	}
	sort.SliceStable(foods, func(i, j int) bool {
		return foods[i].CreatedAt.Before(foods[j].CreatedAt)
	})
	return foods
}

func (s *Store) UpdateFoodItem(_ context.Context, food *entities.Food) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.foods[food.ID.String()]
	if !ok || current.Version != food.Version {
		return domain.ErrFoodItemConflict
	}
	if food.Quantity < 0 {
		return fmt.Errorf("check constraint violated: quantity %v < 0", food.Quantity)
	}

	food.Version++
	s.stamp(&food.Timestamp)
	s.foods[food.ID.String()] = *food
	return nil
}

func (s *Store) DeleteFoodItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.foods, id)
	return nil
}

// Categories ------------------------------------------------------------------

func (s *Store) CreateCategory(_ context.Context, category *entities.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ensureID(&category.ID)
	s.categories[category.ID.String()] = *category
	return nil
}

func (s *Store) GetCategoryByID(_ context.Context, id string) (*entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (s *Store) GetCategories(_ context.Context, userID string) ([]*entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := []*entities.Category{}
	for _, c := range s.categories {
		if c.UserID.String() == userID {
			c := c
			categories = append(categories, &c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.categories, id)
	return nil
}

// Usage logs ------------------------------------------------------------------

func (s *Store) CreateLog(_ context.Context, log *entities.UsageLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ensureID(&log.ID)
	s.stamp(&log.Timestamp)
	s.logs[log.ID.String()] = *log
	return nil
}

func (s *Store) GetLogByID(_ context.Context, id string) (*entities.UsageLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.logs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (s *Store) GetLogs(_ context.Context, userID string, filter domain.FoodLogFilter) ([]*entities.UsageLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := []*entities.UsageLog{}
	for _, l := range s.logs {
		if l.UserID.String() != userID {
			continue
		}
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.FoodID != "" && l.FoodID.String() != filter.FoodID {
			continue
		}
		l := l
		logs = append(logs, &l)
	}
	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].ActionDate.Equal(logs[j].ActionDate) {
			return logs[i].ActionDate.After(logs[j].ActionDate)
		}
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
	return logs, nil
}

func (s *Store) DeleteLog(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.logs, id)
	return nil
}

// SummarizeLogs groups a user's logs by action, optionally from since onward.
func (s *Store) SummarizeLogs(_ context.Context, userID string, since *time.Time) ([]entities.ActionTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := map[domain.LogAction]*entities.ActionTotal{}
	for _, l := range s.logs {
		if l.UserID.String() != userID {
			continue
		}
		if since != nil && l.ActionDate.Before(*since) {
			continue
		}
		t, ok := totals[l.Action]
		if !ok {
			t = &entities.ActionTotal{Action: l.Action}
			totals[l.Action] = t
		}
		t.Count++
		t.TotalQuantity += l.Quantity
	}

	out := make([]entities.ActionTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Action < out[j].Action })
	return out, nil
}

// Donation centers ------------------------------------------------------------

func (s *Store) CreateCenter(_ context.Context, center *entities.DonationCenter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ensureID(&center.ID)
	s.stamp(&center.Timestamp)
	s.centers[center.ID.String()] = *center
	return nil
}

func (s *Store) GetCenterByID(_ context.Context, id string) (*entities.DonationCenter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.centers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (s *Store) GetCenters(_ context.Context, city string) ([]*entities.DonationCenter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	city = strings.ToLower(strings.TrimSpace(city))
	centers := []*entities.DonationCenter{}
	for _, c := range s.centers {
		if city != "" && !strings.Contains(strings.ToLower(c.City), city) {
			continue
		}
		c := c
		centers = append(centers, &c)
	}
	sort.Slice(centers, func(i, j int) bool { return centers[i].Name < centers[j].Name })
	return centers, nil
}

func (s *Store) GetCentersByIDs(_ context.Context, ids []string) ([]*entities.DonationCenter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	centers := []*entities.DonationCenter{}
	for _, id := range ids {
		if c, ok := s.centers[id]; ok {
			centers = append(centers, &c)
		}
	}
	return centers, nil
}

func (s *Store) UpdateCenter(_ context.Context, center *entities.DonationCenter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.centers[center.ID.String()]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.stamp(&center.Timestamp)
	s.centers[center.ID.String()] = *center
	return nil
}

func (s *Store) DeleteCenter(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.centers, id)
	return nil
}

// Donation offers -------------------------------------------------------------

func (s *Store) CreateOffer(_ context.Context, offer *entities.DonationOffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ensureID(&offer.ID)
	if offer.Status == "" {
		offer.Status = domain.OfferStatusPending
	}
	s.stamp(&offer.Timestamp)

	items := make([]entities.DonationOfferItem, 0, len(offer.Items))
	for _, item := range offer.Items {
		ensureID(&item.ID)
		item.DonationOfferID = offer.ID
		items = append(items, *item)
	}

	stored := *offer
	stored.Items = nil
	s.offers[offer.ID.String()] = stored
	s.offerItems[offer.ID.String()] = items
	return nil
}

func (s *Store) GetOfferByID(_ context.Context, id string) (*entities.DonationOffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.offers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s.withItemsLocked(o), nil
}

func (s *Store) GetOfferForUpdate(ctx context.Context, id string) (*entities.DonationOffer, error) {
	return s.GetOfferByID(ctx, id)
}

func (s *Store) GetUserOffers(_ context.Context, userID string, status domain.OfferStatus) ([]*entities.DonationOffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	offers := []*entities.DonationOffer{}
	for _, o := range s.offers {
		if o.UserID.String() != userID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		offers = append(offers, s.withItemsLocked(o))
	}
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].CreatedAt.After(offers[j].CreatedAt)
	})
	return offers, nil
}

func (s *Store) withItemsLocked(o entities.DonationOffer) *entities.DonationOffer {
	stored := s.offerItems[o.ID.String()]
	o.Items = make([]*entities.DonationOfferItem, 0, len(stored))
	for _, item := range stored {
		item := item
		o.Items = append(o.Items, &item)
	}
	return &o
}

func (s *Store) UpdateOffer(_ context.Context, offer *entities.DonationOffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.offers[offer.ID.String()]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	current.Status = offer.Status
	current.Remarks = offer.Remarks
	current.PickedUpAt = offer.PickedUpAt
	current.DonationCenterID = offer.DonationCenterID
	s.stamp(&current.Timestamp)
	s.offers[offer.ID.String()] = current
	return nil
}

func (s *Store) DeleteOffer(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.offerItems, id)
	delete(s.offers, id)
	return nil
}

// OfferItemCount reports how many items are stored for an offer.
func (s *Store) OfferItemCount(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.offerItems[id])
}
