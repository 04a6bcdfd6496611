package donation

import (
	"context"
	"errors"
	"fmt"
	"food-tracker/domain"
	"food-tracker/entities"
	"food-tracker/internal/metrics"
	"food-tracker/internal/utils/mailing"
	"food-tracker/pkg/database"
	"food-tracker/pkg/food"
	"food-tracker/pkg/foodlog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// quantityEpsilon absorbs float drift when comparing quantities.
const quantityEpsilon = 1e-9

type (
	DonationService interface {
		CreateOffer(ctx context.Context, req domain.CreateDonationOfferRequest, userID string) (domain.DonationOffer, error)
		GetUserOffers(ctx context.Context, userID string, status string) ([]domain.DonationOffer, error)
		GetOfferByID(ctx context.Context, id string, userID string) (domain.DonationOffer, error)
		UpdateOfferStatus(ctx context.Context, id string, req domain.UpdateDonationOfferStatusRequest, userID string) (domain.DonationOffer, error)
		DeleteOffer(ctx context.Context, id string, userID string) error
		GetPickupQRCode(ctx context.Context, id string, userID string) ([]byte, error)
	}

	donationService struct {
		donationRepository DonationRepository
		foodRepository     food.FoodRepository
		foodLogService     foodlog.FoodLogService
		transactor         database.Transactor
		mailer             mailing.Mailer
		appURL             string
		now                func() time.Time
	}
)

func NewDonationService(
	donationRepository DonationRepository,
	foodRepository food.FoodRepository,
	foodLogService foodlog.FoodLogService,
	transactor database.Transactor,
	mailer mailing.Mailer,
	appURL string,
) DonationService {
	return &donationService{
		donationRepository: donationRepository,
		foodRepository:     foodRepository,
		foodLogService:     foodLogService,
		transactor:         transactor,
		mailer:             mailer,
		appURL:             strings.TrimRight(appURL, "/"),
		now:                time.Now,
	}
}

// CreateOffer validates every item in submission order against the food's
// current quantity and stops at the first violation; nothing is stored then.
// Quantities are not reserved: pickup checks them again.
func (s *donationService) CreateOffer(ctx context.Context, req domain.CreateDonationOfferRequest, userID string) (domain.DonationOffer, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.DonationOffer{}, domain.ErrParseUUID
	}
	if len(req.Items) == 0 {
		return domain.DonationOffer{}, domain.ErrOfferWithoutItems
	}

	offer := &entities.DonationOffer{
		ID:      uuid.New(),
		UserID:  userUUID,
		Status:  domain.OfferStatusPending,
		Remarks: strings.TrimSpace(req.Remarks),
	}

	var center *entities.DonationCenter
	if centerID := strings.TrimSpace(req.DonationCenterID); centerID != "" {
		parsed, err := uuid.Parse(centerID)
		if err != nil {
			return domain.DonationOffer{}, domain.ErrParseUUID
		}
		center, err = s.donationRepository.GetCenterByID(ctx, centerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.DonationOffer{}, domain.ErrDonationCenterNotFound
			}
			return domain.DonationOffer{}, err
		}
		offer.DonationCenterID = &parsed
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, item := range req.Items {
			foodID, err := uuid.Parse(item.FoodID)
			if err != nil {
				return domain.ErrParseUUID
			}
			if item.Quantity <= 0 {
				return domain.ErrInvalidQuantity
			}

			f, err := s.foodRepository.GetFoodItemByID(ctx, foodID.String())
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrFoodItemNotFound
				}
				return err
			}
			if f.UserID != userUUID {
				return domain.ErrUnauthorizedAccess
			}
			if item.Quantity-f.Quantity > quantityEpsilon {
				return domain.ErrQuantityExceedsStock
			}

			offer.Items = append(offer.Items, &entities.DonationOfferItem{
				ID:              uuid.New(),
				DonationOfferID: offer.ID,
				FoodID:          foodID,
				Quantity:        item.Quantity,
			})
		}
		return s.donationRepository.CreateOffer(ctx, offer)
	})
	if err != nil {
		return domain.DonationOffer{}, err
	}
	metrics.RecordOfferCreated()

	res, err := s.enrichOne(ctx, offer)
	if err != nil {
		return domain.DonationOffer{}, err
	}

	if center != nil {
		s.notifyCenter(center, &res)
	}
	return res, nil
}

// notifyCenter mails the new offer to the center. Failures are only logged:
// the offer is already committed.
func (s *donationService) notifyCenter(center *entities.DonationCenter, offer *domain.DonationOffer) {
	if center.Email == "" || s.mailer == nil {
		return
	}
	body, err := mailing.RenderOfferNotice(center.Name, offer)
	if err != nil {
		log.Warnf("failed to render offer notice for %s: %v", offer.ID, err)
		return
	}
	if err := s.mailer.SendMail(center.Email, "New donation offer", body); err != nil {
		log.Warnf("failed to mail offer %s to center %s: %v", offer.ID, center.ID, err)
	}
}

func (s *donationService) GetUserOffers(ctx context.Context, userID string, status string) ([]domain.DonationOffer, error) {
	var filter domain.OfferStatus
	if strings.TrimSpace(status) != "" {
		parsed, err := domain.ParseOfferStatus(status)
		if err != nil {
			return nil, err
		}
		filter = parsed
	}

	offers, err := s.donationRepository.GetUserOffers(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, offers)
}

func (s *donationService) GetOfferByID(ctx context.Context, id string, userID string) (domain.DonationOffer, error) {
	offer, err := s.getOwnedOffer(ctx, id, userID, false)
	if err != nil {
		return domain.DonationOffer{}, err
	}
	return s.enrichOne(ctx, offer)
}

// UpdateOfferStatus moves the offer to the requested status. Reaching
// PICKED_UP donates every item: each referenced food is consumed and a DONATED
// log is written, all in the same transaction as the status change. Items
// whose food no longer exists are skipped. Repeating PICKED_UP is a no-op and
// a picked up offer cannot move anywhere else.
func (s *donationService) UpdateOfferStatus(ctx context.Context, id string, req domain.UpdateDonationOfferStatusRequest, userID string) (domain.DonationOffer, error) {
	status, err := domain.ParseOfferStatus(req.Status)
	if err != nil {
		return domain.DonationOffer{}, err
	}

	var (
		offer   *entities.DonationOffer
		changed bool
		donated []*entities.UsageLog
	)
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		offer, err = s.getOwnedOffer(ctx, id, userID, true)
		if err != nil {
			return err
		}

		if offer.Status == domain.OfferStatusPickedUp {
			if status == domain.OfferStatusPickedUp {
				return nil
			}
			return domain.ErrOfferClosed
		}
		if offer.Status == status {
			return nil
		}

		if status == domain.OfferStatusPickedUp {
			donated, err = s.pickup(ctx, offer)
			if err != nil {
				return err
			}
			pickedUpAt := s.now()
			offer.PickedUpAt = &pickedUpAt
		}

		offer.Status = status
		changed = true
		return s.donationRepository.UpdateOffer(ctx, offer)
	})
	if err != nil {
		return domain.DonationOffer{}, err
	}

	if changed {
		metrics.RecordOfferTransition(string(status))
		for _, l := range donated {
			metrics.RecordUsageLog(string(l.Action), l.Quantity)
		}
	}
	return s.enrichOne(ctx, offer)
}

func (s *donationService) pickup(ctx context.Context, offer *entities.DonationOffer) ([]*entities.UsageLog, error) {
	reason := "Donated"
	if offer.DonationCenterID != nil {
		reason = fmt.Sprintf("Donated to center ID: %s", offer.DonationCenterID.String())
	}
	today := domain.DateOf(s.now())

	logs := make([]*entities.UsageLog, 0, len(offer.Items))
	for _, item := range offer.Items {
		l, err := s.foodLogService.Record(ctx, foodlog.Entry{
			UserID:     offer.UserID.String(),
			FoodID:     item.FoodID.String(),
			Action:     domain.LogActionDonated,
			Quantity:   item.Quantity,
			ActionDate: today,
			Reason:     reason,
			Remarks:    offer.Remarks,
		})
		if err != nil {
			if errors.Is(err, domain.ErrFoodItemNotFound) {
				log.Warnf("offer %s: food %s no longer exists, skipping", offer.ID, item.FoodID)
				continue
			}
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (s *donationService) DeleteOffer(ctx context.Context, id string, userID string) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		offer, err := s.getOwnedOffer(ctx, id, userID, true)
		if err != nil {
			return err
		}
		if offer.Status == domain.OfferStatusPickedUp {
			return domain.ErrDeletePickedUpOffer
		}
		return s.donationRepository.DeleteOffer(ctx, id)
	})
}

// GetPickupQRCode renders a PNG that links to the offer, for the center to scan
// at pickup. Closed offers have nothing left to pick up.
func (s *donationService) GetPickupQRCode(ctx context.Context, id string, userID string) ([]byte, error) {
	offer, err := s.getOwnedOffer(ctx, id, userID, false)
	if err != nil {
		return nil, err
	}
	if offer.Status.IsTerminal() {
		return nil, domain.ErrOfferClosed
	}
	return qrcode.Encode(fmt.Sprintf("%s/donation-offers/%s", s.appURL, offer.ID), qrcode.Medium, 256)
}

func (s *donationService) getOwnedOffer(ctx context.Context, id string, userID string, lock bool) (*entities.DonationOffer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}

	var (
		offer *entities.DonationOffer
		err   error
	)
	if lock {
		offer, err = s.donationRepository.GetOfferForUpdate(ctx, id)
	} else {
		offer, err = s.donationRepository.GetOfferByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationOfferNotFound
		}
		return nil, err
	}

	if offer.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}
	return offer, nil
}

func (s *donationService) enrichOne(ctx context.Context, offer *entities.DonationOffer) (domain.DonationOffer, error) {
	res, err := s.enrich(ctx, []*entities.DonationOffer{offer})
	if err != nil {
		return domain.DonationOffer{}, err
	}
	return res[0], nil
}

// enrich resolves center and food names with one lookup each. Missing rows
// leave the name nil.
func (s *donationService) enrich(ctx context.Context, offers []*entities.DonationOffer) ([]domain.DonationOffer, error) {
	var centerIDs, foodIDs []string
	seen := map[string]bool{}
	for _, o := range offers {
		if o.DonationCenterID != nil && !seen[o.DonationCenterID.String()] {
			seen[o.DonationCenterID.String()] = true
			centerIDs = append(centerIDs, o.DonationCenterID.String())
		}
		for _, item := range o.Items {
			if !seen[item.FoodID.String()] {
				seen[item.FoodID.String()] = true
				foodIDs = append(foodIDs, item.FoodID.String())
			}
		}
	}

	centers, err := s.donationRepository.GetCentersByIDs(ctx, centerIDs)
	if err != nil {
		return nil, err
	}
	centerNames := make(map[string]string, len(centers))
	for _, c := range centers {
		centerNames[c.ID.String()] = c.Name
	}

	foods, err := s.foodRepository.GetFoodItemsByIDs(ctx, foodIDs)
	if err != nil {
		return nil, err
	}
	foodNames := make(map[string]string, len(foods))
	for _, f := range foods {
		foodNames[f.ID.String()] = f.Name
	}

	res := make([]domain.DonationOffer, 0, len(offers))
	for _, o := range offers {
		item := domain.DonationOffer{
			ID:         o.ID.String(),
			Status:     o.Status,
			Remarks:    o.Remarks,
			CreatedAt:  o.CreatedAt,
			PickedUpAt: o.PickedUpAt,
			Items:      make([]domain.DonationOfferItem, 0, len(o.Items)),
			ItemCount:  len(o.Items),
		}
		if o.DonationCenterID != nil {
			centerID := o.DonationCenterID.String()
			item.DonationCenterID = &centerID
			if name, ok := centerNames[centerID]; ok {
				item.DonationCenterName = &name
			}
		}
		for _, oi := range o.Items {
			offerItem := domain.DonationOfferItem{
				ID:       oi.ID.String(),
				FoodID:   oi.FoodID.String(),
				Quantity: oi.Quantity,
			}
			if name, ok := foodNames[offerItem.FoodID]; ok {
				offerItem.FoodName = &name
			}
			item.Items = append(item.Items, offerItem)
		}
		res = append(res, item)
	}
	return res, nil
}
