package donation

import (
	"context"
	"errors"
	"food-tracker/domain"
	"food-tracker/entities"
	"food-tracker/internal/utils/cache"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	centerCacheKey     = "donation-center:"
	centerListCacheKey = "donation-centers"
)

type (
	DonationCenterService interface {
		CreateCenter(ctx context.Context, req domain.CreateDonationCenterRequest) (domain.DonationCenter, error)
		GetCenters(ctx context.Context, city string) ([]domain.DonationCenter, error)
		GetCenterByID(ctx context.Context, id string) (domain.DonationCenter, error)
		UpdateCenter(ctx context.Context, id string, req domain.UpdateDonationCenterRequest) (domain.DonationCenter, error)
		DeleteCenter(ctx context.Context, id string) error
	}

	donationCenterService struct {
		donationRepository DonationRepository
		cache              cache.Cache
	}
)

func NewDonationCenterService(donationRepository DonationRepository, c cache.Cache) DonationCenterService {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &donationCenterService{
		donationRepository: donationRepository,
		cache:              c,
	}
}

func (s *donationCenterService) CreateCenter(ctx context.Context, req domain.CreateDonationCenterRequest) (domain.DonationCenter, error) {
	center := &entities.DonationCenter{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		City:         strings.TrimSpace(req.City),
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		AcceptsItems: req.AcceptsItems,
		OpenHours:    req.OpenHours,
	}
	if center.Name == "" {
		return domain.DonationCenter{}, domain.NewValidationError("name is required")
	}
	if err := s.donationRepository.CreateCenter(ctx, center); err != nil {
		return domain.DonationCenter{}, err
	}

	s.invalidate(ctx, "")
	return toDonationCenter(center), nil
}

// GetCenters serves the unfiltered directory from cache; city searches go
// straight to the database.
func (s *donationCenterService) GetCenters(ctx context.Context, city string) ([]domain.DonationCenter, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		var cached []domain.DonationCenter
		if err := s.cache.Get(ctx, centerListCacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warnf("donation center cache read failed: %v", err)
		}
	}

	centers, err := s.donationRepository.GetCenters(ctx, city)
	if err != nil {
		return nil, err
	}

	res := make([]domain.DonationCenter, 0, len(centers))
	for _, c := range centers {
		res = append(res, toDonationCenter(c))
	}

	if city == "" {
		if err := s.cache.Set(ctx, centerListCacheKey, res); err != nil {
			log.Warnf("donation center cache write failed: %v", err)
		}
	}
	return res, nil
}

func (s *donationCenterService) GetCenterByID(ctx context.Context, id string) (domain.DonationCenter, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.DonationCenter{}, domain.ErrParseUUID
	}

	var cached domain.DonationCenter
	if err := s.cache.Get(ctx, centerCacheKey+id, &cached); err == nil {
		return cached, nil
	}

	center, err := s.getCenter(ctx, id)
	if err != nil {
		return domain.DonationCenter{}, err
	}

	res := toDonationCenter(center)
	if err := s.cache.Set(ctx, centerCacheKey+id, res); err != nil {
		log.Warnf("donation center cache write failed: %v", err)
	}
	return res, nil
}

func (s *donationCenterService) UpdateCenter(ctx context.Context, id string, req domain.UpdateDonationCenterRequest) (domain.DonationCenter, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.DonationCenter{}, domain.ErrParseUUID
	}
	center, err := s.getCenter(ctx, id)
	if err != nil {
		return domain.DonationCenter{}, err
	}

	if req.Name != nil {
		center.Name = strings.TrimSpace(*req.Name)
	}
	if req.City != nil {
		center.City = strings.TrimSpace(*req.City)
	}
	if req.Address != nil {
		center.Address = *req.Address
	}
	if req.Phone != nil {
		center.Phone = *req.Phone
	}
	if req.Email != nil {
		center.Email = *req.Email
	}
	if req.AcceptsItems != nil {
		center.AcceptsItems = *req.AcceptsItems
	}
	if req.OpenHours != nil {
		center.OpenHours = *req.OpenHours
	}
	if center.Name == "" {
		return domain.DonationCenter{}, domain.NewValidationError("name is required")
	}

	if err := s.donationRepository.UpdateCenter(ctx, center); err != nil {
		return domain.DonationCenter{}, err
	}

	s.invalidate(ctx, id)
	return toDonationCenter(center), nil
}

func (s *donationCenterService) DeleteCenter(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrParseUUID
	}
	if _, err := s.getCenter(ctx, id); err != nil {
		return err
	}
	if err := s.donationRepository.DeleteCenter(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *donationCenterService) getCenter(ctx context.Context, id string) (*entities.DonationCenter, error) {
	center, err := s.donationRepository.GetCenterByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationCenterNotFound
		}
		return nil, err
	}
	return center, nil
}

// invalidate drops the cached center and the directory listing.
func (s *donationCenterService) invalidate(ctx context.Context, id string) {
	keys := []string{centerListCacheKey}
	if id != "" {
		keys = append(keys, centerCacheKey+id)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warnf("donation center cache invalidation failed: %v", err)
	}
}

func toDonationCenter(c *entities.DonationCenter) domain.DonationCenter {
	return domain.DonationCenter{
		ID:           c.ID.String(),
		Name:         c.Name,
		City:         c.City,
		Address:      c.Address,
		Phone:        c.Phone,
		Email:        c.Email,
		AcceptsItems: c.AcceptsItems,
		OpenHours:    c.OpenHours,
		CreatedAt:    c.CreatedAt,
	}
}
