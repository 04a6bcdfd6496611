package donation

import (
	"context"
	"food-tracker/domain"
	"food-tracker/entities"
	"food-tracker/pkg/database"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	DonationRepository interface {
		CreateCenter(ctx context.Context, center *entities.DonationCenter) error
		GetCenterByID(ctx context.Context, id string) (*entities.DonationCenter, error)
		// GetCenters matches city as a case-insensitive substring; "" lists all.
		GetCenters(ctx context.Context, city string) ([]*entities.DonationCenter, error)
		GetCentersByIDs(ctx context.Context, ids []string) ([]*entities.DonationCenter, error)
		UpdateCenter(ctx context.Context, center *entities.DonationCenter) error
		DeleteCenter(ctx context.Context, id string) error

		// CreateOffer inserts the offer together with its items.
		CreateOffer(ctx context.Context, offer *entities.DonationOffer) error
		GetOfferByID(ctx context.Context, id string) (*entities.DonationOffer, error)
		GetOfferForUpdate(ctx context.Context, id string) (*entities.DonationOffer, error)
		GetUserOffers(ctx context.Context, userID string, status domain.OfferStatus) ([]*entities.DonationOffer, error)
		UpdateOffer(ctx context.Context, offer *entities.DonationOffer) error
		DeleteOffer(ctx context.Context, id string) error
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateCenter(ctx context.Context, center *entities.DonationCenter) error {
	return database.Conn(ctx, r.db).Create(center).Error
}

func (r *donationRepository) GetCenterByID(ctx context.Context, id string) (*entities.DonationCenter, error) {
	var center entities.DonationCenter
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&center).Error; err != nil {
		return nil, err
	}
	return &center, nil
}

func (r *donationRepository) GetCenters(ctx context.Context, city string) ([]*entities.DonationCenter, error) {
	query := database.Conn(ctx, r.db)
	if city = strings.TrimSpace(city); city != "" {
		query = query.Where("city ILIKE ?", "%"+city+"%")
	}

	var centers []*entities.DonationCenter
	if err := query.Order("name asc").Find(&centers).Error; err != nil {
		return nil, err
	}
	return centers, nil
}

func (r *donationRepository) GetCentersByIDs(ctx context.Context, ids []string) ([]*entities.DonationCenter, error) {
	var centers []*entities.DonationCenter
	if len(ids) == 0 {
		return centers, nil
	}
	if err := database.Conn(ctx, r.db).Where("id IN ?", ids).Find(&centers).Error; err != nil {
		return nil, err
	}
	return centers, nil
}

func (r *donationRepository) UpdateCenter(ctx context.Context, center *entities.DonationCenter) error {
	return database.Conn(ctx, r.db).Model(&entities.DonationCenter{}).
		Where("id = ?", center.ID).
		Updates(map[string]interface{}{
			"name":          center.Name,
			"city":          center.City,
			"address":       center.Address,
			"phone":         center.Phone,
			"email":         center.Email,
			"accepts_items": center.AcceptsItems,
			"open_hours":    center.OpenHours,
		}).Error
}

func (r *donationRepository) DeleteCenter(ctx context.Context, id string) error {
	return database.Conn(ctx, r.db).Where("id = ?", id).Delete(&entities.DonationCenter{}).Error
}

func (r *donationRepository) CreateOffer(ctx context.Context, offer *entities.DonationOffer) error {
	return database.Conn(ctx, r.db).Create(offer).Error
}

func (r *donationRepository) GetOfferByID(ctx context.Context, id string) (*entities.DonationOffer, error) {
	var offer entities.DonationOffer
	if err := database.Conn(ctx, r.db).
		Preload("Items").
		Where("id = ?", id).
		First(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *donationRepository) GetOfferForUpdate(ctx context.Context, id string) (*entities.DonationOffer, error) {
	var offer entities.DonationOffer
	if err := database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&offer).Error; err != nil {
		return nil, err
	}

	if err := database.Conn(ctx, r.db).
		Where("donation_offer_id = ?", offer.ID).
		Find(&offer.Items).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *donationRepository) GetUserOffers(ctx context.Context, userID string, status domain.OfferStatus) ([]*entities.DonationOffer, error) {
	query := database.Conn(ctx, r.db).Preload("Items").Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var offers []*entities.DonationOffer
	if err := query.Order("created_at desc").Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *donationRepository) UpdateOffer(ctx context.Context, offer *entities.DonationOffer) error {
	return database.Conn(ctx, r.db).Model(&entities.DonationOffer{}).
		Where("id = ?", offer.ID).
		Updates(map[string]interface{}{
			"status":             offer.Status,
			"remarks":            offer.Remarks,
			"picked_up_at":       offer.PickedUpAt,
			"donation_center_id": offer.DonationCenterID,
		}).Error
}

// DeleteOffer removes the items first, then the offer.
func (r *donationRepository) DeleteOffer(ctx context.Context, id string) error {
	db := database.Conn(ctx, r.db)
	if err := db.Where("donation_offer_id = ?", id).Delete(&entities.DonationOfferItem{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entities.DonationOffer{}).Error
}
