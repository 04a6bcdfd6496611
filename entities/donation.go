package entities

import (
	"food-tracker/domain"
	"time"

	"github.com/google/uuid"
)

type DonationCenter struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	City         string    `gorm:"size:50;index" json:"city"`
	Address      string    `gorm:"size:200" json:"address"`
	Phone        string    `gorm:"size:15" json:"phone"`
	Email        string    `gorm:"size:120" json:"email"`
	AcceptsItems string    `gorm:"size:100" json:"accepts_items"` // e.g. "cooked,dry,dairy"
	OpenHours    string    `gorm:"size:50" json:"open_hours"`

	Timestamp
}

type DonationOffer struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID           uuid.UUID          `gorm:"type:uuid;index;not null" json:"user_id"`
	DonationCenterID *uuid.UUID         `gorm:"type:uuid" json:"donation_center_id,omitempty"`
	Status           domain.OfferStatus `gorm:"size:20;not null;default:PENDING;index" json:"status"`
	Remarks          string             `gorm:"size:200" json:"remarks"`
	PickedUpAt       *time.Time         `json:"picked_up_at,omitempty"`

	User  *User                `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Items []*DonationOfferItem `gorm:"foreignKey:DonationOfferID;constraint:OnDelete:CASCADE" json:"items"`
	Timestamp
}

// DonationOfferItem references its food by id only; the offer owns the item.
type DonationOfferItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationOfferID uuid.UUID `gorm:"type:uuid;index;not null" json:"donation_offer_id"`
	FoodID          uuid.UUID `gorm:"type:uuid;not null" json:"food_id"`
	Quantity        float64   `gorm:"type:double precision;not null" json:"quantity"`
}
