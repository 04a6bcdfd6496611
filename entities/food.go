package entities

import (
	"food-tracker/domain"
	"time"

	"github.com/google/uuid"
)

type Food struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID         `gorm:"type:uuid;index;not null" json:"user_id"`
	Category        string            `gorm:"size:50;not null" json:"category"`
	Name            string            `gorm:"size:100;not null" json:"name"`
	Quantity        float64           `gorm:"type:double precision;not null;check:quantity >= 0" json:"quantity"`
	Unit            string            `gorm:"size:20" json:"unit"`
	PurchaseDate    *time.Time        `gorm:"type:date" json:"purchase_date"`
	ExpiryDate      *time.Time        `gorm:"type:date" json:"expiry_date"`
	StorageLocation string            `gorm:"size:100" json:"storage_location"`
	Status          domain.FoodStatus `gorm:"size:20;not null;default:AVAILABLE;index" json:"status"`
	ReasonOfWaste   string            `gorm:"size:100" json:"reason_of_waste"`
	ImageURL        string            `json:"image_url,omitempty"`
	// Version is bumped on every write and guards against lost updates.
	Version int `gorm:"not null;default:1" json:"version"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

type Category struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name   string    `gorm:"size:20;not null" json:"name"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
