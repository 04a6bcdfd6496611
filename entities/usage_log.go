package entities

import (
	"food-tracker/domain"
	"time"

	"github.com/google/uuid"
)

// UsageLog is an immutable consumption event. FoodID is a plain column without a
// foreign key: deleting a food item leaves its history in place.
type UsageLog struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID        `gorm:"type:uuid;index;not null" json:"user_id"`
	FoodID     uuid.UUID        `gorm:"type:uuid;index;not null" json:"food_id"`
	Action     domain.LogAction `gorm:"size:20;not null" json:"action"`
	Quantity   float64          `gorm:"type:double precision;not null" json:"quantity"`
	ActionDate time.Time        `gorm:"type:date;index;not null" json:"action_date"`
	Reason     string           `gorm:"size:100" json:"reason"`
	Remarks    string           `gorm:"size:200" json:"remarks"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

// ActionTotal is one row of the per-action usage rollup.
type ActionTotal struct {
	Action        domain.LogAction
	Count         int64
	TotalQuantity float64
}
