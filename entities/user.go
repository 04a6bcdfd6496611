package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Email    string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"size:200;not null" json:"-"`
	Phone    string    `gorm:"size:15" json:"phone"`

	Timestamp
}
