package domain

import (
	"time"
)

var (
	MessageSuccessCreateDonationCenter = "donation center created successfully"
	MessageSuccessGetDonationCenters   = "donation centers retrieved successfully"
	MessageSuccessUpdateDonationCenter = "donation center updated successfully"
	MessageSuccessDeleteDonationCenter = "donation center deleted successfully"

	MessageFailedCreateDonationCenter = "failed to create donation center"
	MessageFailedGetDonationCenters   = "failed to retrieve donation centers"
	MessageFailedUpdateDonationCenter = "failed to update donation center"
	MessageFailedDeleteDonationCenter = "failed to delete donation center"

	MessageSuccessCreateDonationOffer = "donation offer created successfully"
	MessageSuccessGetDonationOffers   = "donation offers retrieved successfully"
	MessageSuccessDeleteDonationOffer = "donation offer deleted successfully"

	MessageFailedCreateDonationOffer = "failed to create donation offer"
	MessageFailedGetDonationOffers   = "failed to retrieve donation offers"
	MessageFailedUpdateDonationOffer = "failed to update donation offer status"
	MessageFailedDeleteDonationOffer = "failed to delete donation offer"
	MessageFailedGetPickupQRCode     = "failed to generate pickup code"

	ErrDonationCenterNotFound     = NewNotFoundError("donation center not found")
	ErrDonationOfferNotFound      = NewNotFoundError("donation offer not found")
	ErrUnauthorizedDonationAccess = NewForbiddenError("unauthorized access to donation offer")
	ErrInvalidOfferStatus         = NewValidationError("invalid status, must be one of: PENDING, ACCEPTED, REJECTED, PICKED_UP, CANCELLED")
	ErrOfferWithoutItems          = NewValidationError("at least one item is required")
	ErrDeletePickedUpOffer        = NewValidationError("cannot delete a picked up donation offer")
	ErrOfferClosed                = NewValidationError("donation offer is already closed")
)

// MessageSuccessUpdateDonationOffer is the message returned after a status change.
func MessageSuccessUpdateDonationOffer(status OfferStatus) string {
	return "donation offer status updated to " + string(status)
}

type (
	CreateDonationCenterRequest struct {
		Name         string `json:"name" validate:"required,max=100"`
		City         string `json:"city" validate:"omitempty,max=50"`
		Address      string `json:"address" validate:"omitempty,max=200"`
		Phone        string `json:"phone" validate:"omitempty,max=15"`
		Email        string `json:"email" validate:"omitempty,email,max=120"`
		AcceptsItems string `json:"accepts_items" validate:"omitempty,max=100"`
		OpenHours    string `json:"open_hours" validate:"omitempty,max=50"`
	}

	UpdateDonationCenterRequest struct {
		Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
		City         *string `json:"city" validate:"omitempty,max=50"`
		Address      *string `json:"address" validate:"omitempty,max=200"`
		Phone        *string `json:"phone" validate:"omitempty,max=15"`
		Email        *string `json:"email" validate:"omitempty,email,max=120"`
		AcceptsItems *string `json:"accepts_items" validate:"omitempty,max=100"`
		OpenHours    *string `json:"open_hours" validate:"omitempty,max=50"`
	}

	DonationCenter struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		City         string    `json:"city"`
		Address      string    `json:"address"`
		Phone        string    `json:"phone"`
		Email        string    `json:"email"`
		AcceptsItems string    `json:"accepts_items"`
		OpenHours    string    `json:"open_hours"`
		CreatedAt    time.Time `json:"created_at"`
	}

	DonationOfferItemRequest struct {
		FoodID   string  `json:"food_id" validate:"required,uuid"`
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
	}

	CreateDonationOfferRequest struct {
		DonationCenterID string                     `json:"donation_center_id" validate:"omitempty,uuid"`
		Remarks          string                     `json:"remarks" validate:"omitempty,max=200"`
		Items            []DonationOfferItemRequest `json:"items" validate:"required,min=1,dive"`
	}

	UpdateDonationOfferStatusRequest struct {
		Status string `json:"status" validate:"required"`
	}

	DonationOfferItem struct {
		ID       string  `json:"id"`
		FoodID   string  `json:"food_id"`
		FoodName *string `json:"food_name"`
		Quantity float64 `json:"quantity"`
	}

	DonationOffer struct {
		ID                 string              `json:"id"`
		DonationCenterID   *string             `json:"donation_center_id"`
		DonationCenterName *string             `json:"donation_center_name"`
		Status             OfferStatus         `json:"status"`
		Remarks            string              `json:"remarks"`
		CreatedAt          time.Time           `json:"created_at"`
		PickedUpAt         *time.Time          `json:"picked_up_at,omitempty"`
		Items              []DonationOfferItem `json:"items"`
		ItemCount          int                 `json:"item_count"`
	}
)
