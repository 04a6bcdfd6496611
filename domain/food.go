package domain

import (
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddFoodItem     = "food item added successfully"
	MessageSuccessUpdateFoodItem  = "food item updated successfully"
	MessageSuccessDeleteFoodItem  = "food item deleted successfully"
	MessageSuccessGetFoodItems    = "food items retrieved successfully"
	MessageSuccessUpdateStatus    = "status updated successfully"
	MessageSuccessGetAlerts       = "expiry alerts retrieved successfully"
	MessageSuccessSendAlerts      = "expiry alerts sent successfully"
	MessageSuccessUploadFoodImage = "food image uploaded successfully"

	MessageFailedAddFoodItem     = "failed to add food item"
	MessageFailedUpdateFoodItem  = "failed to update food item"
	MessageFailedDeleteFoodItem  = "failed to delete food item"
	MessageFailedGetFoodItems    = "failed to retrieve food items"
	MessageFailedUpdateStatus    = "failed to update food status"
	MessageFailedGetAlerts       = "failed to retrieve expiry alerts"
	MessageFailedSendAlerts      = "failed to send expiry alerts"
	MessageFailedUploadFoodImage = "failed to upload food image"

	ErrFoodItemNotFound     = NewNotFoundError("food item not found")
	ErrInvalidQuantity      = NewValidationError("quantity must be positive")
	ErrNegativeQuantity     = NewValidationError("quantity cannot be negative")
	ErrQuantityExceedsStock = NewValidationError("quantity exceeds available food quantity")
	ErrInvalidFoodStatus    = NewValidationError("invalid status, must be AVAILABLE, USED, DONATED or WASTED")
	ErrUnauthorizedAccess   = NewForbiddenError("unauthorized access to food item")
	ErrFoodItemConflict     = NewConflictError("food item was modified by another request")
	ErrNoAlertRecipient     = NewValidationError("user has no email address for alerts")
)

type (
	AddFoodItemRequest struct {
		Name            string  `json:"name" validate:"required,max=100"`
		Category        string  `json:"category" validate:"required,max=50"`
		Quantity        float64 `json:"quantity" validate:"required,gt=0"`
		Unit            string  `json:"unit" validate:"omitempty,max=20"`
		PurchaseDate    string  `json:"purchase_date" validate:"omitempty,isodate"`
		ExpiryDate      string  `json:"expiry_date" validate:"omitempty,isodate"`
		StorageLocation string  `json:"storage_location" validate:"omitempty,max=100"`
	}

	// UpdateFoodItemRequest is a partial update; nil fields are left untouched.
	UpdateFoodItemRequest struct {
		Name            *string  `json:"name" validate:"omitempty,min=1,max=100"`
		Category        *string  `json:"category" validate:"omitempty,min=1,max=50"`
		Quantity        *float64 `json:"quantity" validate:"omitempty,gte=0"`
		Unit            *string  `json:"unit" validate:"omitempty,max=20"`
		ExpiryDate      *string  `json:"expiry_date" validate:"omitempty,isodate"`
		StorageLocation *string  `json:"storage_location" validate:"omitempty,max=100"`
		Status          *string  `json:"status"`
		WastedReason    *string  `json:"wasted_reason" validate:"omitempty,max=100"`
	}

	UpdateFoodStatusRequest struct {
		Status string `json:"status" validate:"required"`
		Reason string `json:"reason" validate:"omitempty,max=100"`
	}

	UploadFoodImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	FoodItemResponse struct {
		ID              string       `json:"id"`
		Name            string       `json:"name"`
		Category        string       `json:"category"`
		Quantity        float64      `json:"quantity"`
		Unit            string       `json:"unit"`
		PurchaseDate    *string      `json:"purchase_date"`
		ExpiryDate      *string      `json:"expiry_date"`
		StorageLocation string       `json:"storage_location,omitempty"`
		Status          FoodStatus   `json:"status"`
		ReasonOfWaste   string       `json:"reason_of_waste,omitempty"`
		ImageURL        string       `json:"image_url,omitempty"`
		ExpiryState     *ExpiryState `json:"expiry_state"`
		DaysLeft        *int         `json:"days_left"`
		CreatedAt       time.Time    `json:"created_at"`
	}

	// FoodInventoryResponse partitions a user's food into mutually exclusive buckets.
	FoodInventoryResponse struct {
		ExpiredCount   int                `json:"expired_count"`
		AvailableCount int                `json:"available_count"`
		UsedCount      int                `json:"used_count"`
		DonatedCount   int                `json:"donated_count"`
		WastedCount    int                `json:"wasted_count"`
		ExpiredItems   []FoodItemResponse `json:"expired_items"`
		AvailableItems []FoodItemResponse `json:"available_items"`
		UsedItems      []FoodItemResponse `json:"used_items"`
		DonatedItems   []FoodItemResponse `json:"donated_items"`
		WastedItems    []FoodItemResponse `json:"wasted_items"`
	}

	ExpiryAlert struct {
		ID          string      `json:"id"`
		Name        string      `json:"name"`
		Category    string      `json:"category"`
		ExpiryDate  *string     `json:"expiry_date"`
		ExpiryState ExpiryState `json:"expiry_state"`
		DaysLeft    int         `json:"days_left"`
	}

	ExpiryAlertsResponse struct {
		ExpiredCount    int           `json:"expired_count"`
		NearExpiryCount int           `json:"near_expiry_count"`
		TotalAlerts     int           `json:"total_alerts"`
		Items           []ExpiryAlert `json:"items"`
	}
)
