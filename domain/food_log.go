package domain

var (
	MessageSuccessCreateFoodLog = "food log created successfully"
	MessageSuccessGetFoodLogs   = "food logs retrieved successfully"
	MessageSuccessDeleteFoodLog = "food log deleted successfully"

	MessageFailedCreateFoodLog = "failed to create food log"
	MessageFailedGetFoodLogs   = "failed to retrieve food logs"
	MessageFailedDeleteFoodLog = "failed to delete food log"

	ErrFoodLogNotFound       = NewNotFoundError("food log not found")
	ErrInvalidLogAction      = NewValidationError("invalid action, must be USED, DONATED or WASTED")
	ErrUnauthorizedFoodLog   = NewForbiddenError("unauthorized access to food log")
	ErrActionDateInTheFuture = NewValidationError("action date cannot be in the future")
)

type (
	CreateFoodLogRequest struct {
		FoodID     string  `json:"food_id" validate:"required,uuid"`
		Action     string  `json:"action" validate:"required"`
		Quantity   float64 `json:"quantity" validate:"required,gt=0"`
		ActionDate string  `json:"action_date" validate:"omitempty,isodate"`
		Reason     string  `json:"reason" validate:"omitempty,max=100"`
		Remarks    string  `json:"remarks" validate:"omitempty,max=100"`
	}

	// FoodLogFilter narrows a log listing; zero values match everything.
	FoodLogFilter struct {
		Action LogAction
		FoodID string
	}

	FoodLogResponse struct {
		ID         string    `json:"id"`
		FoodID     string    `json:"food_id"`
		FoodName   *string   `json:"food_name"`
		Action     LogAction `json:"action"`
		Quantity   float64   `json:"quantity"`
		ActionDate string    `json:"action_date"`
		Reason     string    `json:"reason"`
		Remarks    string    `json:"remarks"`
	}
)
