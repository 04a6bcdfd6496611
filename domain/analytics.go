package domain

var (
	MessageSuccessGetAnalytics = "analytics retrieved successfully"
	MessageFailedGetAnalytics  = "failed to retrieve analytics"

	ErrInvalidAnalyticsPeriod = NewValidationError("invalid period, must be today, 7days, 30days or overall")
)

type (
	ActionSummary struct {
		Count         int64   `json:"count"`
		TotalQuantity float64 `json:"total_quantity"`
	}

	AnalyticsResponse struct {
		Period                 AnalyticsPeriod             `json:"period"`
		StartDate              *string                     `json:"start_date"`
		Analytics              map[LogAction]ActionSummary `json:"analytics"`
		TotalLoggedItems       int64                       `json:"total_logged_items"`
		TotalQuantityProcessed float64                     `json:"total_quantity_processed"`
	}
)
