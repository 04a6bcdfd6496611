package handlers

import (
	"food-tracker/domain"
	"food-tracker/internal/api/presenters"
	"food-tracker/pkg/analytics"

	"github.com/gofiber/fiber/v2"
)

type (
	AnalyticsHandler interface {
		GetAnalytics(c *fiber.Ctx) error
	}

	analyticsHandler struct {
		analyticsService analytics.AnalyticsService
	}
)

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandler{analyticsService: analyticsService}
}

func (h *analyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.analyticsService.Summarize(c.Context(), userID, c.Query("period", string(domain.PeriodOverall)))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetAnalytics, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetAnalytics)
}
