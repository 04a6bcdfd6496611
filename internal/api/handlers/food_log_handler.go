package handlers

import (
	"food-tracker/domain"
	"food-tracker/internal/api/presenters"
	"food-tracker/pkg/foodlog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FoodLogHandler interface {
		CreateFoodLog(c *fiber.Ctx) error
		GetFoodLogs(c *fiber.Ctx) error
		GetFoodLog(c *fiber.Ctx) error
		DeleteFoodLog(c *fiber.Ctx) error
	}

	foodLogHandler struct {
		foodLogService foodlog.FoodLogService
		validator      *validator.Validate
	}
)

func NewFoodLogHandler(foodLogService foodlog.FoodLogService, validator *validator.Validate) FoodLogHandler {
	return &foodLogHandler{
		foodLogService: foodLogService,
		validator:      validator,
	}
}

func (h *foodLogHandler) CreateFoodLog(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateFoodLogRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFoodLog, err)
	}

	res, err := h.foodLogService.CreateLog(c.Context(), *req, userID)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedCreateFoodLog, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateFoodLog)
}

func (h *foodLogHandler) GetFoodLogs(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	logs, err := h.foodLogService.GetLogs(c.Context(), userID, c.Query("action"), c.Query("food_id"))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetFoodLogs, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"logs":        logs,
		"total_count": len(logs),
	}, fiber.StatusOK, domain.MessageSuccessGetFoodLogs)
}

func (h *foodLogHandler) GetFoodLog(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.foodLogService.GetLogByID(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetFoodLogs, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFoodLogs)
}

func (h *foodLogHandler) DeleteFoodLog(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.foodLogService.DeleteLog(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedDeleteFoodLog, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFoodLog)
}
