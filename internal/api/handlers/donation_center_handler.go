package handlers

import (
	"food-tracker/domain"
	"food-tracker/internal/api/presenters"
	"food-tracker/pkg/donation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DonationCenterHandler interface {
		CreateCenter(c *fiber.Ctx) error
		GetCenters(c *fiber.Ctx) error
		GetCenterByID(c *fiber.Ctx) error
		UpdateCenter(c *fiber.Ctx) error
		DeleteCenter(c *fiber.Ctx) error
	}

	donationCenterHandler struct {
		centerService donation.DonationCenterService
		validator     *validator.Validate
	}
)

func NewDonationCenterHandler(centerService donation.DonationCenterService, validator *validator.Validate) DonationCenterHandler {
	return &donationCenterHandler{
		centerService: centerService,
		validator:     validator,
	}
}

func (h *donationCenterHandler) CreateCenter(c *fiber.Ctx) error {
	req := new(domain.CreateDonationCenterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonationCenter, err)
	}

	res, err := h.centerService.CreateCenter(c.Context(), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedCreateDonationCenter, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateDonationCenter)
}

func (h *donationCenterHandler) GetCenters(c *fiber.Ctx) error {
	centers, err := h.centerService.GetCenters(c.Context(), c.Query("city"))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetDonationCenters, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"centers":     centers,
		"total_count": len(centers),
	}, fiber.StatusOK, domain.MessageSuccessGetDonationCenters)
}

func (h *donationCenterHandler) GetCenterByID(c *fiber.Ctx) error {
	res, err := h.centerService.GetCenterByID(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetDonationCenters, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonationCenters)
}

func (h *donationCenterHandler) UpdateCenter(c *fiber.Ctx) error {
	req := new(domain.UpdateDonationCenterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDonationCenter, err)
	}

	res, err := h.centerService.UpdateCenter(c.Context(), c.Params("id"), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUpdateDonationCenter, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateDonationCenter)
}

func (h *donationCenterHandler) DeleteCenter(c *fiber.Ctx) error {
	if err := h.centerService.DeleteCenter(c.Context(), c.Params("id")); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedDeleteDonationCenter, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteDonationCenter)
}
