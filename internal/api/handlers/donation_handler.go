package handlers

import (
	"food-tracker/domain"
	"food-tracker/internal/api/presenters"
	"food-tracker/pkg/donation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		CreateOffer(c *fiber.Ctx) error
		GetUserOffers(c *fiber.Ctx) error
		GetOfferByID(c *fiber.Ctx) error
		UpdateOfferStatus(c *fiber.Ctx) error
		DeleteOffer(c *fiber.Ctx) error
		GetPickupQRCode(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		validator       *validator.Validate
	}
)

func NewDonationHandler(donationService donation.DonationService, validator *validator.Validate) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		validator:       validator,
	}
}

func (h *donationHandler) CreateOffer(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateDonationOfferRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if len(req.Items) == 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonationOffer, domain.ErrOfferWithoutItems)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonationOffer, err)
	}

	res, err := h.donationService.CreateOffer(c.Context(), *req, userID)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedCreateDonationOffer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateDonationOffer)
}

func (h *donationHandler) GetUserOffers(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	offers, err := h.donationService.GetUserOffers(c.Context(), userID, c.Query("status"))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetDonationOffers, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"offers":      offers,
		"total_count": len(offers),
	}, fiber.StatusOK, domain.MessageSuccessGetDonationOffers)
}

func (h *donationHandler) GetOfferByID(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.donationService.GetOfferByID(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetDonationOffers, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonationOffers)
}

func (h *donationHandler) UpdateOfferStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateDonationOfferStatusRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDonationOffer, err)
	}

	res, err := h.donationService.UpdateOfferStatus(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUpdateDonationOffer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateDonationOffer(res.Status))
}

func (h *donationHandler) DeleteOffer(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.donationService.DeleteOffer(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedDeleteDonationOffer, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteDonationOffer)
}

func (h *donationHandler) GetPickupQRCode(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	png, err := h.donationService.GetPickupQRCode(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetPickupQRCode, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Status(fiber.StatusOK).Send(png)
}
