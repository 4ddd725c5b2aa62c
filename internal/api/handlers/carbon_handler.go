package handlers

import (
	"errors"

	"Receipt-Carbon-Backend/domain"
	"Receipt-Carbon-Backend/internal/api/presenters"
	"Receipt-Carbon-Backend/pkg/carbon"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	CarbonHandler interface {
		UploadReceipt(c *fiber.Ctx) error
		GetHistory(c *fiber.Ctx) error
		GetDashboard(c *fiber.Ctx) error
	}

	carbonHandler struct {
		carbonService carbon.CarbonService
		validator     *validator.Validate
	}
)

func NewCarbonHandler(carbonService carbon.CarbonService, validator *validator.Validate) CarbonHandler {
	return &carbonHandler{
		carbonService: carbonService,
		validator:     validator,
	}
}

func (h *carbonHandler) UploadReceipt(c *fiber.Ctx) error {
	req := new(domain.UploadCarbonRequest)
	req.UserID = c.FormValue("user_id")

	file, err := c.FormFile("receipt")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, domain.ErrNoFileUploaded)
	}
	req.Receipt = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	res, err := h.carbonService.UploadReceipt(c.Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoFileUploaded),
			errors.Is(err, domain.ErrUserIDRequired),
			errors.Is(err, domain.ErrParseUUID),
			errors.Is(err, domain.ErrEmptyImagePayload):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
		case errors.Is(err, domain.ErrUserNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUploadReceipt, err)
		default:
			// The underlying cause stays in the log; the caller gets a
			// uniform failure, never partial pipeline output.
			log.Errorf("receipt pipeline failed: %v", err)
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessReceipt, nil)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadReceipt)
}

func (h *carbonHandler) GetHistory(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	res, err := h.carbonService.GetHistory(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetHistory, err)
		}
		log.Errorf("history lookup failed: %v", err)
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetHistory, nil)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHistory)
}

func (h *carbonHandler) GetDashboard(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	res, err := h.carbonService.GetDashboard(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetDashboard, err)
		}
		log.Errorf("dashboard build failed: %v", err)
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetDashboard, nil)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}
