package handlers

import (
	"FoodBridge-Backend/domain"
	"FoodBridge-Backend/internal/api/presenters"
	"FoodBridge-Backend/pkg/donation"
	"FoodBridge-Backend/pkg/volunteer"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	VolunteerHandler interface {
		GetVolunteerRequests(c *fiber.Ctx) error
		RespondToRequest(c *fiber.Ctx) error
		GetAssignedDonations(c *fiber.Ctx) error
		CompleteDonation(c *fiber.Ctx) error
	}

	volunteerHandler struct {
		volunteerService volunteer.VolunteerService
		donationService  donation.DonationService
		validator        *validator.Validate
	}
)

func NewVolunteerHandler(
	volunteerService volunteer.VolunteerService,
	donationService donation.DonationService,
	validator *validator.Validate,
) VolunteerHandler {
	return &volunteerHandler{
		volunteerService: volunteerService,
		donationService:  donationService,
		validator:        validator,
	}
}

func (h *volunteerHandler) GetVolunteerRequests(c *fiber.Ctx) error {
	volunteerID := c.Locals("user_id").(string)
	status := c.Query("status")

	res, err := h.volunteerService.GetVolunteerRequests(c.Context(), volunteerID, status)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedGetRequests, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRequests)
}

func (h *volunteerHandler) RespondToRequest(c *fiber.Ctx) error {
	volunteerID := c.Locals("user_id").(string)
	id := c.Params("id")

	req := new(domain.RespondRequestRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRespondRequest, err)
	}

	res, err := h.volunteerService.RespondToRequest(c.Context(), id, volunteerID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedRespondRequest, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRespondRequest)
}

func (h *volunteerHandler) GetAssignedDonations(c *fiber.Ctx) error {
	volunteerID := c.Locals("user_id").(string)
	status := c.Query("status")

	res, err := h.donationService.GetAssignedDonations(c.Context(), volunteerID, status)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *volunteerHandler) CompleteDonation(c *fiber.Ctx) error {
	volunteerID := c.Locals("user_id").(string)
	id := c.Params("id")

	res, err := h.donationService.CompleteDonation(c.Context(), id, volunteerID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedUpdateDonationStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCompleteDonation)
}
