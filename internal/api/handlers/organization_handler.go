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
	OrganizationHandler interface {
		ClaimDonation(c *fiber.Ctx) error
		GetClaimedDonations(c *fiber.Ctx) error
		UpdateDonationStatus(c *fiber.Ctx) error
		RequestVolunteer(c *fiber.Ctx) error
		RequestVolunteers(c *fiber.Ctx) error
	}

	organizationHandler struct {
		donationService  donation.DonationService
		volunteerService volunteer.VolunteerService
		validator        *validator.Validate
	}
)

func NewOrganizationHandler(
	donationService donation.DonationService,
	volunteerService volunteer.VolunteerService,
	validator *validator.Validate,
) OrganizationHandler {
	return &organizationHandler{
		donationService:  donationService,
		volunteerService: volunteerService,
		validator:        validator,
	}
}

func (h *organizationHandler) ClaimDonation(c *fiber.Ctx) error {
	organizationID := c.Locals("user_id").(string)
	id := c.Params("id")

	res, err := h.donationService.ClaimDonation(c.Context(), id, organizationID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedClaimDonation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessClaimDonation)
}

func (h *organizationHandler) GetClaimedDonations(c *fiber.Ctx) error {
	organizationID := c.Locals("user_id").(string)
	status := c.Query("status")

	res, err := h.donationService.GetClaimedDonations(c.Context(), organizationID, status)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *organizationHandler) UpdateDonationStatus(c *fiber.Ctx) error {
	organizationID := c.Locals("user_id").(string)
	id := c.Params("id")

	req := new(domain.UpdateDonationStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDonationStatus, err)
	}

	res, err := h.donationService.UpdateStatusByOrganization(c.Context(), id, req.Status, organizationID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedUpdateDonationStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateDonationStatus)
}

func (h *organizationHandler) RequestVolunteer(c *fiber.Ctx) error {
	organizationID := c.Locals("user_id").(string)
	id := c.Params("id")

	req := new(domain.RequestVolunteerRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRequestVolunteer, err)
	}

	res, err := h.volunteerService.RequestVolunteer(c.Context(), id, organizationID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedRequestVolunteer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRequestVolunteer)
}

func (h *organizationHandler) RequestVolunteers(c *fiber.Ctx) error {
	organizationID := c.Locals("user_id").(string)
	id := c.Params("id")

	req := new(domain.RequestVolunteersRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRequestVolunteer, err)
	}

	res, err := h.volunteerService.RequestVolunteers(c.Context(), id, organizationID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedRequestVolunteer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRequestVolunteers)
}
