package handlers

import (
	"FoodBridge-Backend/domain"
	"FoodBridge-Backend/internal/api/presenters"
	"FoodBridge-Backend/pkg/conversation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ConversationHandler interface {
		GetUserConversations(c *fiber.Ctx) error
		GetConversationByID(c *fiber.Ctx) error
		CreateConversation(c *fiber.Ctx) error
		SendMessage(c *fiber.Ctx) error
		GetUnreadCount(c *fiber.Ctx) error
		GetAvailableUsers(c *fiber.Ctx) error
	}

	conversationHandler struct {
		conversationService conversation.ConversationService
		validator           *validator.Validate
	}
)

func NewConversationHandler(conversationService conversation.ConversationService, validator *validator.Validate) ConversationHandler {
	return &conversationHandler{
		conversationService: conversationService,
		validator:           validator,
	}
}

func (h *conversationHandler) GetUserConversations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.conversationService.GetUserConversations(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedGetConversations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetConversations)
}

func (h *conversationHandler) GetConversationByID(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	res, err := h.conversationService.GetConversationWithMessages(c.Context(), id, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedGetConversations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetConversation)
}

func (h *conversationHandler) CreateConversation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateConversationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateConversation, err)
	}

	res, created, err := h.conversationService.CreateConversation(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedCreateConversation, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return presenters.SuccessResponse(c, res, status, domain.MessageSuccessCreateConversation)
}

func (h *conversationHandler) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	req := new(domain.SendMessageRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendMessage, err)
	}

	res, err := h.conversationService.SendMessage(c.Context(), id, userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedSendMessage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSendMessage)
}

func (h *conversationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	count, err := h.conversationService.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedGetConversations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"unread_count": count}, fiber.StatusOK, domain.MessageSuccessGetUnreadCount)
}

func (h *conversationHandler) GetAvailableUsers(c *fiber.Ctx) error {
	role := c.Query("role")

	res, err := h.conversationService.GetAvailableUsers(c.Context(), role)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatusCode(err), domain.MessageFailedGetConversations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUsers)
}
