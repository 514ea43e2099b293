package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetConversations   = "conversations retrieved successfully"
	MessageSuccessGetConversation    = "conversation retrieved successfully"
	MessageSuccessCreateConversation = "conversation created successfully"
	MessageSuccessSendMessage        = "message sent successfully"
	MessageSuccessGetUnreadCount     = "unread count retrieved successfully"
	MessageSuccessGetUsers           = "users retrieved successfully"

	MessageFailedGetConversations   = "failed to retrieve conversations"
	MessageFailedCreateConversation = "failed to create conversation"
	MessageFailedSendMessage        = "failed to send message"

	ErrConversationNotFound           = errors.New("conversation not found")
	ErrUnauthorizedConversationAccess = errors.New("not authorized to access this conversation")
	ErrEmptyMessage                   = errors.New("message text is required")
	ErrInvalidParticipantType         = errors.New("invalid participant type")
	ErrParticipantRoleMismatch        = errors.New("participant role does not match participant type")
)

type (
	CreateConversationRequest struct {
		Participant2ID   string `json:"participant2_id" validate:"required,uuid"`
		Participant2Type string `json:"participant2_type" validate:"required,oneof=donor volunteer organization"`
	}

	SendMessageRequest struct {
		MessageText string `json:"message_text" validate:"required,min=1"`
	}

	Conversation struct {
		ID               string       `json:"id"`
		Participant1     *UserSummary `json:"participant1,omitempty"`
		Participant2     *UserSummary `json:"participant2,omitempty"`
		Participant2Type string       `json:"participant2_type"`
		LastMessage      string       `json:"last_message,omitempty"`
		LastMessageAt    *time.Time   `json:"last_message_at,omitempty"`
		CreatedAt        time.Time    `json:"created_at"`
	}

	Message struct {
		ID             string       `json:"id"`
		ConversationID string       `json:"conversation_id"`
		Sender         *UserSummary `json:"sender,omitempty"`
		MessageText    string       `json:"message_text"`
		IsRead         bool         `json:"is_read"`
		CreatedAt      time.Time    `json:"created_at"`
	}

	ConversationWithMessages struct {
		Conversation *Conversation `json:"conversation"`
		Messages     []*Message    `json:"messages"`
	}
)
