package conversation

import (
	"FoodBridge-Backend/domain"
	"FoodBridge-Backend/entities"
	"FoodBridge-Backend/pkg/user"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ConversationService interface {
		GetUserConversations(ctx context.Context, userID string) ([]*domain.Conversation, error)

		// GetConversationWithMessages returns the thread and, as a side
		// effect of the read, marks the other participant's unread
		// messages as read.
		GetConversationWithMessages(ctx context.Context, id string, userID string) (*domain.ConversationWithMessages, error)

		CreateConversation(ctx context.Context, req domain.CreateConversationRequest, userID string) (*domain.Conversation, bool, error)
		SendMessage(ctx context.Context, conversationID string, senderID string, req domain.SendMessageRequest) (*domain.Message, error)
		GetUnreadCount(ctx context.Context, userID string) (int64, error)
		GetAvailableUsers(ctx context.Context, role string) ([]*domain.UserSummary, error)
	}

	conversationService struct {
		conversationRepository ConversationRepository
		userRepository         user.UserRepository
	}
)

func NewConversationService(conversationRepository ConversationRepository, userRepository user.UserRepository) ConversationService {
	return &conversationService{
		conversationRepository: conversationRepository,
		userRepository:         userRepository,
	}
}

func (s *conversationService) GetUserConversations(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	conversations, err := s.conversationRepository.GetUserConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Conversation, 0, len(conversations))
	for _, c := range conversations {
		result = append(result, toConversationDomain(c))
	}
	return result, nil
}

func (s *conversationService) GetConversationWithMessages(ctx context.Context, id string, userID string) (*domain.ConversationWithMessages, error) {
	conversation, err := s.conversationRepository.GetConversationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}

	if !isParticipant(conversation, userID) {
		return nil, domain.ErrUnauthorizedConversationAccess
	}

	messages, err := s.conversationRepository.GetMessages(ctx, id)
	if err != nil {
		return nil, err
	}

	readerUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if err := s.conversationRepository.MarkMessagesRead(ctx, id, readerUUID); err != nil {
		return nil, err
	}

	result := &domain.ConversationWithMessages{
		Conversation: toConversationDomain(conversation),
		Messages:     make([]*domain.Message, 0, len(messages)),
	}
	for _, m := range messages {
		result.Messages = append(result.Messages, toMessageDomain(m))
	}
	return result, nil
}

func (s *conversationService) CreateConversation(ctx context.Context, req domain.CreateConversationRequest, userID string) (*domain.Conversation, bool, error) {
	if req.Participant2Type != domain.RoleDonor &&
		req.Participant2Type != domain.RoleVolunteer &&
		req.Participant2Type != domain.RoleOrganization {
		return nil, false, domain.ErrInvalidParticipantType
	}

	participant2, err := s.userRepository.GetUserByID(ctx, req.Participant2ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, domain.ErrUserNotFound
		}
		return nil, false, err
	}

	if participant2.Role != req.Participant2Type {
		return nil, false, domain.ErrParticipantRoleMismatch
	}

	participant1UUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, false, domain.ErrParseUUID
	}

	conversation, created, err := s.conversationRepository.FindOrCreateConversation(
		ctx, participant1UUID, participant2.ID, req.Participant2Type)
	if err != nil {
		return nil, false, err
	}

	return toConversationDomain(conversation), created, nil
}

func (s *conversationService) SendMessage(ctx context.Context, conversationID string, senderID string, req domain.SendMessageRequest) (*domain.Message, error) {
	if strings.TrimSpace(req.MessageText) == "" {
		return nil, domain.ErrEmptyMessage
	}

	conversation, err := s.conversationRepository.GetConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}

	if !isParticipant(conversation, senderID) {
		return nil, domain.ErrUnauthorizedConversationAccess
	}

	senderUUID, err := uuid.Parse(senderID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	message := &entities.Message{
		ID:             uuid.New(),
		ConversationID: conversation.ID,
		SenderID:       senderUUID,
		MessageText:    req.MessageText,
	}

	if err := s.conversationRepository.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	return toMessageDomain(message), nil
}

func (s *conversationService) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.conversationRepository.CountUnread(ctx, userID)
}

func (s *conversationService) GetAvailableUsers(ctx context.Context, role string) ([]*domain.UserSummary, error) {
	roles := []string{domain.RoleVolunteer, domain.RoleOrganization}
	if role == domain.RoleVolunteer || role == domain.RoleOrganization {
		roles = []string{role}
	}

	users, err := s.userRepository.GetUsersByRoles(ctx, roles)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.UserSummary, 0, len(users))
	for _, u := range users {
		result = append(result, user.UserSummaryOf(u))
	}
	return result, nil
}

func isParticipant(conversation *entities.Conversation, userID string) bool {
	return conversation.Participant1ID.String() == userID || conversation.Participant2ID.String() == userID
}

func toConversationDomain(conversation *entities.Conversation) *domain.Conversation {
	return &domain.Conversation{
		ID:               conversation.ID.String(),
		Participant1:     user.UserSummaryOf(conversation.Participant1),
		Participant2:     user.UserSummaryOf(conversation.Participant2),
		Participant2Type: conversation.Participant2Type,
		LastMessage:      conversation.LastMessage,
		LastMessageAt:    conversation.LastMessageAt,
		CreatedAt:        conversation.CreatedAt,
	}
}

func toMessageDomain(message *entities.Message) *domain.Message {
	return &domain.Message{
		ID:             message.ID.String(),
		ConversationID: message.ConversationID.String(),
		Sender:         user.UserSummaryOf(message.Sender),
		MessageText:    message.MessageText,
		IsRead:         message.IsRead,
		CreatedAt:      message.CreatedAt,
	}
}
