package conversation

import (
	"FoodBridge-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ConversationRepository interface {
		FindOrCreateConversation(ctx context.Context, participant1ID, participant2ID uuid.UUID, participant2Type string) (*entities.Conversation, bool, error)
		GetUserConversations(ctx context.Context, userID string) ([]*entities.Conversation, error)
		GetConversationByID(ctx context.Context, id string) (*entities.Conversation, error)
		GetMessages(ctx context.Context, conversationID string) ([]*entities.Message, error)
		CreateMessage(ctx context.Context, message *entities.Message) error
		MarkMessagesRead(ctx context.Context, conversationID string, readerID uuid.UUID) error
		CountUnread(ctx context.Context, userID string) (int64, error)
	}

	conversationRepository struct {
		db *gorm.DB
	}
)

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// FindOrCreateConversation keys on the unordered participant pair: the
// same two users always share one conversation, whoever initiated it.
// The bool reports whether a new conversation was created.
func (r *conversationRepository) FindOrCreateConversation(ctx context.Context, participant1ID, participant2ID uuid.UUID, participant2Type string) (*entities.Conversation, bool, error) {
	var conversation entities.Conversation
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where(
			"(participant1_id = ? AND participant2_id = ?) OR (participant1_id = ? AND participant2_id = ?)",
			participant1ID, participant2ID, participant2ID, participant1ID,
		).First(&conversation).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			conversation = entities.Conversation{
				ID:               uuid.New(),
				Participant1ID:   participant1ID,
				Participant2ID:   participant2ID,
				Participant2Type: participant2Type,
			}
			created = true
			return tx.Create(&conversation).Error
		}
		return err
	})
	if err != nil {
		return nil, false, err
	}

	full, err := r.GetConversationByID(ctx, conversation.ID.String())
	if err != nil {
		return nil, false, err
	}
	return full, created, nil
}

func (r *conversationRepository) GetUserConversations(ctx context.Context, userID string) ([]*entities.Conversation, error) {
	var conversations []*entities.Conversation
	if err := r.db.WithContext(ctx).
		Preload("Participant1").
		Preload("Participant2").
		Where("participant1_id = ? OR participant2_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *conversationRepository) GetConversationByID(ctx context.Context, id string) (*entities.Conversation, error) {
	var conversation entities.Conversation
	if err := r.db.WithContext(ctx).
		Preload("Participant1").
		Preload("Participant2").
		Where("id = ?", id).
		First(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) GetMessages(ctx context.Context, conversationID string) ([]*entities.Message, error) {
	var messages []*entities.Message
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateMessage appends to the log and refreshes the conversation's
// denormalized last-message cache in the same transaction.
func (r *conversationRepository) CreateMessage(ctx context.Context, message *entities.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&entities.Conversation{}).
			Where("id = ?", message.ConversationID).
			Updates(map[string]interface{}{
				"last_message":    message.MessageText,
				"last_message_at": now,
			}).Error
	})
}

func (r *conversationRepository) MarkMessagesRead(ctx context.Context, conversationID string, readerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error
}

func (r *conversationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("(conversations.participant1_id = ? OR conversations.participant2_id = ?)", userID, userID).
		Where("messages.sender_id <> ? AND messages.is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
