package entities

import (
	"github.com/google/uuid"
	"time"
)

type Conversation struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Participant1ID   uuid.UUID  `gorm:"index" json:"participant1_id"`
	Participant2ID   uuid.UUID  `gorm:"index" json:"participant2_id"`
	Participant2Type string     `gorm:"size:20" json:"participant2_type"` // donor, volunteer, organization
	LastMessage      string     `json:"last_message,omitempty"`
	LastMessageAt    *time.Time `json:"last_message_at,omitempty"`

	Participant1 *User      `gorm:"foreignKey:Participant1ID;constraint:OnDelete:CASCADE" json:"participant1,omitempty"`
	Participant2 *User      `gorm:"foreignKey:Participant2ID;constraint:OnDelete:CASCADE" json:"participant2,omitempty"`
	Messages     []*Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
	Timestamp
}

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ConversationID uuid.UUID `gorm:"index" json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	MessageText    string    `json:"message_text"`
	IsRead         bool      `gorm:"default:false" json:"is_read"`

	Conversation *Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
	Sender       *User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Timestamp
}
