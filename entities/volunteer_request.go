package entities

import (
	"github.com/google/uuid"
)

type VolunteerRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationID     uuid.UUID `gorm:"index;uniqueIndex:idx_donation_volunteer" json:"donation_id"`
	OrganizationID uuid.UUID `gorm:"index" json:"organization_id"`
	VolunteerID    uuid.UUID `gorm:"index;uniqueIndex:idx_donation_volunteer" json:"volunteer_id"`
	Status         string    `gorm:"size:20;default:pending" json:"status"` // pending, accepted, rejected
	Message        string    `json:"message,omitempty"`

	Donation     *Donation `gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE" json:"donation,omitempty"`
	Organization *User     `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Volunteer    *User     `gorm:"foreignKey:VolunteerID" json:"volunteer,omitempty"`
	Timestamp
}
