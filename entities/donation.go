package entities

import (
	"github.com/google/uuid"
	"time"
)

type Donation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonorID        uuid.UUID  `json:"donor_id"`
	Title          string     `gorm:"size:100" json:"title"`
	Description    string     `json:"description,omitempty"`
	DonationType   string     `gorm:"size:50" json:"donation_type"` // FOOD, CLOTHES, MEDICINE, OTHER
	Quantity       int        `json:"quantity"`
	Unit           string     `gorm:"size:20" json:"unit"`
	ExpiryDate     time.Time  `json:"expiry_date"`
	PickupAddress  string     `json:"pickup_address"`
	PickupTime     *time.Time `json:"pickup_time,omitempty"`
	Status         string     `gorm:"size:20;default:available" json:"status"` // available, claiming, in_transit, completed, cancelled, expired
	VolunteerID    *uuid.UUID `json:"volunteer_id,omitempty"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	VolunteerCount int        `gorm:"default:0" json:"volunteer_count"`
	ImageURL       string     `json:"image_url,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`

	Donor        *User `gorm:"foreignKey:DonorID;constraint:OnDelete:CASCADE" json:"donor,omitempty"`
	Volunteer    *User `gorm:"foreignKey:VolunteerID;constraint:OnDelete:SET NULL" json:"volunteer,omitempty"`
	Organization *User `gorm:"foreignKey:OrganizationID;constraint:OnDelete:SET NULL" json:"organization,omitempty"`

	VolunteerRequests []*VolunteerRequest `gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE" json:"volunteer_requests,omitempty"`
	Timestamp
}
