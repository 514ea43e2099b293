package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	DonationStatusAvailable = "available"
	DonationStatusClaiming  = "claiming"
	DonationStatusInTransit = "in_transit"
	DonationStatusCompleted = "completed"
	DonationStatusCancelled = "cancelled"
	DonationStatusExpired   = "expired"

	DonationTypeFood     = "FOOD"
	DonationTypeClothes  = "CLOTHES"
	DonationTypeMedicine = "MEDICINE"
	DonationTypeOther    = "OTHER"
)

// donationTransitions is the lifecycle table. available and claiming feed
// forward; completed, cancelled and expired are terminal. A cancellation is
// recorded as a release: the donation goes straight back to available.
var donationTransitions = map[string][]string{
	DonationStatusAvailable: {DonationStatusClaiming, DonationStatusExpired},
	DonationStatusClaiming:  {DonationStatusInTransit, DonationStatusCancelled},
	DonationStatusInTransit: {DonationStatusCompleted, DonationStatusCancelled},
}

func CanTransitionDonation(from, to string) bool {
	for _, allowed := range donationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func ValidDonationType(t string) bool {
	switch t {
	case DonationTypeFood, DonationTypeClothes, DonationTypeMedicine, DonationTypeOther:
		return true
	}
	return false
}

var (
	MessageSuccessCreateDonation       = "donation created successfully"
	MessageSuccessGetDonations         = "donations retrieved successfully"
	MessageSuccessUpdateDonation       = "donation updated successfully"
	MessageSuccessDeleteDonation       = "donation deleted successfully"
	MessageSuccessClaimDonation        = "donation claimed successfully"
	MessageSuccessUpdateDonationStatus = "donation status updated successfully"
	MessageSuccessCompleteDonation     = "donation marked as completed successfully"

	MessageFailedCreateDonation       = "failed to create donation"
	MessageFailedGetDonations         = "failed to retrieve donations"
	MessageFailedUpdateDonation       = "failed to update donation"
	MessageFailedDeleteDonation       = "failed to delete donation"
	MessageFailedClaimDonation        = "failed to claim donation"
	MessageFailedUpdateDonationStatus = "failed to update donation status"

	ErrDonationNotFound           = errors.New("donation not found")
	ErrUnauthorizedDonationAccess = errors.New("unauthorized access to donation")
	ErrOnlyDonorsCanDonate        = errors.New("only donors can create donations")
	ErrInvalidDonationType        = errors.New("invalid donation type")
	ErrInvalidQuantity            = errors.New("quantity must be a positive number")
	ErrInvalidExpiryDate          = errors.New("expiry date must be in the future")
	ErrInvalidPickupTime          = errors.New("invalid pickup time format")
	ErrDonationNotAvailable       = errors.New("donation is not available for claiming")
	ErrDonationNotEditable        = errors.New("only available donations can be edited or deleted")
	ErrInvalidStatusTransition    = errors.New("invalid donation status transition")
	ErrDonationNotInTransit       = errors.New("can only complete donations that are in transit")
	ErrDonationNotCancellable     = errors.New("donation cannot be cancelled in its current status")
)

// InvalidTransitionError wraps ErrInvalidStatusTransition naming both ends
// of the rejected transition, so the caller sees exactly what was refused.
func InvalidTransitionError(from, to string) error {
	return fmt.Errorf("%w: cannot change status from %s to %s", ErrInvalidStatusTransition, from, to)
}

type (
	CreateDonationRequest struct {
		Title         string `json:"title" validate:"required,min=1,max=100"`
		Description   string `json:"description" validate:"omitempty"`
		DonationType  string `json:"donation_type" validate:"required,oneof=FOOD CLOTHES MEDICINE OTHER"`
		Quantity      int    `json:"quantity" validate:"required,min=1"`
		Unit          string `json:"unit" validate:"required,max=20"`
		ExpiryDate    string `json:"expiry_date" validate:"required"`
		PickupAddress string `json:"pickup_address" validate:"required"`
		PickupTime    string `json:"pickup_time" validate:"omitempty"`
		ImageURL      string `json:"image_url" validate:"omitempty,url"`
	}

	UpdateDonationRequest struct {
		Title         string `json:"title" validate:"omitempty,min=1,max=100"`
		Description   string `json:"description" validate:"omitempty"`
		DonationType  string `json:"donation_type" validate:"omitempty,oneof=FOOD CLOTHES MEDICINE OTHER"`
		Quantity      int    `json:"quantity" validate:"omitempty,min=1"`
		Unit          string `json:"unit" validate:"omitempty,max=20"`
		ExpiryDate    string `json:"expiry_date" validate:"omitempty"`
		PickupAddress string `json:"pickup_address" validate:"omitempty"`
		PickupTime    string `json:"pickup_time" validate:"omitempty"`
		ImageURL      string `json:"image_url" validate:"omitempty,url"`
	}

	UpdateDonationStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=in_transit completed cancelled"`
	}

	Donation struct {
		ID             string              `json:"id"`
		DonorID        string              `json:"donor_id"`
		Donor          *UserSummary        `json:"donor,omitempty"`
		Title          string              `json:"title"`
		Description    string              `json:"description,omitempty"`
		DonationType   string              `json:"donation_type"`
		Quantity       int                 `json:"quantity"`
		Unit           string              `json:"unit"`
		ExpiryDate     time.Time           `json:"expiry_date"`
		PickupAddress  string              `json:"pickup_address"`
		PickupTime     *time.Time          `json:"pickup_time,omitempty"`
		Status         string              `json:"status"`
		Volunteer      *UserSummary        `json:"volunteer,omitempty"`
		Organization   *UserSummary        `json:"organization,omitempty"`
		VolunteerCount int                 `json:"volunteer_count"`
		ImageURL       string              `json:"image_url,omitempty"`
		Requests       []*VolunteerRequest `json:"volunteer_requests,omitempty"`
		CreatedAt      time.Time           `json:"created_at"`
		UpdatedAt      time.Time           `json:"updated_at"`
		CompletedAt    *time.Time          `json:"completed_at,omitempty"`
	}

	ClaimDonationResponse struct {
		Donation     *Donation     `json:"donation"`
		Conversation *Conversation `json:"conversation"`
	}
)
