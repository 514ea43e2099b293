package domain

import (
	"errors"
	"time"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"

	MaxVolunteersPerRequest = 10
)

var (
	MessageSuccessRequestVolunteer  = "volunteer request sent successfully"
	MessageSuccessRequestVolunteers = "volunteer requests sent successfully"
	MessageSuccessGetRequests       = "volunteer requests retrieved successfully"
	MessageSuccessRespondRequest    = "volunteer request responded successfully"

	MessageFailedRequestVolunteer = "failed to request volunteer"
	MessageFailedGetRequests      = "failed to retrieve volunteer requests"
	MessageFailedRespondRequest   = "failed to respond to volunteer request"

	ErrVolunteerRequestNotFound  = errors.New("volunteer request not found")
	ErrUnauthorizedRequestAccess = errors.New("not authorized to respond to this request")
	ErrRequestAlreadyResolved    = errors.New("request has already been responded to")
	ErrInvalidRequestStatus      = errors.New("response status must be accepted or rejected")
	ErrInvalidVolunteer          = errors.New("invalid volunteer")
	ErrVolunteerAlreadyRequested = errors.New("a volunteer request already exists for this donation and volunteer")
	ErrInvalidVolunteerCount     = errors.New("volunteer count must be between 1 and 10")
	ErrNotEnoughVolunteers       = errors.New("not enough eligible volunteers available")
	ErrDonationNotClaimable      = errors.New("can only request volunteers for donations in claiming or in_transit status")
	ErrDonationAlreadyAssigned   = errors.New("donation has already been assigned to a volunteer")
)

type (
	RequestVolunteerRequest struct {
		VolunteerID string `json:"volunteer_id" validate:"required,uuid"`
		Message     string `json:"message" validate:"omitempty"`
	}

	RequestVolunteersRequest struct {
		VolunteerCount int    `json:"volunteer_count" validate:"required,min=1,max=10"`
		Message        string `json:"message" validate:"omitempty"`
	}

	RespondRequestRequest struct {
		Status  string `json:"status" validate:"required,oneof=accepted rejected"`
		Message string `json:"message" validate:"omitempty"`
	}

	VolunteerRequest struct {
		ID           string       `json:"id"`
		DonationID   string       `json:"donation_id"`
		Donation     *Donation    `json:"donation,omitempty"`
		Organization *UserSummary `json:"organization,omitempty"`
		Volunteer    *UserSummary `json:"volunteer,omitempty"`
		Status       string       `json:"status"`
		Message      string       `json:"message,omitempty"`
		CreatedAt    time.Time    `json:"created_at"`
		UpdatedAt    time.Time    `json:"updated_at"`
	}

	RequestVolunteersResponse struct {
		Requests       []*VolunteerRequest `json:"requests"`
		VolunteerCount int                 `json:"volunteer_count"`
	}
)
