package domain

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

const (
	RoleDonor        = "donor"
	RoleVolunteer    = "volunteer"
	RoleOrganization = "organization"
	RoleAdmin        = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleDonor, RoleVolunteer, RoleOrganization, RoleAdmin:
		return true
	}
	return false
}

var (
	MessageFailedBodyRequest    = "failed to process body request"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "token invalid"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// ErrorStatusCode maps domain sentinel errors onto HTTP status codes so
// handlers stay uniform: validation and state conflicts are 400,
// authorization failures 403, missing entities 404, everything else 500.
func ErrorStatusCode(err error) int {
	switch {
	case isNotFound(err):
		return fiber.StatusNotFound
	case isForbidden(err):
		return fiber.StatusForbidden
	case isUnauthenticated(err):
		return fiber.StatusUnauthorized
	case isBadRequest(err):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func isNotFound(err error) bool {
	for _, target := range []error{
		ErrUserNotFound,
		ErrDonationNotFound,
		ErrVolunteerRequestNotFound,
		ErrConversationNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isForbidden(err error) bool {
	for _, target := range []error{
		ErrUserNotAllowed,
		ErrOnlyDonorsCanDonate,
		ErrUnauthorizedDonationAccess,
		ErrUnauthorizedRequestAccess,
		ErrUnauthorizedConversationAccess,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isUnauthenticated(err error) bool {
	for _, target := range []error{
		ErrTokenNotFound,
		ErrTokenExpired,
		ErrTokenInvalid,
		ErrInvalidCredentials,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isBadRequest(err error) bool {
	for _, target := range []error{
		ErrParseUUID,
		ErrEmailOrUsernameTaken,
		ErrPasswordTooShort,
		ErrWrongCurrentPassword,
		ErrInvalidRole,
		ErrInvalidDonationType,
		ErrInvalidQuantity,
		ErrInvalidExpiryDate,
		ErrInvalidPickupTime,
		ErrDonationNotAvailable,
		ErrDonationAlreadyAssigned,
		ErrDonationNotEditable,
		ErrInvalidStatusTransition,
		ErrDonationNotInTransit,
		ErrDonationNotCancellable,
		ErrInvalidVolunteerCount,
		ErrNotEnoughVolunteers,
		ErrInvalidVolunteer,
		ErrVolunteerAlreadyRequested,
		ErrRequestAlreadyResolved,
		ErrInvalidRequestStatus,
		ErrDonationNotClaimable,
		ErrEmptyMessage,
		ErrInvalidParticipantType,
		ErrParticipantRoleMismatch,
		ErrNoImageProvided,
		ErrInvalidFileType,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
