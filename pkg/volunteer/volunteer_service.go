package volunteer

import (
	"FoodBridge-Backend/domain"
	"FoodBridge-Backend/entities"
	"FoodBridge-Backend/internal/utils/mailing"
	"FoodBridge-Backend/pkg/donation"
	"FoodBridge-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	VolunteerService interface {
		RequestVolunteer(ctx context.Context, donationID string, organizationID string, req domain.RequestVolunteerRequest) (*domain.VolunteerRequest, error)
		RequestVolunteers(ctx context.Context, donationID string, organizationID string, req domain.RequestVolunteersRequest) (*domain.RequestVolunteersResponse, error)
		GetVolunteerRequests(ctx context.Context, volunteerID string, status string) ([]*domain.VolunteerRequest, error)
		RespondToRequest(ctx context.Context, requestID string, volunteerID string, req domain.RespondRequestRequest) (*domain.VolunteerRequest, error)
	}

	volunteerService struct {
		volunteerRepository VolunteerRepository
		donationRepository  donation.DonationRepository
		userRepository      user.UserRepository
		mailer              mailing.Sender
	}
)

func NewVolunteerService(
	volunteerRepository VolunteerRepository,
	donationRepository donation.DonationRepository,
	userRepository user.UserRepository,
	mailer mailing.Sender,
) VolunteerService {
	return &volunteerService{
		volunteerRepository: volunteerRepository,
		donationRepository:  donationRepository,
		userRepository:      userRepository,
		mailer:              mailer,
	}
}

// solicitableDonation checks the shared preconditions of both request
// operations: the donation exists, belongs to the calling organization and
// is in a status that still needs transport.
func (s *volunteerService) solicitableDonation(ctx context.Context, donationID string, organizationID string) (*entities.Donation, error) {
	d, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	if d.OrganizationID == nil || d.OrganizationID.String() != organizationID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}

	if d.Status != domain.DonationStatusClaiming && d.Status != domain.DonationStatusInTransit {
		return nil, domain.ErrDonationNotClaimable
	}

	return d, nil
}

func (s *volunteerService) RequestVolunteer(ctx context.Context, donationID string, organizationID string, req domain.RequestVolunteerRequest) (*domain.VolunteerRequest, error) {
	d, err := s.solicitableDonation(ctx, donationID, organizationID)
	if err != nil {
		return nil, err
	}

	volunteerUUID, err := uuid.Parse(req.VolunteerID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	target, err := s.userRepository.GetUserByID(ctx, req.VolunteerID)
	if err != nil || target.Role != domain.RoleVolunteer {
		return nil, domain.ErrInvalidVolunteer
	}

	if _, err := s.volunteerRepository.FindExistingRequest(ctx, d.ID, volunteerUUID); err == nil {
		return nil, domain.ErrVolunteerAlreadyRequested
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	request := &entities.VolunteerRequest{
		ID:             uuid.New(),
		DonationID:     d.ID,
		OrganizationID: *d.OrganizationID,
		VolunteerID:    volunteerUUID,
		Status:         domain.RequestStatusPending,
		Message:        solicitationMessage(req.Message, d.Title),
	}

	if err := s.volunteerRepository.CreateRequests(ctx, d.ID, []*entities.VolunteerRequest{request}); err != nil {
		return nil, err
	}

	s.notifyVolunteers(d, []*entities.User{target}, request.Message)

	created, err := s.volunteerRepository.GetRequestByID(ctx, request.ID.String())
	if err != nil {
		return nil, err
	}
	return toRequestDomain(created), nil
}

func (s *volunteerService) RequestVolunteers(ctx context.Context, donationID string, organizationID string, req domain.RequestVolunteersRequest) (*domain.RequestVolunteersResponse, error) {
	if req.VolunteerCount < 1 || req.VolunteerCount > domain.MaxVolunteersPerRequest {
		return nil, domain.ErrInvalidVolunteerCount
	}

	d, err := s.solicitableDonation(ctx, donationID, organizationID)
	if err != nil {
		return nil, err
	}

	requested, err := s.volunteerRepository.GetRequestedVolunteerIDs(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	volunteers, err := s.volunteerRepository.GetEligibleVolunteers(ctx, requested, req.VolunteerCount)
	if err != nil {
		return nil, err
	}
	if len(volunteers) < req.VolunteerCount {
		return nil, fmt.Errorf("%w: only %d volunteers available, but %d requested",
			domain.ErrNotEnoughVolunteers, len(volunteers), req.VolunteerCount)
	}

	countBefore := d.VolunteerCount
	message := solicitationMessage(req.Message, d.Title)
	requests := make([]*entities.VolunteerRequest, 0, len(volunteers))
	for _, v := range volunteers {
		requests = append(requests, &entities.VolunteerRequest{
			ID:             uuid.New(),
			DonationID:     d.ID,
			OrganizationID: *d.OrganizationID,
			VolunteerID:    v.ID,
			Status:         domain.RequestStatusPending,
			Message:        message,
		})
	}

	if err := s.volunteerRepository.CreateRequests(ctx, d.ID, requests); err != nil {
		return nil, err
	}

	s.notifyVolunteers(d, volunteers, message)

	result := make([]*domain.VolunteerRequest, 0, len(requests))
	for i, request := range requests {
		request.Volunteer = volunteers[i]
		result = append(result, toRequestDomain(request))
	}

	return &domain.RequestVolunteersResponse{
		Requests:       result,
		VolunteerCount: countBefore + len(requests),
	}, nil
}

func (s *volunteerService) GetVolunteerRequests(ctx context.Context, volunteerID string, status string) ([]*domain.VolunteerRequest, error) {
	if status != "" &&
		status != domain.RequestStatusPending &&
		status != domain.RequestStatusAccepted &&
		status != domain.RequestStatusRejected {
		return nil, domain.ErrInvalidRequestStatus
	}

	requests, err := s.volunteerRepository.GetVolunteerRequests(ctx, volunteerID, status)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.VolunteerRequest, 0, len(requests))
	for _, request := range requests {
		result = append(result, toRequestDomain(request))
	}
	return result, nil
}

func (s *volunteerService) RespondToRequest(ctx context.Context, requestID string, volunteerID string, req domain.RespondRequestRequest) (*domain.VolunteerRequest, error) {
	if req.Status != domain.RequestStatusAccepted && req.Status != domain.RequestStatusRejected {
		return nil, domain.ErrInvalidRequestStatus
	}

	request, err := s.volunteerRepository.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVolunteerRequestNotFound
		}
		return nil, err
	}

	if request.VolunteerID.String() != volunteerID {
		return nil, domain.ErrUnauthorizedRequestAccess
	}

	if request.Status != domain.RequestStatusPending {
		return nil, domain.ErrRequestAlreadyResolved
	}

	if req.Status == domain.RequestStatusAccepted {
		err = s.volunteerRepository.AcceptRequest(ctx, request.ID, request.VolunteerID, request.DonationID, req.Message)
	} else {
		err = s.volunteerRepository.RejectRequest(ctx, request.ID, request.VolunteerID, req.Message)
	}
	if err != nil {
		return nil, err
	}

	if req.Status == domain.RequestStatusAccepted && request.Organization != nil && request.Organization.Email != "" {
		subject := "Volunteer request accepted"
		body := fmt.Sprintf("Your volunteer request for donation %q was accepted.", requestTitle(request))
		if mailErr := s.mailer.Send(request.Organization.Email, subject, body); mailErr != nil {
			log.Printf("failed to notify organization %s: %v", request.OrganizationID, mailErr)
		}
	}

	updated, err := s.volunteerRepository.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return toRequestDomain(updated), nil
}

func solicitationMessage(message, title string) string {
	if message != "" {
		return message
	}
	return fmt.Sprintf("Volunteer needed for donation: %s", title)
}

func requestTitle(request *entities.VolunteerRequest) string {
	if request.Donation != nil {
		return request.Donation.Title
	}
	return request.DonationID.String()
}

// notifyVolunteers emails each solicited volunteer. Delivery is best
// effort; a bounced mail must not fail the request that already committed.
func (s *volunteerService) notifyVolunteers(d *entities.Donation, volunteers []*entities.User, message string) {
	subject := fmt.Sprintf("Volunteer needed: %s", d.Title)
	for _, v := range volunteers {
		if v.Email == "" {
			continue
		}
		if err := s.mailer.Send(v.Email, subject, message); err != nil {
			log.Printf("failed to notify volunteer %s: %v", v.ID, err)
		}
	}
}

func toRequestDomain(request *entities.VolunteerRequest) *domain.VolunteerRequest {
	result := &domain.VolunteerRequest{
		ID:           request.ID.String(),
		DonationID:   request.DonationID.String(),
		Organization: user.UserSummaryOf(request.Organization),
		Volunteer:    user.UserSummaryOf(request.Volunteer),
		Status:       request.Status,
		Message:      request.Message,
		CreatedAt:    request.CreatedAt,
		UpdatedAt:    request.UpdatedAt,
	}
	if request.Donation != nil {
		result.Donation = donation.ToDomain(request.Donation)
	}
	return result
}
