package donation

import (
	"FoodBridge-Backend/domain"
	"FoodBridge-Backend/entities"
	"FoodBridge-Backend/pkg/user"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	DonationService interface {
		CreateDonation(ctx context.Context, req domain.CreateDonationRequest, userID string, role string) (*domain.Donation, error)
		GetDonorDonations(ctx context.Context, userID string) ([]*domain.Donation, error)
		GetDonationByID(ctx context.Context, id string, userID string, role string) (*domain.Donation, error)
		UpdateDonation(ctx context.Context, id string, req domain.UpdateDonationRequest, userID string) (*domain.Donation, error)
		DeleteDonation(ctx context.Context, id string, userID string) error

		// GetAvailableDonations runs the expiry sweep before querying, so a
		// donation past its expiry date is never served as available.
		GetAvailableDonations(ctx context.Context, donationType string) ([]*domain.Donation, error)

		ClaimDonation(ctx context.Context, id string, organizationID string) (*domain.ClaimDonationResponse, error)
		UpdateStatusByOrganization(ctx context.Context, id string, status string, organizationID string) (*domain.Donation, error)
		CompleteDonation(ctx context.Context, id string, volunteerID string) (*domain.Donation, error)

		GetClaimedDonations(ctx context.Context, organizationID string, status string) ([]*domain.Donation, error)
		GetAssignedDonations(ctx context.Context, volunteerID string, status string) ([]*domain.Donation, error)
	}

	donationService struct {
		donationRepository DonationRepository
	}
)

func NewDonationService(donationRepository DonationRepository) DonationService {
	return &donationService{donationRepository: donationRepository}
}

func (s *donationService) CreateDonation(ctx context.Context, req domain.CreateDonationRequest, userID string, role string) (*domain.Donation, error) {
	if role != domain.RoleDonor {
		return nil, domain.ErrOnlyDonorsCanDonate
	}

	donorUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if !domain.ValidDonationType(req.DonationType) {
		return nil, domain.ErrInvalidDonationType
	}

	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	expiryDate, err := parseTime(req.ExpiryDate)
	if err != nil {
		return nil, domain.ErrInvalidExpiryDate
	}
	if !expiryDate.After(time.Now()) {
		return nil, domain.ErrInvalidExpiryDate
	}

	var pickupTime *time.Time
	if req.PickupTime != "" {
		parsed, err := parseTime(req.PickupTime)
		if err != nil {
			return nil, domain.ErrInvalidPickupTime
		}
		pickupTime = &parsed
	}

	donation := &entities.Donation{
		ID:            uuid.New(),
		DonorID:       donorUUID,
		Title:         req.Title,
		Description:   req.Description,
		DonationType:  req.DonationType,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		ExpiryDate:    expiryDate,
		PickupAddress: req.PickupAddress,
		PickupTime:    pickupTime,
		Status:        domain.DonationStatusAvailable,
		ImageURL:      req.ImageURL,
	}

	if err := s.donationRepository.CreateDonation(ctx, donation); err != nil {
		return nil, err
	}

	created, err := s.donationRepository.GetDonationByID(ctx, donation.ID.String())
	if err != nil {
		return nil, err
	}

	return ToDomain(created), nil
}

func (s *donationService) GetDonorDonations(ctx context.Context, userID string) ([]*domain.Donation, error) {
	donations, err := s.donationRepository.GetDonorDonations(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDomainList(donations), nil
}

func (s *donationService) GetDonationByID(ctx context.Context, id string, userID string, role string) (*domain.Donation, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	if !canViewDonation(donation, userID, role) {
		return nil, domain.ErrUnauthorizedDonationAccess
	}

	return ToDomain(donation), nil
}

// canViewDonation: the donor always, admins always, and the parties a claim
// or an assignment has bound to the donation.
func canViewDonation(donation *entities.Donation, userID string, role string) bool {
	if role == domain.RoleAdmin {
		return true
	}
	if donation.DonorID.String() == userID {
		return true
	}
	if donation.OrganizationID != nil && donation.OrganizationID.String() == userID {
		return true
	}
	if donation.VolunteerID != nil && donation.VolunteerID.String() == userID {
		return true
	}
	return false
}

func (s *donationService) UpdateDonation(ctx context.Context, id string, req domain.UpdateDonationRequest, userID string) (*domain.Donation, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	if donation.DonorID.String() != userID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}

	if donation.Status != domain.DonationStatusAvailable {
		return nil, domain.ErrDonationNotEditable
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.DonationType != "" {
		if !domain.ValidDonationType(req.DonationType) {
			return nil, domain.ErrInvalidDonationType
		}
		updates["donation_type"] = req.DonationType
	}
	if req.Quantity != 0 {
		if req.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		updates["quantity"] = req.Quantity
	}
	if req.Unit != "" {
		updates["unit"] = req.Unit
	}
	if req.ExpiryDate != "" {
		expiryDate, err := parseTime(req.ExpiryDate)
		if err != nil || !expiryDate.After(time.Now()) {
			return nil, domain.ErrInvalidExpiryDate
		}
		updates["expiry_date"] = expiryDate
	}
	if req.PickupAddress != "" {
		updates["pickup_address"] = req.PickupAddress
	}
	if req.PickupTime != "" {
		pickupTime, err := parseTime(req.PickupTime)
		if err != nil {
			return nil, domain.ErrInvalidPickupTime
		}
		updates["pickup_time"] = pickupTime
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}

	if len(updates) > 0 {
		if err := s.donationRepository.UpdateDonationFields(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	updated, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDomain(updated), nil
}

func (s *donationService) DeleteDonation(ctx context.Context, id string, userID string) error {
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDonationNotFound
		}
		return err
	}

	if donation.DonorID.String() != userID {
		return domain.ErrUnauthorizedDonationAccess
	}

	if donation.Status != domain.DonationStatusAvailable {
		return domain.ErrDonationNotEditable
	}

	return s.donationRepository.DeleteDonation(ctx, id)
}

func (s *donationService) GetAvailableDonations(ctx context.Context, donationType string) ([]*domain.Donation, error) {
	if donationType != "" && !domain.ValidDonationType(donationType) {
		return nil, domain.ErrInvalidDonationType
	}

	if _, err := s.donationRepository.MarkExpiredDonations(ctx, time.Now()); err != nil {
		return nil, err
	}

	donations, err := s.donationRepository.GetAvailableDonations(ctx, donationType)
	if err != nil {
		return nil, err
	}
	return toDomainList(donations), nil
}

func (s *donationService) ClaimDonation(ctx context.Context, id string, organizationID string) (*domain.ClaimDonationResponse, error) {
	donationUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	organizationUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if _, err := s.donationRepository.GetDonationByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	donation, conversation, err := s.donationRepository.ClaimDonation(ctx, donationUUID, organizationUUID)
	if err != nil {
		return nil, err
	}

	return &domain.ClaimDonationResponse{
		Donation: ToDomain(donation),
		Conversation: &domain.Conversation{
			ID:               conversation.ID.String(),
			Participant2Type: conversation.Participant2Type,
			CreatedAt:        conversation.CreatedAt,
		},
	}, nil
}

// UpdateStatusByOrganization handles the organization-side status endpoint.
// The only transition an organization may drive directly is the cancel:
// claiming -> in_transit happens through volunteer acceptance and
// in_transit -> completed belongs to the assigned volunteer.
func (s *donationService) UpdateStatusByOrganization(ctx context.Context, id string, status string, organizationID string) (*domain.Donation, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	if donation.OrganizationID == nil || donation.OrganizationID.String() != organizationID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}

	if status != domain.DonationStatusCancelled {
		return nil, domain.InvalidTransitionError(donation.Status, status)
	}

	if !domain.CanTransitionDonation(donation.Status, domain.DonationStatusCancelled) {
		return nil, domain.InvalidTransitionError(donation.Status, status)
	}

	donationUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	organizationUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if err := s.donationRepository.ReleaseDonation(ctx, donationUUID, organizationUUID); err != nil {
		return nil, err
	}

	updated, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDomain(updated), nil
}

func (s *donationService) CompleteDonation(ctx context.Context, id string, volunteerID string) (*domain.Donation, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	if donation.VolunteerID == nil || donation.VolunteerID.String() != volunteerID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}

	if donation.Status != domain.DonationStatusInTransit {
		return nil, domain.ErrDonationNotInTransit
	}

	donationUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	volunteerUUID, err := uuid.Parse(volunteerID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if err := s.donationRepository.CompleteDonation(ctx, donationUUID, volunteerUUID, time.Now()); err != nil {
		return nil, err
	}

	updated, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDomain(updated), nil
}

func (s *donationService) GetClaimedDonations(ctx context.Context, organizationID string, status string) ([]*domain.Donation, error) {
	donations, err := s.donationRepository.GetClaimedDonations(ctx, organizationID, status)
	if err != nil {
		return nil, err
	}
	return toDomainList(donations), nil
}

func (s *donationService) GetAssignedDonations(ctx context.Context, volunteerID string, status string) ([]*domain.Donation, error) {
	donations, err := s.donationRepository.GetAssignedDonations(ctx, volunteerID, status)
	if err != nil {
		return nil, err
	}
	return toDomainList(donations), nil
}

func parseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// ToDomain converts a donation entity into its response shape. Other
// features embed donations in their own responses, so this is exported.
func ToDomain(donation *entities.Donation) *domain.Donation {
	result := &domain.Donation{
		ID:             donation.ID.String(),
		DonorID:        donation.DonorID.String(),
		Donor:          user.UserSummaryOf(donation.Donor),
		Title:          donation.Title,
		Description:    donation.Description,
		DonationType:   donation.DonationType,
		Quantity:       donation.Quantity,
		Unit:           donation.Unit,
		ExpiryDate:     donation.ExpiryDate,
		PickupAddress:  donation.PickupAddress,
		PickupTime:     donation.PickupTime,
		Status:         donation.Status,
		Volunteer:      user.UserSummaryOf(donation.Volunteer),
		Organization:   user.UserSummaryOf(donation.Organization),
		VolunteerCount: donation.VolunteerCount,
		ImageURL:       donation.ImageURL,
		CreatedAt:      donation.CreatedAt,
		UpdatedAt:      donation.UpdatedAt,
		CompletedAt:    donation.CompletedAt,
	}

	for _, req := range donation.VolunteerRequests {
		result.Requests = append(result.Requests, &domain.VolunteerRequest{
			ID:         req.ID.String(),
			DonationID: req.DonationID.String(),
			Volunteer:  user.UserSummaryOf(req.Volunteer),
			Status:     req.Status,
			Message:    req.Message,
			CreatedAt:  req.CreatedAt,
			UpdatedAt:  req.UpdatedAt,
		})
	}

	return result
}

func toDomainList(donations []*entities.Donation) []*domain.Donation {
	result := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		result = append(result, ToDomain(d))
	}
	return result
}
