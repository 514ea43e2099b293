package volunteer

import (
	"FoodBridge-Backend/domain"
	"FoodBridge-Backend/entities"
	"context"
	"sort"
	"time"

	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeVolunteerRepository struct {
	requests  map[string]*entities.VolunteerRequest
	donations map[string]*entities.Donation
	users     map[string]*entities.User
}

func newFakeVolunteerRepository() *fakeVolunteerRepository {
	return &fakeVolunteerRepository{
		requests:  map[string]*entities.VolunteerRequest{},
		donations: map[string]*entities.Donation{},
		users:     map[string]*entities.User{},
	}
}

func (f *fakeVolunteerRepository) GetRequestByID(_ context.Context, id string) (*entities.VolunteerRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	request.Organization = f.users[request.OrganizationID.String()]
	request.Volunteer = f.users[request.VolunteerID.String()]
	request.Donation = f.donations[request.DonationID.String()]
	return request, nil
}

func (f *fakeVolunteerRepository) GetVolunteerRequests(_ context.Context, volunteerID string, status string) ([]*entities.VolunteerRequest, error) {
	var result []*entities.VolunteerRequest
	for _, request := range f.requests {
		if request.VolunteerID.String() != volunteerID {
			continue
		}
		if status != "" && request.Status != status {
			continue
		}
		result = append(result, request)
	}
	return result, nil
}

func (f *fakeVolunteerRepository) FindExistingRequest(_ context.Context, donationID, volunteerID uuid.UUID) (*entities.VolunteerRequest, error) {
	for _, request := range f.requests {
		if request.DonationID == donationID && request.VolunteerID == volunteerID {
			return request, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVolunteerRepository) GetRequestedVolunteerIDs(_ context.Context, donationID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, request := range f.requests {
		if request.DonationID == donationID {
			ids = append(ids, request.VolunteerID)
		}
	}
	return ids, nil
}

func (f *fakeVolunteerRepository) GetEligibleVolunteers(_ context.Context, exclude []uuid.UUID, limit int) ([]*entities.User, error) {
	excluded := map[uuid.UUID]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}

	var volunteers []*entities.User
	for _, u := range f.users {
		if u.Role == domain.RoleVolunteer && !excluded[u.ID] {
			volunteers = append(volunteers, u)
		}
	}
	sort.Slice(volunteers, func(i, j int) bool {
		return volunteers[i].CreatedAt.Before(volunteers[j].CreatedAt)
	})
	if len(volunteers) > limit {
		volunteers = volunteers[:limit]
	}
	return volunteers, nil
}

func (f *fakeVolunteerRepository) CreateRequests(_ context.Context, donationID uuid.UUID, requests []*entities.VolunteerRequest) error {
	for _, request := range requests {
		f.requests[request.ID.String()] = request
	}
	f.donations[donationID.String()].VolunteerCount += len(requests)
	return nil
}

func (f *fakeVolunteerRepository) AcceptRequest(_ context.Context, requestID, volunteerID, donationID uuid.UUID, message string) error {
	request, ok := f.requests[requestID.String()]
	if !ok || request.VolunteerID != volunteerID || request.Status != domain.RequestStatusPending {
		return domain.ErrRequestAlreadyResolved
	}

	d := f.donations[donationID.String()]
	if d == nil || d.Status != domain.DonationStatusClaiming {
		return domain.ErrDonationAlreadyAssigned
	}

	request.Status = domain.RequestStatusAccepted
	if message != "" {
		request.Message = message
	}
	d.Status = domain.DonationStatusInTransit
	vid := volunteerID
	d.VolunteerID = &vid

	for _, sibling := range f.requests {
		if sibling.DonationID == donationID && sibling.Status == domain.RequestStatusPending {
			sibling.Status = domain.RequestStatusRejected
		}
	}
	return nil
}

func (f *fakeVolunteerRepository) RejectRequest(_ context.Context, requestID, volunteerID uuid.UUID, message string) error {
	request, ok := f.requests[requestID.String()]
	if !ok || request.VolunteerID != volunteerID || request.Status != domain.RequestStatusPending {
		return domain.ErrRequestAlreadyResolved
	}
	request.Status = domain.RequestStatusRejected
	if message != "" {
		request.Message = message
	}
	return nil
}

// stubDonationRepository serves only the lookups the volunteer service needs.
type stubDonationRepository struct {
	donations map[string]*entities.Donation
}

func (s *stubDonationRepository) CreateDonation(context.Context, *entities.Donation) error { return nil }
func (s *stubDonationRepository) GetDonationByID(_ context.Context, id string) (*entities.Donation, error) {
	d, ok := s.donations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}
func (s *stubDonationRepository) GetDonorDonations(context.Context, string) ([]*entities.Donation, error) {
	return nil, nil
}
func (s *stubDonationRepository) GetAvailableDonations(context.Context, string) ([]*entities.Donation, error) {
	return nil, nil
}
func (s *stubDonationRepository) GetClaimedDonations(context.Context, string, string) ([]*entities.Donation, error) {
	return nil, nil
}
func (s *stubDonationRepository) GetAssignedDonations(context.Context, string, string) ([]*entities.Donation, error) {
	return nil, nil
}
func (s *stubDonationRepository) UpdateDonationFields(context.Context, string, map[string]interface{}) error {
	return nil
}
func (s *stubDonationRepository) DeleteDonation(context.Context, string) error { return nil }
func (s *stubDonationRepository) MarkExpiredDonations(context.Context, time.Time) (int64, error) {
	return 0, nil
}
func (s *stubDonationRepository) ClaimDonation(_ context.Context, donationID, organizationID uuid.UUID) (*entities.Donation, *entities.Conversation, error) {
	d, ok := s.donations[donationID.String()]
	if !ok || d.Status != domain.DonationStatusAvailable {
		return nil, nil, domain.ErrDonationNotAvailable
	}
	d.Status = domain.DonationStatusClaiming
	orgID := organizationID
	d.OrganizationID = &orgID
	conversation := &entities.Conversation{
		ID:               uuid.New(),
		Participant1ID:   organizationID,
		Participant2ID:   d.DonorID,
		Participant2Type: domain.RoleDonor,
	}
	return d, conversation, nil
}
func (s *stubDonationRepository) ReleaseDonation(_ context.Context, donationID, organizationID uuid.UUID) error {
	d, ok := s.donations[donationID.String()]
	if !ok || d.OrganizationID == nil || *d.OrganizationID != organizationID {
		return domain.ErrDonationNotCancellable
	}
	if d.Status != domain.DonationStatusClaiming && d.Status != domain.DonationStatusInTransit {
		return domain.ErrDonationNotCancellable
	}
	d.Status = domain.DonationStatusAvailable
	d.OrganizationID = nil
	d.VolunteerID = nil
	return nil
}
func (s *stubDonationRepository) CompleteDonation(_ context.Context, donationID, volunteerID uuid.UUID, completedAt time.Time) error {
	d, ok := s.donations[donationID.String()]
	if !ok || d.VolunteerID == nil || *d.VolunteerID != volunteerID || d.Status != domain.DonationStatusInTransit {
		return domain.ErrDonationNotInTransit
	}
	d.Status = domain.DonationStatusCompleted
	d.CompletedAt = &completedAt
	return nil
}

type stubUserRepository struct {
	users map[string]*entities.User
}

func (s *stubUserRepository) CreateUser(context.Context, *entities.User) error { return nil }
func (s *stubUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}
func (s *stubUserRepository) GetUserByEmailOrUsername(context.Context, string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepository) EmailOrUsernameExists(context.Context, string, string) (bool, error) {
	return false, nil
}
func (s *stubUserRepository) UpdatePassword(context.Context, string, string) error { return nil }
func (s *stubUserRepository) GetUsersByRoles(_ context.Context, roles []string) ([]*entities.User, error) {
	var result []*entities.User
	for _, u := range s.users {
		for _, role := range roles {
			if u.Role == role {
				result = append(result, u)
			}
		}
	}
	return result, nil
}

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) Send(toEmail, _, _ string) error {
	m.sent = append(m.sent, toEmail)
	return nil
}

type volunteerFixture struct {
	repo      *fakeVolunteerRepository
	mailer    *recordingMailer
	service   VolunteerService
	orgID     uuid.UUID
	donation  *entities.Donation
	volunteer *entities.User
}

func newVolunteerFixture(t *testing.T) *volunteerFixture {
	t.Helper()

	repo := newFakeVolunteerRepository()
	mailer := &recordingMailer{}
	orgID := uuid.New()

	org := &entities.User{ID: orgID, Username: "shelter", Email: "shelter@example.com", Role: domain.RoleOrganization}
	repo.users[org.ID.String()] = org

	v := &entities.User{ID: uuid.New(), Username: "helper", Email: "helper@example.com", Role: domain.RoleVolunteer}
	repo.users[v.ID.String()] = v

	d := &entities.Donation{
		ID:             uuid.New(),
		DonorID:        uuid.New(),
		Title:          "Bread crates",
		Status:         domain.DonationStatusClaiming,
		OrganizationID: &orgID,
	}
	repo.donations[d.ID.String()] = d

	service := NewVolunteerService(
		repo,
		&stubDonationRepository{donations: repo.donations},
		&stubUserRepository{users: repo.users},
		mailer,
	)

	return &volunteerFixture{
		repo:      repo,
		mailer:    mailer,
		service:   service,
		orgID:     orgID,
		donation:  d,
		volunteer: v,
	}
}

func TestRequestVolunteer(t *testing.T) {
	fx := newVolunteerFixture(t)
	req := domain.RequestVolunteerRequest{VolunteerID: fx.volunteer.ID.String()}

	res, err := fx.service.RequestVolunteer(context.Background(), fx.donation.ID.String(), fx.orgID.String(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, res.Status)
	assert.Equal(t, "Volunteer needed for donation: Bread crates", res.Message)
	assert.Equal(t, 1, fx.donation.VolunteerCount)
	assert.Equal(t, []string{"helper@example.com"}, fx.mailer.sent)

	t.Run("duplicate request is rejected", func(t *testing.T) {
		_, err := fx.service.RequestVolunteer(context.Background(), fx.donation.ID.String(), fx.orgID.String(), req)
		assert.ErrorIs(t, err, domain.ErrVolunteerAlreadyRequested)
		assert.Equal(t, 1, fx.donation.VolunteerCount)
	})

	t.Run("target must hold the volunteer role", func(t *testing.T) {
		donor := &entities.User{ID: uuid.New(), Role: domain.RoleDonor}
		fx.repo.users[donor.ID.String()] = donor
		_, err := fx.service.RequestVolunteer(context.Background(), fx.donation.ID.String(), fx.orgID.String(),
			domain.RequestVolunteerRequest{VolunteerID: donor.ID.String()})
		assert.ErrorIs(t, err, domain.ErrInvalidVolunteer)
	})

	t.Run("other organizations cannot solicit", func(t *testing.T) {
		_, err := fx.service.RequestVolunteer(context.Background(), fx.donation.ID.String(), uuid.New().String(), req)
		assert.ErrorIs(t, err, domain.ErrUnauthorizedDonationAccess)
	})

	t.Run("available donation is not solicitable", func(t *testing.T) {
		open := &entities.Donation{ID: uuid.New(), Status: domain.DonationStatusAvailable, OrganizationID: &fx.orgID}
		fx.repo.donations[open.ID.String()] = open
		_, err := fx.service.RequestVolunteer(context.Background(), open.ID.String(), fx.orgID.String(), req)
		assert.ErrorIs(t, err, domain.ErrDonationNotClaimable)
	})
}

func TestRequestVolunteers(t *testing.T) {
	fx := newVolunteerFixture(t)
	for i := 0; i < 2; i++ {
		v := &entities.User{ID: uuid.New(), Role: domain.RoleVolunteer}
		fx.repo.users[v.ID.String()] = v
	}

	t.Run("shortfall names the counts", func(t *testing.T) {
		_, err := fx.service.RequestVolunteers(context.Background(), fx.donation.ID.String(), fx.orgID.String(),
			domain.RequestVolunteersRequest{VolunteerCount: 5})
		require.ErrorIs(t, err, domain.ErrNotEnoughVolunteers)
		assert.Contains(t, err.Error(), "only 3 volunteers available, but 5 requested")
	})

	t.Run("count outside bounds is rejected", func(t *testing.T) {
		_, err := fx.service.RequestVolunteers(context.Background(), fx.donation.ID.String(), fx.orgID.String(),
			domain.RequestVolunteersRequest{VolunteerCount: domain.MaxVolunteersPerRequest + 1})
		assert.ErrorIs(t, err, domain.ErrInvalidVolunteerCount)
	})

	t.Run("fan-out creates pending requests and bumps the counter", func(t *testing.T) {
		res, err := fx.service.RequestVolunteers(context.Background(), fx.donation.ID.String(), fx.orgID.String(),
			domain.RequestVolunteersRequest{VolunteerCount: 3, Message: "Pickup at noon"})
		require.NoError(t, err)
		assert.Len(t, res.Requests, 3)
		assert.Equal(t, 3, res.VolunteerCount)
		assert.Equal(t, 3, fx.donation.VolunteerCount)
		assert.Len(t, fx.mailer.sent, 3)
		for _, request := range res.Requests {
			assert.Equal(t, domain.RequestStatusPending, request.Status)
			assert.Equal(t, "Pickup at noon", request.Message)
		}
	})

	t.Run("already-solicited volunteers are excluded", func(t *testing.T) {
		_, err := fx.service.RequestVolunteers(context.Background(), fx.donation.ID.String(), fx.orgID.String(),
			domain.RequestVolunteersRequest{VolunteerCount: 1})
		assert.ErrorIs(t, err, domain.ErrNotEnoughVolunteers)
	})
}

func TestRespondToRequest(t *testing.T) {
	fx := newVolunteerFixture(t)

	second := &entities.User{ID: uuid.New(), Email: "second@example.com", Role: domain.RoleVolunteer}
	fx.repo.users[second.ID.String()] = second

	_, err := fx.service.RequestVolunteer(context.Background(), fx.donation.ID.String(), fx.orgID.String(),
		domain.RequestVolunteerRequest{VolunteerID: fx.volunteer.ID.String()})
	require.NoError(t, err)
	_, err = fx.service.RequestVolunteer(context.Background(), fx.donation.ID.String(), fx.orgID.String(),
		domain.RequestVolunteerRequest{VolunteerID: second.ID.String()})
	require.NoError(t, err)

	var first, sibling *entities.VolunteerRequest
	for _, request := range fx.repo.requests {
		if request.VolunteerID == fx.volunteer.ID {
			first = request
		} else {
			sibling = request
		}
	}
	require.NotNil(t, first)
	require.NotNil(t, sibling)

	t.Run("only the addressed volunteer may respond", func(t *testing.T) {
		_, err := fx.service.RespondToRequest(context.Background(), first.ID.String(), second.ID.String(),
			domain.RespondRequestRequest{Status: domain.RequestStatusAccepted})
		assert.ErrorIs(t, err, domain.ErrUnauthorizedRequestAccess)
	})

	t.Run("acceptance assigns the donation and rejects siblings", func(t *testing.T) {
		res, err := fx.service.RespondToRequest(context.Background(), first.ID.String(), fx.volunteer.ID.String(),
			domain.RespondRequestRequest{Status: domain.RequestStatusAccepted})
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusAccepted, res.Status)

		assert.Equal(t, domain.DonationStatusInTransit, fx.donation.Status)
		require.NotNil(t, fx.donation.VolunteerID)
		assert.Equal(t, fx.volunteer.ID, *fx.donation.VolunteerID)
		assert.Equal(t, domain.RequestStatusRejected, sibling.Status)
		assert.Contains(t, fx.mailer.sent, "shelter@example.com")
	})

	t.Run("a rejected sibling cannot accept afterwards", func(t *testing.T) {
		_, err := fx.service.RespondToRequest(context.Background(), sibling.ID.String(), second.ID.String(),
			domain.RespondRequestRequest{Status: domain.RequestStatusAccepted})
		assert.ErrorIs(t, err, domain.ErrRequestAlreadyResolved)
	})

	t.Run("status outside the pair is rejected", func(t *testing.T) {
		_, err := fx.service.RespondToRequest(context.Background(), first.ID.String(), fx.volunteer.ID.String(),
			domain.RespondRequestRequest{Status: "maybe"})
		assert.ErrorIs(t, err, domain.ErrInvalidRequestStatus)
	})

	t.Run("unknown request is not found", func(t *testing.T) {
		_, err := fx.service.RespondToRequest(context.Background(), uuid.New().String(), fx.volunteer.ID.String(),
			domain.RespondRequestRequest{Status: domain.RequestStatusRejected})
		assert.ErrorIs(t, err, domain.ErrVolunteerRequestNotFound)
	})
}

func TestAcceptOnAssignedDonationIsConflict(t *testing.T) {
	fx := newVolunteerFixture(t)

	// Solicitation is still allowed once the donation is in transit, but an
	// acceptance then finds no claiming row to bind and must surface a state
	// conflict, not an internal error.
	assigned := uuid.New()
	fx.donation.Status = domain.DonationStatusInTransit
	fx.donation.VolunteerID = &assigned

	_, err := fx.service.RequestVolunteer(context.Background(), fx.donation.ID.String(), fx.orgID.String(),
		domain.RequestVolunteerRequest{VolunteerID: fx.volunteer.ID.String()})
	require.NoError(t, err)

	var request *entities.VolunteerRequest
	for _, r := range fx.repo.requests {
		request = r
	}
	require.NotNil(t, request)

	_, err = fx.service.RespondToRequest(context.Background(), request.ID.String(), fx.volunteer.ID.String(),
		domain.RespondRequestRequest{Status: domain.RequestStatusAccepted})
	require.ErrorIs(t, err, domain.ErrDonationAlreadyAssigned)
	assert.Equal(t, 400, domain.ErrorStatusCode(err))
}

func TestRejectRequestLeavesDonationUntouched(t *testing.T) {
	fx := newVolunteerFixture(t)

	_, err := fx.service.RequestVolunteer(context.Background(), fx.donation.ID.String(), fx.orgID.String(),
		domain.RequestVolunteerRequest{VolunteerID: fx.volunteer.ID.String()})
	require.NoError(t, err)

	var request *entities.VolunteerRequest
	for _, r := range fx.repo.requests {
		request = r
	}
	require.NotNil(t, request)

	res, err := fx.service.RespondToRequest(context.Background(), request.ID.String(), fx.volunteer.ID.String(),
		domain.RespondRequestRequest{Status: domain.RequestStatusRejected, Message: "out of town"})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, res.Status)
	assert.Equal(t, "out of town", res.Message)
	assert.Equal(t, domain.DonationStatusClaiming, fx.donation.Status)
	assert.Nil(t, fx.donation.VolunteerID)
}

func TestGetVolunteerRequestsStatusFilter(t *testing.T) {
	fx := newVolunteerFixture(t)

	_, err := fx.service.GetVolunteerRequests(context.Background(), fx.volunteer.ID.String(), "stale")
	assert.ErrorIs(t, err, domain.ErrInvalidRequestStatus)

	_, err = fx.service.RequestVolunteer(context.Background(), fx.donation.ID.String(), fx.orgID.String(),
		domain.RequestVolunteerRequest{VolunteerID: fx.volunteer.ID.String()})
	require.NoError(t, err)

	pending, err := fx.service.GetVolunteerRequests(context.Background(), fx.volunteer.ID.String(), domain.RequestStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	accepted, err := fx.service.GetVolunteerRequests(context.Background(), fx.volunteer.ID.String(), domain.RequestStatusAccepted)
	require.NoError(t, err)
	assert.Empty(t, accepted)
}
