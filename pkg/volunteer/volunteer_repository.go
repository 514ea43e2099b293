package volunteer

import (
	"FoodBridge-Backend/domain"
	"FoodBridge-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	VolunteerRepository interface {
		GetRequestByID(ctx context.Context, id string) (*entities.VolunteerRequest, error)
		GetVolunteerRequests(ctx context.Context, volunteerID string, status string) ([]*entities.VolunteerRequest, error)
		FindExistingRequest(ctx context.Context, donationID, volunteerID uuid.UUID) (*entities.VolunteerRequest, error)
		GetRequestedVolunteerIDs(ctx context.Context, donationID uuid.UUID) ([]uuid.UUID, error)
		GetEligibleVolunteers(ctx context.Context, exclude []uuid.UUID, limit int) ([]*entities.User, error)
		CreateRequests(ctx context.Context, donationID uuid.UUID, requests []*entities.VolunteerRequest) error
		AcceptRequest(ctx context.Context, requestID, volunteerID, donationID uuid.UUID, message string) error
		RejectRequest(ctx context.Context, requestID, volunteerID uuid.UUID, message string) error
	}

	volunteerRepository struct {
		db *gorm.DB
	}
)

func NewVolunteerRepository(db *gorm.DB) VolunteerRepository {
	return &volunteerRepository{db: db}
}

func (r *volunteerRepository) GetRequestByID(ctx context.Context, id string) (*entities.VolunteerRequest, error) {
	var request entities.VolunteerRequest
	if err := r.db.WithContext(ctx).
		Preload("Donation").
		Preload("Donation.Donor").
		Preload("Organization").
		Preload("Volunteer").
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *volunteerRepository) GetVolunteerRequests(ctx context.Context, volunteerID string, status string) ([]*entities.VolunteerRequest, error) {
	query := r.db.WithContext(ctx).
		Preload("Donation").
		Preload("Donation.Donor").
		Preload("Donation.Organization").
		Preload("Organization").
		Where("volunteer_id = ?", volunteerID)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []*entities.VolunteerRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *volunteerRepository) FindExistingRequest(ctx context.Context, donationID, volunteerID uuid.UUID) (*entities.VolunteerRequest, error) {
	var request entities.VolunteerRequest
	if err := r.db.WithContext(ctx).
		Where("donation_id = ? AND volunteer_id = ?", donationID, volunteerID).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *volunteerRepository) GetRequestedVolunteerIDs(ctx context.Context, donationID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.VolunteerRequest{}).
		Where("donation_id = ?", donationID).
		Pluck("volunteer_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// GetEligibleVolunteers selects fan-out targets in a stable order:
// the longest-registered volunteers first.
func (r *volunteerRepository) GetEligibleVolunteers(ctx context.Context, exclude []uuid.UUID, limit int) ([]*entities.User, error) {
	query := r.db.WithContext(ctx).Where("role = ?", domain.RoleVolunteer)
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}

	var volunteers []*entities.User
	if err := query.Order("created_at ASC").Limit(limit).Find(&volunteers).Error; err != nil {
		return nil, err
	}
	return volunteers, nil
}

// CreateRequests inserts the pending requests and bumps the donation's
// volunteer_count in the same transaction, so the counter can never drift
// from the ledger.
func (r *volunteerRepository) CreateRequests(ctx context.Context, donationID uuid.UUID, requests []*entities.VolunteerRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, request := range requests {
			if err := tx.Create(request).Error; err != nil {
				return err
			}
		}
		return tx.Model(&entities.Donation{}).
			Where("id = ?", donationID).
			Update("volunteer_count", gorm.Expr("volunteer_count + ?", len(requests))).Error
	})
}

// AcceptRequest resolves the acceptance race. Both conditional updates must
// hit: the request must still be pending and the donation must still be in
// claiming. The first acceptance wins and binds the volunteer; a late
// acceptance fails with a conflict and the transaction rolls back. Sibling
// pending requests are rejected in the same transaction so the ledger ends
// in a consistent state.
func (r *volunteerRepository) AcceptRequest(ctx context.Context, requestID, volunteerID, donationID uuid.UUID, message string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": domain.RequestStatusAccepted}
		if message != "" {
			updates["message"] = message
		}

		res := tx.Model(&entities.VolunteerRequest{}).
			Where("id = ? AND volunteer_id = ? AND status = ?", requestID, volunteerID, domain.RequestStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRequestAlreadyResolved
		}

		res = tx.Model(&entities.Donation{}).
			Where("id = ? AND status = ?", donationID, domain.DonationStatusClaiming).
			Updates(map[string]interface{}{
				"status":       domain.DonationStatusInTransit,
				"volunteer_id": volunteerID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrDonationAlreadyAssigned
		}

		return tx.Model(&entities.VolunteerRequest{}).
			Where("donation_id = ? AND status = ?", donationID, domain.RequestStatusPending).
			Update("status", domain.RequestStatusRejected).Error
	})
}

func (r *volunteerRepository) RejectRequest(ctx context.Context, requestID, volunteerID uuid.UUID, message string) error {
	updates := map[string]interface{}{"status": domain.RequestStatusRejected}
	if message != "" {
		updates["message"] = message
	}

	res := r.db.WithContext(ctx).
		Model(&entities.VolunteerRequest{}).
		Where("id = ? AND volunteer_id = ? AND status = ?", requestID, volunteerID, domain.RequestStatusPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRequestAlreadyResolved
	}
	return nil
}
