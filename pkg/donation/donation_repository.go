package donation

import (
	"FoodBridge-Backend/domain"
	"FoodBridge-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	DonationRepository interface {
		CreateDonation(ctx context.Context, donation *entities.Donation) error
		GetDonationByID(ctx context.Context, id string) (*entities.Donation, error)
		GetDonorDonations(ctx context.Context, donorID string) ([]*entities.Donation, error)
		GetAvailableDonations(ctx context.Context, donationType string) ([]*entities.Donation, error)
		GetClaimedDonations(ctx context.Context, organizationID string, status string) ([]*entities.Donation, error)
		GetAssignedDonations(ctx context.Context, volunteerID string, status string) ([]*entities.Donation, error)

		UpdateDonationFields(ctx context.Context, id string, updates map[string]interface{}) error
		DeleteDonation(ctx context.Context, id string) error

		MarkExpiredDonations(ctx context.Context, now time.Time) (int64, error)
		ClaimDonation(ctx context.Context, donationID, organizationID uuid.UUID) (*entities.Donation, *entities.Conversation, error)
		ReleaseDonation(ctx context.Context, donationID, organizationID uuid.UUID) error
		CompleteDonation(ctx context.Context, donationID, volunteerID uuid.UUID, completedAt time.Time) error
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateDonation(ctx context.Context, donation *entities.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Volunteer").
		Preload("Organization").
		Where("id = ?", id).
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) GetDonorDonations(ctx context.Context, donorID string) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Volunteer").
		Preload("Organization").
		Where("donor_id = ?", donorID).
		Order("status ASC").
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) GetAvailableDonations(ctx context.Context, donationType string) ([]*entities.Donation, error) {
	query := r.db.WithContext(ctx).
		Preload("Donor").
		Where("status = ? AND organization_id IS NULL", domain.DonationStatusAvailable)

	if donationType != "" {
		query = query.Where("donation_type = ?", donationType)
	}

	var donations []*entities.Donation
	if err := query.Order("created_at DESC").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) GetClaimedDonations(ctx context.Context, organizationID string, status string) ([]*entities.Donation, error) {
	query := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Volunteer").
		Preload("VolunteerRequests").
		Preload("VolunteerRequests.Volunteer").
		Where("organization_id = ?", organizationID)

	if status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status IN ?", []string{
			domain.DonationStatusClaiming,
			domain.DonationStatusInTransit,
			domain.DonationStatusCompleted,
		})
	}

	var donations []*entities.Donation
	if err := query.Order("status ASC").Order("updated_at DESC").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) GetAssignedDonations(ctx context.Context, volunteerID string, status string) ([]*entities.Donation, error) {
	query := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Organization").
		Where("volunteer_id = ?", volunteerID)

	if status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status IN ?", []string{
			domain.DonationStatusInTransit,
			domain.DonationStatusCompleted,
		})
	}

	var donations []*entities.Donation
	if err := query.Order("updated_at DESC").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// UpdateDonationFields applies donor edits. The status guard keeps a
// concurrent claim from racing the edit: once a donation leaves available,
// the update silently becomes a miss and is reported as not editable.
func (r *donationRepository) UpdateDonationFields(ctx context.Context, id string, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status = ?", id, domain.DonationStatusAvailable).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDonationNotEditable
	}
	return nil
}

func (r *donationRepository) DeleteDonation(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, domain.DonationStatusAvailable).
		Delete(&entities.Donation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDonationNotEditable
	}
	return nil
}

// MarkExpiredDonations is the lazy expiry sweep. It is idempotent and safe
// to run on every read of the available listing.
func (r *donationRepository) MarkExpiredDonations(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("status = ? AND expiry_date < ?", domain.DonationStatusAvailable, now).
		Update("status", domain.DonationStatusExpired)
	return res.RowsAffected, res.Error
}

// ClaimDonation performs the available->claiming transition and the
// conversation bootstrap in one transaction. The status precondition on the
// UPDATE guarantees at most one concurrent claim wins; the loser sees
// ErrDonationNotAvailable and nothing is written.
func (r *donationRepository) ClaimDonation(ctx context.Context, donationID, organizationID uuid.UUID) (*entities.Donation, *entities.Conversation, error) {
	var donation entities.Donation
	var conversation entities.Conversation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Donation{}).
			Where("id = ? AND status = ?", donationID, domain.DonationStatusAvailable).
			Updates(map[string]interface{}{
				"status":          domain.DonationStatusClaiming,
				"organization_id": organizationID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrDonationNotAvailable
		}

		if err := tx.Preload("Donor").Where("id = ?", donationID).First(&donation).Error; err != nil {
			return err
		}

		// Reuse the conversation for this pair if one exists, in either order.
		err := tx.Where(
			"(participant1_id = ? AND participant2_id = ?) OR (participant1_id = ? AND participant2_id = ?)",
			organizationID, donation.DonorID, donation.DonorID, organizationID,
		).First(&conversation).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			conversation = entities.Conversation{
				ID:               uuid.New(),
				Participant1ID:   organizationID,
				Participant2ID:   donation.DonorID,
				Participant2Type: domain.RoleDonor,
			}
			return tx.Create(&conversation).Error
		}
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &donation, &conversation, nil
}

// ReleaseDonation is the cancellation path from claiming or in_transit:
// the donation goes back to available with both assignment references
// cleared, in a single conditional update.
func (r *donationRepository) ReleaseDonation(ctx context.Context, donationID, organizationID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND organization_id = ? AND status IN ?",
			donationID, organizationID,
			[]string{domain.DonationStatusClaiming, domain.DonationStatusInTransit}).
		Updates(map[string]interface{}{
			"status":          domain.DonationStatusAvailable,
			"organization_id": nil,
			"volunteer_id":    nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDonationNotCancellable
	}
	return nil
}

func (r *donationRepository) CompleteDonation(ctx context.Context, donationID, volunteerID uuid.UUID, completedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND volunteer_id = ? AND status = ?",
			donationID, volunteerID, domain.DonationStatusInTransit).
		Updates(map[string]interface{}{
			"status":       domain.DonationStatusCompleted,
			"completed_at": completedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDonationNotInTransit
	}
	return nil
}
