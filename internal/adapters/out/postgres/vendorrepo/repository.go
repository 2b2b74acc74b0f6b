package vendorrepo

import (
	"context"
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/vendor"
	"afrimercato/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormVendorRepository implements VendorRepository using GORM.
type GormVendorRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormVendorRepository creates a new GORM vendor repository.
func NewGormVendorRepository(db *gorm.DB, tracker aggregateTracker) *GormVendorRepository {
	return &GormVendorRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new vendor to the database.
func (r *GormVendorRepository) Add(ctx context.Context, aggregate *vendor.Vendor) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing vendor to the database. Approval-status changes
// are written conditionally on the only status they are legal from, so two
// racing decisions cannot both report success; the loser sees a version
// conflict, re-reads, and gets the aggregate's invalid-state error.
func (r *GormVendorRepository) Update(ctx context.Context, aggregate *vendor.Vendor) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	tx := r.db.WithContext(ctx).
		Model(&VendorDTO{}).
		Where("id = ?", dto.ID)

	deciding := true
	switch vendor.ApprovalStatus(dto.Status) {
	case vendor.ApprovalApproved, vendor.ApprovalRejected:
		tx = tx.Where("status = ?", int(vendor.ApprovalPending))
	case vendor.ApprovalSuspended:
		tx = tx.Where("status = ?", int(vendor.ApprovalApproved))
	default:
		deciding = false
	}

	result := tx.Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if deciding {
			return errs.NewVersionIsInvalidError("vendor",
				errors.New("vendor status was changed by a concurrent decision"))
		}
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a vendor by ID.
func (r *GormVendorRepository) Get(ctx context.Context, id kernel.UUID) (*vendor.Vendor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VendorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vendor", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves vendors awaiting an approval decision.
func (r *GormVendorRepository) GetAllPending(ctx context.Context) ([]*vendor.Vendor, error) {
	var dtos []VendorDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "status = ?", int(vendor.ApprovalPending)).Error
	if err != nil {
		return nil, err
	}

	vendors := make([]*vendor.Vendor, 0, len(dtos))
	for _, dto := range dtos {
		v, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		vendors = append(vendors, v)
	}

	return vendors, nil
}
