package proposalrepo

import (
	"context"
	"errors"
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/substitution"
	"afrimercato/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProposalRepository implements ProposalRepository using GORM.
type GormProposalRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProposalRepository creates a new GORM proposal repository.
func NewGormProposalRepository(db *gorm.DB, tracker aggregateTracker) *GormProposalRepository {
	return &GormProposalRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new proposal with its alternatives.
func (r *GormProposalRepository) Add(ctx context.Context, aggregate *substitution.Proposal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, alternatives := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if len(alternatives) > 0 {
		if err := r.db.WithContext(ctx).Create(&alternatives).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing proposal. Resolving is conditional on the stored
// row still being pending, so a customer decision and the timeout sweep
// never both land.
func (r *GormProposalRepository) Update(ctx context.Context, aggregate *substitution.Proposal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, _ := fromDomain(aggregate)
	query := r.db.WithContext(ctx).
		Model(&ProposalDTO{}).
		Where("id = ?", dto.ID)

	resolving := dto.Decision != int(substitution.DecisionPending)
	if resolving {
		query = query.Where("decision = ?", int(substitution.DecisionPending))
	}

	result := query.Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if resolving {
			return errs.NewVersionIsInvalidError("proposal",
				errors.New("proposal was resolved by a concurrent writer"))
		}
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a proposal by ID, including its alternatives.
func (r *GormProposalRepository) Get(ctx context.Context, id kernel.UUID) (*substitution.Proposal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProposalDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("proposal", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetOpenByLineItem retrieves the open proposal blocking a line item.
func (r *GormProposalRepository) GetOpenByLineItem(
	ctx context.Context,
	lineItemID kernel.UUID,
) (*substitution.Proposal, error) {
	if err := lineItemID.Validate(); err != nil {
		return nil, err
	}

	var dto ProposalDTO
	err := r.db.WithContext(ctx).
		First(&dto, "line_item_id = ? AND decision = ?",
			lineItemID.Bytes(), int(substitution.DecisionPending)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("proposal", lineItemID.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetAllExpired retrieves open proposals whose deadline is at or before the
// given moment, oldest deadline first.
func (r *GormProposalRepository) GetAllExpired(
	ctx context.Context,
	now time.Time,
) ([]*substitution.Proposal, error) {
	var dtos []ProposalDTO
	err := r.db.WithContext(ctx).
		Order("deadline").
		Find(&dtos, "decision = ? AND deadline <= ?",
			int(substitution.DecisionPending), now).Error
	if err != nil {
		return nil, err
	}

	proposals := make([]*substitution.Proposal, 0, len(dtos))
	for _, dto := range dtos {
		p, loadErr := r.load(ctx, dto)
		if loadErr != nil {
			return nil, loadErr
		}
		proposals = append(proposals, p)
	}

	return proposals, nil
}

func (r *GormProposalRepository) load(ctx context.Context, dto ProposalDTO) (*substitution.Proposal, error) {
	var alternatives []AlternativeDTO
	err := r.db.WithContext(ctx).
		Order("pos").Find(&alternatives, "proposal_id = ?", dto.ID).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, alternatives)
}
