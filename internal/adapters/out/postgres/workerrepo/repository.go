package workerrepo

import (
	"context"
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/worker"
	"afrimercato/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWorkerRepository implements WorkerRepository using GORM.
type GormWorkerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkerRepository creates a new GORM worker repository.
func NewGormWorkerRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkerRepository {
	return &GormWorkerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new worker to the database.
func (r *GormWorkerRepository) Add(ctx context.Context, aggregate *worker.Worker) error {
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

// Update saves an existing worker to the database. Writing a booking is
// conditional on the stored row not already holding a different order, so
// two dispatchers never book the same worker.
func (r *GormWorkerRepository) Update(ctx context.Context, aggregate *worker.Worker) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	query := r.db.WithContext(ctx).
		Model(&WorkerDTO{}).
		Where("id = ?", dto.ID)

	booking := dto.Availability == int(worker.AvailabilityBusy) && dto.ActiveOrderID != nil
	if booking {
		query = query.Where("active_order_id IS NULL OR active_order_id = ?", *dto.ActiveOrderID)
	}

	result := query.Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if booking {
			return errs.NewVersionIsInvalidError("worker",
				errors.New("worker was booked by a concurrent dispatcher"))
		}
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a worker by ID.
func (r *GormWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("worker", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetIdlePickersForVendor retrieves idle pickers affiliated with the given
// vendor's store, least recently assigned first.
func (r *GormWorkerRepository) GetIdlePickersForVendor(
	ctx context.Context,
	vendorID kernel.UUID,
) ([]*worker.Worker, error) {
	if err := vendorID.Validate(); err != nil {
		return nil, err
	}

	var dtos []WorkerDTO
	err := r.db.WithContext(ctx).
		Order("last_assigned_at").
		Find(&dtos, "kind = ? AND availability = ? AND vendor_id = ?",
			int(worker.KindPicker), int(worker.AvailabilityIdle), vendorID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetIdleRiders retrieves the idle riders among the given candidates, least
// recently assigned first. An empty candidate list means no area filter.
func (r *GormWorkerRepository) GetIdleRiders(
	ctx context.Context,
	candidateIDs []kernel.UUID,
) ([]*worker.Worker, error) {
	query := r.db.WithContext(ctx).
		Order("last_assigned_at").
		Where("kind = ? AND availability = ?", int(worker.KindRider), int(worker.AvailabilityIdle))

	if len(candidateIDs) > 0 {
		ids := make([]uuid.UUID, 0, len(candidateIDs))
		for _, id := range candidateIDs {
			if err := id.Validate(); err != nil {
				return nil, err
			}
			ids = append(ids, id.Bytes())
		}
		query = query.Where("id IN ?", ids)
	}

	var dtos []WorkerDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []WorkerDTO) ([]*worker.Worker, error) {
	workers := make([]*worker.Worker, 0, len(dtos))
	for _, dto := range dtos {
		w, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	return workers, nil
}
