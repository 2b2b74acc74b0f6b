package orderrepo

import (
	"context"
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its line items and event log.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items, events := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := r.saveChildren(ctx, items, events); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. The write is conditional on the version
// the aggregate was loaded with; a concurrent writer surfaces as
// errs.VersionIsInvalidError and the caller re-runs its command.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items, events := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order",
			errors.New("order was modified by a concurrent writer"))
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).Delete(&EventDTO{}).Error; err != nil {
		return err
	}
	if err := r.saveChildren(ctx, items, events); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID, including line items and the event log.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetAllActive retrieves orders that have not reached a terminal status.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status NOT IN ?", []int{
			int(order.StatusVendorRejected),
			int(order.StatusDelivered),
			int(order.StatusCancelled),
		}).Error
	if err != nil {
		return nil, err
	}

	return r.loadAll(ctx, dtos)
}

// GetAllInStatus retrieves orders currently in the given status.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status = ?", int(status)).Error; err != nil {
		return nil, err
	}

	return r.loadAll(ctx, dtos)
}

func (r *GormOrderRepository) saveChildren(ctx context.Context, items []ItemDTO, events []EventDTO) error {
	if len(items) > 0 {
		if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
			return err
		}
	}
	if len(events) > 0 {
		if err := r.db.WithContext(ctx).Create(&events).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormOrderRepository) load(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	var items []ItemDTO
	if err := r.db.WithContext(ctx).
		Order("pos").Find(&items, "order_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	var events []EventDTO
	if err := r.db.WithContext(ctx).
		Order("seq").Find(&events, "order_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, items, events)
}

func (r *GormOrderRepository) loadAll(ctx context.Context, dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := r.load(ctx, dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
