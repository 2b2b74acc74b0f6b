// Package workerrepo provides data transfer objects and mapping functions
// for picker and rider persistence.
package workerrepo

import (
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

// WorkerDTO represents the database structure for persisting worker aggregates.
// Pickers carry a vendor affiliation; riders carry a delivery zone.
type WorkerDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string
	Kind           int        `gorm:"index"`
	VendorID       *uuid.UUID `gorm:"type:uuid;index"`
	Zone           string
	Availability   int        `gorm:"index"`
	ActiveOrderID  *uuid.UUID `gorm:"type:uuid"`
	LastAssignedAt time.Time
}

// TableName specifies the database table name for worker entities.
func (WorkerDTO) TableName() string {
	return "workers"
}

// fromDomain converts a worker domain aggregate to its database representation.
func fromDomain(aggregate *worker.Worker) WorkerDTO {
	return WorkerDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		Kind:           int(aggregate.Kind()),
		VendorID:       uuidPtr(aggregate.VendorID()),
		Zone:           aggregate.Zone(),
		Availability:   int(aggregate.Availability()),
		ActiveOrderID:  uuidPtr(aggregate.ActiveOrderID()),
		LastAssignedAt: aggregate.LastAssignedAt(),
	}
}

// toDomain converts a database DTO to a worker domain aggregate.
func toDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernelPtr(dto.VendorID)
	if err != nil {
		return nil, err
	}
	activeOrderID, err := kernelPtr(dto.ActiveOrderID)
	if err != nil {
		return nil, err
	}

	return worker.RestoreWorker(
		id,
		dto.Name,
		worker.Kind(dto.Kind),
		vendorID,
		dto.Zone,
		worker.Availability(dto.Availability),
		activeOrderID,
		dto.LastAssignedAt,
	)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
