// Package vendorrepo provides data transfer objects and mapping functions
// for vendor persistence.
package vendorrepo

import (
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/vendor"

	"github.com/google/uuid"
)

// VendorDTO represents the database structure for persisting vendor aggregates.
type VendorDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreName string
	Category  string
	Status    int `gorm:"index"`
	Note      string
	CreatedAt time.Time
	DecidedAt *time.Time
}

// TableName specifies the database table name for vendor entities.
func (VendorDTO) TableName() string {
	return "vendors"
}

// fromDomain converts a vendor domain aggregate to its database representation.
func fromDomain(aggregate *vendor.Vendor) VendorDTO {
	return VendorDTO{
		ID:        aggregate.ID().Bytes(),
		StoreName: aggregate.StoreName(),
		Category:  aggregate.Category(),
		Status:    int(aggregate.Status()),
		Note:      aggregate.Note(),
		CreatedAt: aggregate.CreatedAt(),
		DecidedAt: aggregate.DecidedAt(),
	}
}

// toDomain converts a database DTO to a vendor domain aggregate.
func toDomain(dto VendorDTO) (*vendor.Vendor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return vendor.RestoreVendor(
		id,
		dto.StoreName,
		dto.Category,
		vendor.ApprovalStatus(dto.Status),
		dto.Note,
		dto.CreatedAt,
		dto.DecidedAt,
	)
}
