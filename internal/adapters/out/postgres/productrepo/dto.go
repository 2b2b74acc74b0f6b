// Package productrepo provides data transfer objects and mapping functions
// for catalog product persistence.
package productrepo

import (
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting catalog products.
type ProductDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	VendorID  uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Unit      string
	Price     int64
	Active    bool `gorm:"index"`
	UpdatedAt time.Time
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain entity to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:        aggregate.ID().Bytes(),
		VendorID:  aggregate.VendorID().Bytes(),
		Name:      aggregate.Name(),
		Unit:      aggregate.Unit(),
		Price:     aggregate.Price().Amount(),
		Active:    aggregate.IsActive(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a product domain entity.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id,
		vendorID,
		dto.Name,
		dto.Unit,
		kernel.NewMoney(dto.Price),
		dto.Active,
		dto.UpdatedAt,
	)
}
