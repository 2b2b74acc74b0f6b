package postgres

import (
	"afrimercato/internal/adapters/out/postgres/orderrepo"
	"afrimercato/internal/adapters/out/postgres/productrepo"
	"afrimercato/internal/adapters/out/postgres/proposalrepo"
	"afrimercato/internal/adapters/out/postgres/vendorrepo"
	"afrimercato/internal/adapters/out/postgres/workerrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every persistence model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&vendorrepo.VendorDTO{},
		&productrepo.ProductDTO{},
		&workerrepo.WorkerDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.EventDTO{},
		&proposalrepo.ProposalDTO{},
		&proposalrepo.AlternativeDTO{},
	)
}
