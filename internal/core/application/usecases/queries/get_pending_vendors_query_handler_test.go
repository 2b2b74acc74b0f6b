package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "afrimercato/internal/adapters/out/postgres"
	"afrimercato/internal/adapters/out/postgres/vendorrepo"
	"afrimercato/internal/core/application/usecases/queries"
	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/vendor"
	"afrimercato/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetPendingVendorsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	handler   queries.GetPendingVendorsQueryHandler
}

func (suite *GetPendingVendorsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&vendorrepo.VendorDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
	suite.handler = queries.NewGetPendingVendorsQueryHandler(db)
}

func (suite *GetPendingVendorsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetPendingVendorsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE vendors").Error
	suite.Require().NoError(err)
}

func (suite *GetPendingVendorsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(context.Background(), queries.NewGetPendingVendorsQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetPendingVendorsQueryHandlerTestSuite) TestHandle_ReturnsOnlyPendingVendors() {
	ctx := context.Background()
	repo := suite.factory.Create().VendorRepository()

	pending, err := vendor.NewVendor(kernel.NewUUID(), "Mama Nkechi Provisions", "groceries")
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, pending))

	suspended, err := vendor.NewVendor(kernel.NewUUID(), "Eko Market Stall", "produce")
	suite.Require().NoError(err)
	suite.Require().NoError(suspended.Approve(""))
	suite.Require().NoError(suspended.Suspend("late fulfilment"))
	suite.Require().NoError(repo.Add(ctx, suspended))

	result, err := suite.handler.Handle(ctx, queries.NewGetPendingVendorsQuery())
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(pending.ID(), result[0].ID)
	suite.Equal("Mama Nkechi Provisions", result[0].StoreName)
	suite.Equal("groceries", result[0].Category)
}

func TestGetPendingVendorsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetPendingVendorsQueryHandlerTestSuite))
}
