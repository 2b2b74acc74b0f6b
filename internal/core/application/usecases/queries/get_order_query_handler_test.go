package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "afrimercato/internal/adapters/out/postgres"
	"afrimercato/internal/adapters/out/postgres/orderrepo"
	"afrimercato/internal/core/application/usecases/queries"
	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/ports"
	"afrimercato/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	handler   queries.GetOrderQueryHandler
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &orderrepo.EventDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
	suite.handler = queries.NewGetOrderQueryHandler(db)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, order_events").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ReturnsItemsEventsAndLabels() {
	ctx := context.Background()

	milk, err := order.NewLineItem(
		kernel.NewUUID(), kernel.NewUUID(), "Peak Milk 1L", 2, "pcs", kernel.NewMoney(1250))
	suite.Require().NoError(err)
	bread, err := order.NewLineItem(
		kernel.NewUUID(), kernel.NewUUID(), "Agege Bread", 1, "pcs", kernel.NewMoney(800))
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]*order.LineItem{milk, bread})
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AcceptByVendor("confirmed"))

	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, aggregate))

	query, err := queries.NewGetOrderQuery(aggregate.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(aggregate.ID(), resp.ID)
	suite.Equal("VendorAccepted", resp.Status)
	suite.Equal(order.StatusVendorAccepted.CustomerLabel(), resp.CustomerLabel)
	suite.Equal(order.StatusVendorAccepted.RiderLabel(), resp.RiderLabel)
	suite.Equal(int64(3300), resp.TotalMinor)

	suite.Require().Len(resp.Items, 2)
	suite.Equal("Peak Milk 1L", resp.Items[0].Name)
	suite.Equal("Unpicked", resp.Items[0].State)
	suite.Nil(resp.Items[0].SubstitutedProductID)

	suite.Require().Len(resp.Events, 2)
	suite.Equal("Placed", resp.Events[0].To)
	suite.Equal("VendorAccepted", resp.Events[1].To)
	suite.Equal("confirmed", resp.Events[1].Note)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_OutOfStockItemExcludedFromTotal() {
	ctx := context.Background()

	milk, err := order.NewLineItem(
		kernel.NewUUID(), kernel.NewUUID(), "Peak Milk 1L", 2, "pcs", kernel.NewMoney(1250))
	suite.Require().NoError(err)
	bread, err := order.NewLineItem(
		kernel.NewUUID(), kernel.NewUUID(), "Agege Bread", 1, "pcs", kernel.NewMoney(800))
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]*order.LineItem{milk, bread})
	suite.Require().NoError(err)

	pickerID := kernel.NewUUID()
	suite.Require().NoError(aggregate.AcceptByVendor(""))
	suite.Require().NoError(aggregate.AssignPicker(pickerID))
	suite.Require().NoError(aggregate.StartPicking(pickerID))
	suite.Require().NoError(aggregate.PickItem(pickerID, bread.ID()))
	suite.Require().NoError(aggregate.MarkItemSubstitutionPending(pickerID, milk.ID()))
	suite.Require().NoError(aggregate.ApplySubstitutionRejection(milk.ID(), kernel.RoleCustomer, ""))

	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, aggregate))

	query, err := queries.NewGetOrderQuery(aggregate.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(int64(800), resp.TotalMinor, "Out-of-stock milk must not count")
	suite.Equal("OutOfStock", resp.Items[0].State)
	suite.Equal("Picked", resp.Items[1].State)
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
