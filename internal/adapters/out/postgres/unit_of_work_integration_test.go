package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "afrimercato/internal/adapters/out/postgres"
	"afrimercato/internal/adapters/out/postgres/orderrepo"
	"afrimercato/internal/adapters/out/postgres/productrepo"
	"afrimercato/internal/adapters/out/postgres/proposalrepo"
	"afrimercato/internal/adapters/out/postgres/vendorrepo"
	"afrimercato/internal/adapters/out/postgres/workerrepo"
	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/model/product"
	"afrimercato/internal/core/domain/model/substitution"
	"afrimercato/internal/core/domain/model/vendor"
	"afrimercato/internal/core/domain/model/worker"
	"afrimercato/internal/core/ports"
	"afrimercato/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based unit of work and
// its repositories against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite starts the PostgreSQL container, connects, and migrates the
// schema used by the repositories.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.EventDTO{},
		&vendorrepo.VendorDTO{},
		&workerrepo.WorkerDTO{},
		&productrepo.ProductDTO{},
		&proposalrepo.ProposalDTO{},
		&proposalrepo.AlternativeDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE
		orders, order_items, order_events,
		vendors, workers, products,
		substitution_proposals, substitution_alternatives`).Error
	suite.Require().NoError(err)
}

// TearDownSuite terminates the PostgreSQL container.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.VendorRepository())
	suite.NotNil(uow2.WorkerRepository())
	suite.NotNil(uow2.ProposalRepository())
	suite.NotNil(uow2.ProductRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Error(err, "Commit without active transaction should fail")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_RoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	aggregate := suite.createTestOrder()
	suite.Require().NoError(aggregate.AcceptByVendor("confirmed"))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	restored, err := suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.True(restored.IsEqual(aggregate))
	suite.Equal(order.StatusVendorAccepted, restored.Status())
	suite.Equal(aggregate.CustomerID(), restored.CustomerID())
	suite.Len(restored.Items(), 2)
	suite.True(restored.Total().IsEqual(aggregate.Total()))
	suite.Len(restored.Events(), 2)
	suite.Equal("confirmed", restored.LatestEvent().Note())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_ConcurrentUpdateConflict() {
	ctx := context.Background()

	aggregate := suite.createTestOrder()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	// Two loads of the same aggregate, as two concurrent handlers would see it.
	first, err := suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	second, err := suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.AcceptByVendor(""))
	suite.Require().NoError(suite.factory.Create().OrderRepository().Update(ctx, first))

	suite.Require().NoError(second.Cancel(kernel.RoleCustomer, ""))
	err = suite.factory.Create().OrderRepository().Update(ctx, second)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid, "The losing writer must see a version conflict")

	// The winner's write is the one that stuck.
	current, err := suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusVendorAccepted, current.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestWorkerRepository_ConcurrentBookingConflict() {
	ctx := context.Background()

	vendorID := kernel.NewUUID()
	picker, err := worker.NewPicker(kernel.NewUUID(), "Chinedu", vendorID)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.WorkerRepository().Add(ctx, picker))
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().WorkerRepository()
	first, err := repo.Get(ctx, picker.ID())
	suite.Require().NoError(err)
	second, err := repo.Get(ctx, picker.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Book(kernel.NewUUID()))
	suite.Require().NoError(repo.Update(ctx, first))

	suite.Require().NoError(second.Book(kernel.NewUUID()))
	err = repo.Update(ctx, second)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid, "Two orders must never book the same worker")

	idle, err := repo.GetIdlePickersForVendor(ctx, vendorID)
	suite.Require().NoError(err)
	suite.Empty(idle, "A booked picker is not idle")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestWorkerRepository_IdleFiltering() {
	ctx := context.Background()

	vendorID := kernel.NewUUID()
	picker, err := worker.NewPicker(kernel.NewUUID(), "Amaka", vendorID)
	suite.Require().NoError(err)
	foreignPicker, err := worker.NewPicker(kernel.NewUUID(), "Bola", kernel.NewUUID())
	suite.Require().NoError(err)
	rider, err := worker.NewRider(kernel.NewUUID(), "Tunde", "lekki")
	suite.Require().NoError(err)
	offlineRider, err := worker.NewRider(kernel.NewUUID(), "Segun", "lekki")
	suite.Require().NoError(err)
	offlineRider.GoOffline()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	repo := uow.WorkerRepository()
	for _, w := range []*worker.Worker{picker, foreignPicker, rider, offlineRider} {
		suite.Require().NoError(repo.Add(ctx, w))
	}
	suite.Require().NoError(uow.Commit(ctx))

	freshRepo := suite.factory.Create().WorkerRepository()

	pickers, err := freshRepo.GetIdlePickersForVendor(ctx, vendorID)
	suite.Require().NoError(err)
	suite.Len(pickers, 1, "Only the vendor's own idle picker qualifies")
	suite.Equal(picker.ID(), pickers[0].ID())

	riders, err := freshRepo.GetIdleRiders(ctx, nil)
	suite.Require().NoError(err)
	suite.Len(riders, 1, "Offline riders are excluded")
	suite.Equal(rider.ID(), riders[0].ID())

	riders, err = freshRepo.GetIdleRiders(ctx, []kernel.UUID{offlineRider.ID()})
	suite.Require().NoError(err)
	suite.Empty(riders, "Candidate filter restricts the result")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestVendorRepository_PendingListing() {
	ctx := context.Background()

	pending, err := vendor.NewVendor(kernel.NewUUID(), "Mama Nkechi Provisions", "groceries")
	suite.Require().NoError(err)
	approved, err := vendor.NewVendor(kernel.NewUUID(), "Lagos Fresh Foods", "groceries")
	suite.Require().NoError(err)
	suite.Require().NoError(approved.Approve("looks good"))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.VendorRepository().Add(ctx, pending))
	suite.Require().NoError(uow.VendorRepository().Add(ctx, approved))
	suite.Require().NoError(uow.Commit(ctx))

	vendors, err := suite.factory.Create().VendorRepository().GetAllPending(ctx)
	suite.Require().NoError(err)
	suite.Len(vendors, 1)
	suite.Equal(pending.ID(), vendors[0].ID())
	suite.Equal("Mama Nkechi Provisions", vendors[0].StoreName())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestVendorRepository_ConcurrentDecisionConflict() {
	ctx := context.Background()

	registered, err := vendor.NewVendor(kernel.NewUUID(), "Eko Market Hub", "groceries")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.VendorRepository().Add(ctx, registered))
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().VendorRepository()
	first, err := repo.Get(ctx, registered.ID())
	suite.Require().NoError(err)
	second, err := repo.Get(ctx, registered.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Approve("docs verified"))
	suite.Require().NoError(repo.Update(ctx, first))

	suite.Require().NoError(second.Reject("stale review tab"))
	err = repo.Update(ctx, second)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid, "The losing decision must not overwrite the winner")

	settled, err := repo.Get(ctx, registered.ID())
	suite.Require().NoError(err)
	suite.Equal(vendor.ApprovalApproved, settled.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestProductRepository_GetByIDs() {
	ctx := context.Background()

	vendorID := kernel.NewUUID()
	yam, err := product.NewProduct(kernel.NewUUID(), vendorID, "Yam Tuber", "pcs", kernel.NewMoney(1200))
	suite.Require().NoError(err)
	rice, err := product.NewProduct(kernel.NewUUID(), vendorID, "Ofada Rice 5kg", "bag", kernel.NewMoney(9500))
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, yam))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, rice))
	suite.Require().NoError(uow.Commit(ctx))

	missing := kernel.NewUUID()
	products, err := suite.factory.Create().ProductRepository().
		GetByIDs(ctx, []kernel.UUID{yam.ID(), rice.ID(), missing})
	suite.Require().NoError(err)
	suite.Len(products, 2, "Missing identifiers are absent, not errors")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestProposalRepository_RoundTripAndExpiry() {
	ctx := context.Background()

	aggregate := suite.createTestOrder()
	itemID := aggregate.Items()[0].ID()

	alt, err := substitution.NewAlternative(
		kernel.NewUUID(), "Dano Milk 1L", kernel.NewMoney(1100), 0.9)
	suite.Require().NoError(err)

	overdue, err := substitution.NewProposal(
		kernel.NewUUID(), aggregate.ID(), itemID, aggregate.Items()[0].ProductID(),
		substitution.IssueTypeOutOfStock,
		[]substitution.Alternative{alt},
		time.Now().UTC().Add(-time.Minute),
	)
	suite.Require().NoError(err)

	fresh, err := substitution.NewProposal(
		kernel.NewUUID(), aggregate.ID(), aggregate.Items()[1].ID(),
		aggregate.Items()[1].ProductID(),
		substitution.IssueTypeQuality,
		nil,
		time.Now().UTC().Add(time.Hour),
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProposalRepository().Add(ctx, overdue))
	suite.Require().NoError(uow.ProposalRepository().Add(ctx, fresh))
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().ProposalRepository()

	restored, err := repo.Get(ctx, overdue.ID())
	suite.Require().NoError(err)
	suite.Equal(substitution.IssueTypeOutOfStock, restored.IssueType())
	suite.Require().Len(restored.Alternatives(), 1)
	suite.Equal("Dano Milk 1L", restored.Alternatives()[0].Name())

	open, err := repo.GetOpenByLineItem(ctx, itemID)
	suite.Require().NoError(err)
	suite.Equal(overdue.ID(), open.ID())

	expired, err := repo.GetAllExpired(ctx, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Len(expired, 1, "Only the overdue proposal is due for the sweep")
	suite.Equal(overdue.ID(), expired[0].ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestProposalRepository_ConcurrentResolveConflict() {
	ctx := context.Background()

	aggregate := suite.createTestOrder()
	proposal, err := substitution.NewProposal(
		kernel.NewUUID(), aggregate.ID(), aggregate.Items()[0].ID(),
		aggregate.Items()[0].ProductID(),
		substitution.IssueTypeOutOfStock,
		nil,
		time.Now().UTC().Add(-time.Minute),
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProposalRepository().Add(ctx, proposal))
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().ProposalRepository()
	customerCopy, err := repo.Get(ctx, proposal.ID())
	suite.Require().NoError(err)
	sweepCopy, err := repo.Get(ctx, proposal.ID())
	suite.Require().NoError(err)

	// The customer's rejection lands first.
	suite.Require().NoError(customerCopy.Reject())
	suite.Require().NoError(repo.Update(ctx, customerCopy))

	// The timeout sweep loses the race and must not double-resolve.
	suite.True(sweepCopy.Expire(time.Now().UTC()))
	err = repo.Update(ctx, sweepCopy)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)

	current, err := repo.Get(ctx, proposal.ID())
	suite.Require().NoError(err)
	suite.False(current.TimedOut())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()

	aggregate := suite.createTestOrder()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

// createTestOrder builds a two-item placed order.
func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
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

	return aggregate
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
