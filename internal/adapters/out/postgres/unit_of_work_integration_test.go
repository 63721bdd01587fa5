package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "buyback/internal/adapters/out/postgres"
	"buyback/internal/adapters/out/postgres/orderrepo"
	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/core/domain/model/order"
	"buyback/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

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

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// newTestOrder builds a valid pending order with the given NN-NNN number.
func (suite *UnitOfWorkIntegrationTestSuite) newTestOrder(number string) *order.Order {
	shipping, err := order.NewShippingInfo(
		"Ada Lovelace", "12 Analytical Way", "Reno", "NV", "89501", "US",
		"ada@example.com", "+1 775 555 0100")
	suite.Require().NoError(err)

	orderNumber, err := kernel.NewOrderNumber(number)
	suite.Require().NoError(err)

	quote, err := kernel.NewMoney(420.00)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), orderNumber, shipping, quote,
		time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIndependentInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow2.OrderRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// A second Begin on an open transaction is a no-op.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err)

	err = uow.Rollback(ctx)
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitPersistsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := suite.newTestOrder("42-007")

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, o)
	suite.Require().NoError(err)

	// Visible inside the transaction before commit.
	got, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(o.IsEqual(got))

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	got, err = newUow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(o.IsEqual(got))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := suite.newTestOrder("42-007")

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, o)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, o.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransitionAndLabelWithinOneTransaction() {
	ctx := context.Background()
	o := suite.newTestOrder("42-007")

	setupUow := suite.factory.Create()
	err := setupUow.OrderRepository().Add(ctx, o)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	err = o.MarkLabelGenerated(now)
	suite.Require().NoError(err)
	err = uow.OrderRepository().UpdateInStatus(ctx, o, order.PendingShipment)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	got, err := newUow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.LabelGenerated, got.Status())
	suite.NotNil(got.LabelGeneratedAt())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := suite.newTestOrder("11-111")
	order2 := suite.newTestOrder("22-222")

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)
	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.OrderRepository().Add(ctx, order1)
	suite.Require().NoError(err)
	err = uow2.OrderRepository().Add(ctx, order2)
	suite.Require().NoError(err)

	// Each transaction sees only its own insert.
	_, err = uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err)
	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err)

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)
	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err)
	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestWithoutTransactionAutoCommits() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := suite.newTestOrder("42-007")

	err := uow.OrderRepository().Add(ctx, o)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	got, err := newUow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(o.IsEqual(got))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
