package queries_test

import (
	"context"
	"testing"
	"time"

	"buyback/internal/adapters/out/postgres/orderrepo"
	"buyback/internal/core/application/usecases/queries"
	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetActiveOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetActiveOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetActiveOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_OnlyTerminalOrders_ReturnsEmptySlice() {
	ctx := context.Background()
	for i, target := range []order.Status{
		order.OfferAccepted, order.AutoAccepted, order.ReturnLabelGenerated,
	} {
		number, numErr := kernel.OrderNumberFromInt(i + 1)
		suite.Require().NoError(numErr)
		o := buildOrder(&suite.Suite, number.String(), target)
		suite.Require().NoError(suite.orderRepo.Add(ctx, o))
	}

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_MixedStatuses_ReturnsOnlyActive() {
	ctx := context.Background()

	active := []*order.Order{
		buildOrder(&suite.Suite, "10-001", order.PendingShipment),
		buildOrder(&suite.Suite, "10-002", order.LabelGenerated),
		buildOrder(&suite.Suite, "10-003", order.ReofferPending),
		buildOrder(&suite.Suite, "10-004", order.ReturnRequested),
	}
	terminal := []*order.Order{
		buildOrder(&suite.Suite, "20-001", order.OfferAccepted),
		buildOrder(&suite.Suite, "20-002", order.AutoAccepted),
		buildOrder(&suite.Suite, "20-003", order.ReturnLabelGenerated),
	}

	for _, o := range append(append([]*order.Order{}, active...), terminal...) {
		suite.Require().NoError(suite.orderRepo.Add(ctx, o))
	}

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Len(result, len(active))

	resultIDs := make(map[kernel.UUID]bool)
	for _, r := range result {
		resultIDs[r.ID] = true
	}
	for _, o := range active {
		suite.True(resultIDs[o.ID()], "order %s should be in results", o.Number())
	}
	for _, o := range terminal {
		suite.False(resultIDs[o.ID()], "terminal order %s should not be in results", o.Number())
	}
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_MapsRowFields() {
	ctx := context.Background()
	o := buildOrder(&suite.Suite, "42-007", order.ReofferPending)
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(o.ID(), result[0].ID)
	suite.Equal("42-007", result[0].Number)
	suite.Equal("re_offer_pending", result[0].Status)
	suite.Equal("Ada Lovelace", result[0].BuyerName)
	suite.Equal("420.00", result[0].Quote)
	suite.WithinDuration(o.CreatedAt(), result[0].CreatedAt, time.Millisecond)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	var invalidQuery queries.GetActiveOrdersQuery

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().ErrorIs(err, queries.ErrGetActiveOrdersQueryIsNotConstructed)
	suite.Nil(result)
}

func TestGetActiveOrdersQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GetActiveOrdersQueryHandlerTestSuite))
}
