package commands_test

import (
	"context"
	"testing"
	"time"

	"buyback/internal/core/application/usecases/commands"
	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/core/domain/model/order"
	domainservices "buyback/internal/core/domain/services"
	"buyback/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateInStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) BindThread(ctx context.Context, id kernel.UUID, threadID string) error {
	args := m.Called(ctx, id, threadID)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllReofferExpired(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

// MockOrderUoW satisfies both commands.OrderUoW and ports.UnitOfWork; the
// interfaces share the same method set.
type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPortsUoWFactory struct{ mock.Mock }

func (m *MockPortsUoWFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}

type MockThreadProvider struct{ mock.Mock }

func (m *MockThreadProvider) CreateThread(ctx context.Context, thread ports.NewThread) (string, error) {
	args := m.Called(ctx, thread)
	return args.String(0), args.Error(1)
}

func (m *MockThreadProvider) AppendComment(
	ctx context.Context, threadID, body string, visibility ports.ThreadVisibility,
) error {
	args := m.Called(ctx, threadID, body, visibility)
	return args.Error(0)
}

type MockLabelProvider struct{ mock.Mock }

func (m *MockLabelProvider) CreateLabel(
	ctx context.Context, route domainservices.LabelRoute,
) (ports.LabelInfo, error) {
	args := m.Called(ctx, route)
	return args.Get(0).(ports.LabelInfo), args.Error(1)
}

func mustMoney(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	return m
}

func testShipping(t *testing.T) order.ShippingInfo {
	t.Helper()
	shipping, err := order.NewShippingInfo(
		"Ada Lovelace", "12 Analytical Way", "Reno", "NV", "89501", "US",
		"ada@example.com", "")
	require.NoError(t, err)
	return shipping
}

func restoreOrderInStatus(t *testing.T, status order.Status, reoffer *order.Reoffer) *order.Order {
	t.Helper()
	number, err := kernel.NewOrderNumber("42-007")
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(), number, testShipping(t), mustMoney(t, 420.00), status,
		reoffer, nil, "", "", "", "",
		time.Now().UTC().Add(-time.Hour), nil, nil, nil, nil)
	require.NoError(t, err)
	return o
}

func expiredReoffer(t *testing.T) *order.Reoffer {
	t.Helper()
	issued := time.Now().UTC().Add(-order.ReofferResponseWindow - time.Hour)
	reoffer, err := order.RestoreReoffer(
		mustMoney(t, 350.00), []string{"cracked screen"}, "",
		issued, issued.Add(order.ReofferResponseWindow),
		order.ResolutionNone, nil)
	require.NoError(t, err)
	return reoffer
}

func pendingReoffer(t *testing.T) *order.Reoffer {
	t.Helper()
	reoffer, err := order.NewReoffer(
		mustMoney(t, 350.00), []string{"cracked screen"}, "", time.Now().UTC())
	require.NoError(t, err)
	return reoffer
}
