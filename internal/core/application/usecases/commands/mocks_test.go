package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/guide"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
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

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockGuideRepository struct{ mock.Mock }

func (m *MockGuideRepository) Add(ctx context.Context, g *guide.ShippingGuide) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuideRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type MockEventRepository struct{ mock.Mock }

func (m *MockEventRepository) Add(ctx context.Context, evt *event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*event.Event, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*event.Event), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) GuideRepository() ports.GuideRepository {
	args := m.Called()
	return args.Get(0).(ports.GuideRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor("op-1", "armazem", "Operator One")
	require.NoError(t, err)
	return actor
}

func testDate() time.Time {
	return time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
}

func testItem(t *testing.T, productID string, qty float64) order.Item {
	t.Helper()
	key, err := kernel.NewProductKey(productID, "kg", "Produto "+productID)
	require.NoError(t, err)
	item, err := order.NewItem(key, kernel.QuantityFromFloat(qty))
	require.NoError(t, err)
	return item
}

func preparedItem(t *testing.T, productID string, qty, prepared float64) order.Item {
	t.Helper()
	key, err := kernel.NewProductKey(productID, "kg", "Produto "+productID)
	require.NoError(t, err)
	item, err := order.RestoreItem(
		key,
		kernel.QuantityFromFloat(qty),
		kernel.QuantityFromFloat(prepared),
		kernel.ZeroQuantity(),
		"",
	)
	require.NoError(t, err)
	return item
}

// restoredOrder builds an order in an arbitrary persisted state for handler
// tests that start mid-lifecycle.
func restoredOrder(t *testing.T, p order.RestoreOrderParams) *order.Order {
	t.Helper()
	if p.Date.IsZero() {
		p.Date = testDate()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = testDate()
		p.UpdatedAt = testDate()
	}
	o, err := order.RestoreOrder(p)
	require.NoError(t, err)
	return o
}
