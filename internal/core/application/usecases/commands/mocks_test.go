package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

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

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllNonTerminal(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
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

type MockDriverRoster struct{ mock.Mock }

func (m *MockDriverRoster) Get(ctx context.Context, id kernel.UUID) (ports.Driver, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Driver), args.Error(1)
}

func (m *MockDriverRoster) GetAll(ctx context.Context) ([]ports.Driver, error) {
	args := m.Called(ctx)
	return args.Get(0).([]ports.Driver), args.Error(1)
}

func testPlacement(t *testing.T) commands.PlacementConfig {
	t.Helper()
	value, err := kernel.NewMoneyFromCents(2499)
	require.NoError(t, err)
	fee, err := kernel.NewMoneyFromCents(399)
	require.NoError(t, err)
	placement, err := commands.NewPlacementConfig(value, fee, 30*time.Minute)
	require.NoError(t, err)
	return placement
}

func placedAggregate(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	customer, err := order.NewCustomer(kernel.NewUUID(), "Sarah Chen", "")
	require.NoError(t, err)
	route, err := order.NewRoute("123 Market St", "456 Oak Ave")
	require.NoError(t, err)
	value, err := kernel.NewMoneyFromCents(2499)
	require.NoError(t, err)
	fee, err := kernel.NewMoneyFromCents(399)
	require.NoError(t, err)
	pricing, err := order.NewPricing(value, fee)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(id, customer, route, order.TypeFood, pricing, "",
		time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC), 30*time.Minute)
	require.NoError(t, err)
	return aggregate
}
