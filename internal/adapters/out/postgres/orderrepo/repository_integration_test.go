package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	customer, err := order.NewCustomer(kernel.NewUUID(), "Sarah Chen", "+1-555-0142")
	suite.Require().NoError(err)
	route, err := order.NewRoute("123 Market St", "456 Oak Ave")
	suite.Require().NoError(err)
	value, err := kernel.NewMoneyFromCents(2499)
	suite.Require().NoError(err)
	fee, err := kernel.NewMoneyFromCents(399)
	suite.Require().NoError(err)
	pricing, err := order.NewPricing(value, fee)
	suite.Require().NoError(err)

	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	aggregate, err := order.NewOrder(kernel.NewUUID(), customer, route, order.TypeFood,
		pricing, "Ring twice", createdAt, 30*time.Minute)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnconstructedOrder_Fails() {
	ctx := context.Background()

	err := suite.repository.Add(ctx, &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsPlacedOrder() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())

	suite.Require().NoError(err)
	suite.True(restored.IsEqual(testOrder))
	suite.Equal(order.Placed, restored.Status())
	suite.Equal("Sarah Chen", restored.Customer().Name())
	suite.Equal("123 Market St", restored.Route().PickupAddress())
	suite.Equal(order.TypeFood, restored.OrderType())
	suite.Equal(int64(2499), restored.Pricing().Value().Cents())
	suite.Equal(int64(399), restored.Pricing().DeliveryFee().Cents())
	suite.Equal("Ring twice", restored.SpecialInstructions())
	suite.Nil(restored.Driver())
	suite.WithinDuration(testOrder.EstimatedDeliveryAt(), restored.EstimatedDeliveryAt(), time.Millisecond)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusHistory() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	driverID := kernel.NewUUID()
	at := testOrder.CreatedAt()
	for next := order.Confirmed; next <= order.InTransit; next++ {
		if next == order.PickedUp {
			suite.Require().NoError(testOrder.AssignDriver(driverID))
		}
		at = at.Add(2 * time.Minute)
		suite.Require().NoError(testOrder.AdvanceTo(next, at))
	}
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())

	suite.Require().NoError(err)
	suite.Equal(order.InTransit, restored.Status())
	suite.Require().NotNil(restored.Driver())
	suite.True(restored.Driver().IsEqual(driverID))

	for _, reached := range []order.Status{order.Confirmed, order.Preparing, order.Ready, order.PickedUp, order.InTransit} {
		want, ok := testOrder.ReachedAt(reached)
		suite.Require().True(ok)
		got, ok := restored.ReachedAt(reached)
		suite.Require().True(ok, "%s must survive the round trip", reached)
		suite.WithinDuration(want, got, time.Millisecond)
	}

	_, delivered := restored.DeliveredAt()
	suite.False(delivered)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsCancellation() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.AdvanceTo(order.Confirmed, testOrder.CreatedAt().Add(time.Minute)))
	suite.Require().NoError(testOrder.Cancel(testOrder.CreatedAt().Add(2 * time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())

	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, restored.Status())
	suite.Equal(order.Confirmed, restored.CancelledFrom())

	_, reached := restored.ReachedAt(order.Cancelled)
	suite.True(reached)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder_Fails() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	err := suite.repository.Update(ctx, testOrder)

	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllNonTerminal_FiltersSettledOrders() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	live := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, live))

	cancelled := suite.createTestOrder()
	suite.Require().NoError(cancelled.Cancel(cancelled.CreatedAt().Add(time.Minute)))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	delivered := suite.createTestOrder()
	driverID := kernel.NewUUID()
	at := delivered.CreatedAt()
	for next := order.Confirmed; next <= order.Delivered; next++ {
		if next == order.PickedUp {
			suite.Require().NoError(delivered.AssignDriver(driverID))
		}
		at = at.Add(time.Minute)
		suite.Require().NoError(delivered.AdvanceTo(next, at))
	}
	suite.Require().NoError(suite.repository.Add(ctx, delivered))

	result, err := suite.repository.GetAllNonTerminal(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].IsEqual(live))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
