package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/roster"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type QueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orderRepo *orderrepo.GormOrderRepository
	fleet     *roster.StaticDriverRoster
}

func (suite *QueriesTestSuite) SetupSuite() {
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

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})

	suite.fleet, err = roster.NewStaticDriverRoster()
	suite.Require().NoError(err)
}

func (suite *QueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueriesTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *QueriesTestSuite) newOrder(customerID kernel.UUID, createdAt time.Time) *order.Order {
	customer, err := order.NewCustomer(customerID, "Sarah Chen", "+1-555-0142")
	suite.Require().NoError(err)
	route, err := order.NewRoute("123 Market St", "456 Oak Ave")
	suite.Require().NoError(err)
	value, err := kernel.NewMoneyFromCents(2499)
	suite.Require().NoError(err)
	fee, err := kernel.NewMoneyFromCents(399)
	suite.Require().NoError(err)
	pricing, err := order.NewPricing(value, fee)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), customer, route, order.TypeFood,
		pricing, "Leave at door", createdAt, 30*time.Minute)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *QueriesTestSuite) advanceTo(o *order.Order, target order.Status, driverID kernel.UUID) {
	at := o.CreatedAt()
	for next := order.Confirmed; next <= target; next++ {
		if next == order.PickedUp && o.Driver() == nil {
			suite.Require().NoError(o.AssignDriver(driverID))
		}
		at = at.Add(2 * time.Minute)
		suite.Require().NoError(o.AdvanceTo(next, at))
	}
}

func (suite *QueriesTestSuite) addOrder(o *order.Order) {
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
}

func (suite *QueriesTestSuite) driverID() kernel.UUID {
	drivers, err := suite.fleet.GetAll(context.Background())
	suite.Require().NoError(err)
	return drivers[0].ID
}

func (suite *QueriesTestSuite) TestGetActiveOrders_ReturnsOnlyInFlightStatuses() {
	createdAt := time.Now().UTC().Add(-time.Hour)
	driverID := suite.driverID()

	placed := suite.newOrder(kernel.NewUUID(), createdAt)
	suite.addOrder(placed)

	preparing := suite.newOrder(kernel.NewUUID(), createdAt.Add(time.Minute))
	suite.advanceTo(preparing, order.Preparing, driverID)
	suite.addOrder(preparing)

	confirmed := suite.newOrder(kernel.NewUUID(), createdAt)
	suite.advanceTo(confirmed, order.Confirmed, driverID)
	suite.addOrder(confirmed)

	inTransit := suite.newOrder(kernel.NewUUID(), createdAt.Add(2*time.Minute))
	suite.advanceTo(inTransit, order.InTransit, driverID)
	suite.addOrder(inTransit)

	delivered := suite.newOrder(kernel.NewUUID(), createdAt)
	suite.advanceTo(delivered, order.Delivered, driverID)
	suite.addOrder(delivered)

	cancelled := suite.newOrder(kernel.NewUUID(), createdAt)
	suite.Require().NoError(cancelled.Cancel(createdAt.Add(time.Minute)))
	suite.addOrder(cancelled)

	result, err := queries.NewGetActiveOrdersQueryHandler(suite.db).
		Handle(context.Background(), queries.NewGetActiveOrdersQuery())

	suite.Require().NoError(err)
	suite.Len(result, 3)

	ids := make(map[kernel.UUID]bool)
	for _, summary := range result {
		ids[summary.ID] = true
	}
	suite.True(ids[placed.ID()])
	suite.True(ids[preparing.ID()])
	suite.True(ids[inTransit.ID()])
	suite.False(ids[confirmed.ID()], "confirmed orders are not counted as active")
	suite.False(ids[delivered.ID()])
	suite.False(ids[cancelled.ID()])
}

func (suite *QueriesTestSuite) TestGetActiveOrders_EmptyDatabase() {
	result, err := queries.NewGetActiveOrdersQueryHandler(suite.db).
		Handle(context.Background(), queries.NewGetActiveOrdersQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueriesTestSuite) TestGetActiveOrders_InvalidQuery() {
	_, err := queries.NewGetActiveOrdersQueryHandler(suite.db).
		Handle(context.Background(), queries.GetActiveOrdersQuery{})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetActiveOrdersQuery constructor")
}

func (suite *QueriesTestSuite) TestGetCustomerOrders_NewestFirstAndScoped() {
	customerID := kernel.NewUUID()
	base := time.Now().UTC().Add(-3 * time.Hour)

	oldest := suite.newOrder(customerID, base)
	suite.addOrder(oldest)
	newest := suite.newOrder(customerID, base.Add(2*time.Hour))
	suite.addOrder(newest)
	middle := suite.newOrder(customerID, base.Add(time.Hour))
	suite.addOrder(middle)

	other := suite.newOrder(kernel.NewUUID(), base.Add(time.Minute))
	suite.addOrder(other)

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	suite.Require().NoError(err)

	result, err := queries.NewGetCustomerOrdersQueryHandler(suite.db).
		Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.True(result[0].ID.IsEqual(newest.ID()))
	suite.True(result[1].ID.IsEqual(middle.ID()))
	suite.True(result[2].ID.IsEqual(oldest.ID()))

	suite.Equal("Placed", result[0].StatusLabel)
	suite.Equal("secondary", result[0].StatusColor)
	suite.Equal(int64(2499), result[0].ValueCents)
	suite.Equal(0, result[0].ProgressPercent)
}

func (suite *QueriesTestSuite) TestGetCustomerOrders_CancelledKeepsProgress() {
	customerID := kernel.NewUUID()
	cancelled := suite.newOrder(customerID, time.Now().UTC().Add(-time.Hour))
	suite.advanceTo(cancelled, order.InTransit, suite.driverID())
	inTransitPercent := cancelled.ProgressPercent()
	suite.Require().NoError(cancelled.Cancel(cancelled.CreatedAt().Add(20 * time.Minute)))
	suite.addOrder(cancelled)

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	suite.Require().NoError(err)

	result, err := queries.NewGetCustomerOrdersQueryHandler(suite.db).
		Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(order.Cancelled, result[0].Status)
	suite.Equal(inTransitPercent, result[0].ProgressPercent)
}

func (suite *QueriesTestSuite) TestGetDriverQueue_LiveAssignmentsOldestFirst() {
	driverID := suite.driverID()
	base := time.Now().UTC().Add(-2 * time.Hour)

	second := suite.newOrder(kernel.NewUUID(), base.Add(time.Hour))
	suite.advanceTo(second, order.PickedUp, driverID)
	suite.addOrder(second)

	first := suite.newOrder(kernel.NewUUID(), base)
	suite.advanceTo(first, order.InTransit, driverID)
	suite.addOrder(first)

	finished := suite.newOrder(kernel.NewUUID(), base)
	suite.advanceTo(finished, order.Delivered, driverID)
	suite.addOrder(finished)

	unassigned := suite.newOrder(kernel.NewUUID(), base)
	suite.addOrder(unassigned)

	query, err := queries.NewGetDriverQueueQuery(driverID)
	suite.Require().NoError(err)

	result, err := queries.NewGetDriverQueueQueryHandler(suite.db).
		Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(first.ID()))
	suite.True(result[1].ID.IsEqual(second.ID()))
	suite.Require().NotNil(result[0].DriverID)
	suite.True(result[0].DriverID.IsEqual(driverID))
}

func (suite *QueriesTestSuite) TestGetDashboardMetrics_ComputesAllFigures() {
	driverID := suite.driverID()
	since := time.Now().UTC().Add(-6 * time.Hour)

	delivered := suite.newOrder(kernel.NewUUID(), since.Add(time.Hour))
	suite.advanceTo(delivered, order.Delivered, driverID)
	suite.addOrder(delivered)

	cancelled := suite.newOrder(kernel.NewUUID(), since.Add(2*time.Hour))
	suite.Require().NoError(cancelled.Cancel(since.Add(2*time.Hour + time.Minute)))
	suite.addOrder(cancelled)

	active := suite.newOrder(kernel.NewUUID(), since.Add(3*time.Hour))
	suite.addOrder(active)

	outOfPeriod := suite.newOrder(kernel.NewUUID(), since.Add(-time.Hour))
	suite.advanceTo(outOfPeriod, order.Preparing, driverID)
	suite.addOrder(outOfPeriod)

	aggregator, err := services.NewMetricsAggregator(23)
	suite.Require().NoError(err)

	query, err := queries.NewGetDashboardMetricsQuery(since)
	suite.Require().NoError(err)

	result, err := queries.NewGetDashboardMetricsQueryHandler(suite.db, aggregator).
		Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(2, result.ActiveOrderCount)
	suite.Equal(int64(3*2499), result.TodayRevenueCents)
	suite.InDelta(12, result.AverageDeliveryMinutes, 0.001)
	suite.InDelta(50, result.SuccessRate, 0.001)
}

func (suite *QueriesTestSuite) TestGetDashboardMetrics_EmptyDatabaseDefaults() {
	aggregator, err := services.NewMetricsAggregator(23)
	suite.Require().NoError(err)

	query, err := queries.NewGetDashboardMetricsQuery(time.Now().UTC())
	suite.Require().NoError(err)

	result, err := queries.NewGetDashboardMetricsQueryHandler(suite.db, aggregator).
		Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(0, result.ActiveOrderCount)
	suite.Equal(int64(0), result.TodayRevenueCents)
	suite.InDelta(23, result.AverageDeliveryMinutes, 0.001)
	suite.InDelta(100, result.SuccessRate, 0.001)
}

func (suite *QueriesTestSuite) TestGetOrderTracking_FullView() {
	driverID := suite.driverID()
	aggregate := suite.newOrder(kernel.NewUUID(), time.Now().UTC().Add(-time.Hour))
	suite.advanceTo(aggregate, order.InTransit, driverID)
	suite.addOrder(aggregate)

	query, err := queries.NewGetOrderTrackingQuery(aggregate.ID())
	suite.Require().NoError(err)

	result, err := queries.NewGetOrderTrackingQueryHandler(suite.orderRepo, suite.fleet).
		Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(result.ID.IsEqual(aggregate.ID()))
	suite.Equal(order.InTransit, result.Status)
	suite.Equal("In transit", result.StatusLabel)
	suite.Equal("123 Market St", result.PickupAddress)
	suite.Equal("456 Oak Ave", result.DeliveryAddress)
	suite.Equal("Leave at door", result.SpecialInstructions)
	suite.Require().Len(result.Timeline, 7)

	last := result.Timeline[len(result.Timeline)-1]
	suite.Equal(order.Delivered, last.Status)
	suite.False(last.Completed)
	suite.True(last.Estimated)

	suite.Require().NotNil(result.Driver)
	suite.True(result.Driver.ID.IsEqual(driverID))
	suite.NotEmpty(result.Driver.Vehicle)
}

func (suite *QueriesTestSuite) TestGetOrderTracking_OrderNotFound() {
	query, err := queries.NewGetOrderTrackingQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderTrackingQueryHandler(suite.orderRepo, suite.fleet).
		Handle(context.Background(), query)

	suite.Require().Error(err)
}

func (suite *QueriesTestSuite) TestGetOverdueOrders_PastEstimateOnly() {
	now := time.Now().UTC()

	overdue := suite.newOrder(kernel.NewUUID(), now.Add(-2*time.Hour))
	suite.addOrder(overdue)

	onTime := suite.newOrder(kernel.NewUUID(), now.Add(-5*time.Minute))
	suite.addOrder(onTime)

	deliveredLate := suite.newOrder(kernel.NewUUID(), now.Add(-3*time.Hour))
	suite.advanceTo(deliveredLate, order.Delivered, suite.driverID())
	suite.addOrder(deliveredLate)

	query, err := queries.NewGetOverdueOrdersQuery(now)
	suite.Require().NoError(err)

	result, err := queries.NewGetOverdueOrdersQueryHandler(suite.db).
		Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(overdue.ID()))
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}
