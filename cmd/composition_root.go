package cmd

import (
	"fmt"
	"strconv"
	"time"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/roster"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	roster     ports.DriverRoster
	placement  commands.PlacementConfig
	aggregator services.MetricsAggregator
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	placement, err := buildPlacementConfig(config)
	if err != nil {
		return CompositionRoot{}, err
	}

	baseline, err := parseFloat("BASELINE_DELIVERY_MINUTES", config.BaselineDeliveryMinutes)
	if err != nil {
		return CompositionRoot{}, err
	}
	aggregator, err := services.NewMetricsAggregator(baseline)
	if err != nil {
		return CompositionRoot{}, err
	}

	driverRoster, err := roster.NewStaticDriverRoster()
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		roster:     driverRoster,
		placement:  placement,
		aggregator: aggregator,
	}, nil
}

func buildPlacementConfig(config Config) (commands.PlacementConfig, error) {
	valueCents, err := parseInt("ORDER_VALUE_CENTS", config.OrderValueCents)
	if err != nil {
		return commands.PlacementConfig{}, err
	}
	orderValue, err := kernel.NewMoneyFromCents(valueCents)
	if err != nil {
		return commands.PlacementConfig{}, err
	}

	feeCents, err := parseInt("DELIVERY_FEE_CENTS", config.DeliveryFeeCents)
	if err != nil {
		return commands.PlacementConfig{}, err
	}
	deliveryFee, err := kernel.NewMoneyFromCents(feeCents)
	if err != nil {
		return commands.PlacementConfig{}, err
	}

	etaMinutes, err := parseInt("ETA_OFFSET_MINUTES", config.EtaOffsetMinutes)
	if err != nil {
		return commands.PlacementConfig{}, err
	}

	return commands.NewPlacementConfig(orderValue, deliveryFee, time.Duration(etaMinutes)*time.Minute)
}

func parseInt(name, value string) (int64, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q: %w", name, value, err)
	}
	return parsed, nil
}

func parseFloat(name, value string) (float64, error) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q: %w", name, value, err)
	}
	return parsed, nil
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.placement)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.orderUoWFactory(), c.roster)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.uowFactory.Create().OrderRepository(), c.roster)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardMetricsQueryHandler() queries.GetDashboardMetricsQueryHandler {
	return queries.NewGetDashboardMetricsQueryHandler(c.gormDB, c.aggregator)
}

func (c *CompositionRoot) CreateGetDriverQueueQueryHandler() queries.GetDriverQueueQueryHandler {
	return queries.NewGetDriverQueueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueOrdersQueryHandler() queries.GetOverdueOrdersQueryHandler {
	return queries.NewGetOverdueOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
