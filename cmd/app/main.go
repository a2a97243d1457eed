package main

import (
	"fmt"
	"log/slog"
	"os"

	"marketplace/cmd"
	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateGetDashboardMetricsQueryHandler(),
		app.CreateGetOverdueOrdersQueryHandler(),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		OrderValueCents:         goDotEnvVariable("ORDER_VALUE_CENTS"),
		DeliveryFeeCents:        goDotEnvVariable("DELIVERY_FEE_CENTS"),
		EtaOffsetMinutes:        goDotEnvVariable("ETA_OFFSET_MINUTES"),
		BaselineDeliveryMinutes: goDotEnvVariable("BASELINE_DELIVERY_MINUTES"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateAssignDriverCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateGetOrderTrackingQueryHandler(),
		app.CreateGetCustomerOrdersQueryHandler(),
		app.CreateGetActiveOrdersQueryHandler(),
		app.CreateGetDashboardMetricsQueryHandler(),
		app.CreateGetDriverQueueQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
