package main

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"

	"fulfillment/cmd"
	fulfillmenthttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/clientproductrepo"
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDatabase(configs)

	app := cmd.NewCompositionRoot(configs, gormDB)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := app.CreateJobManager(logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
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

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&orderrepo.AuditDTO{},
		&inventoryrepo.RecordDTO{},
		&clientproductrepo.ClientProductDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := fulfillmenthttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateApproveOrderCommandHandler(),
		app.CreateRejectOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateAllocateLineCommandHandler(),
		app.CreateDispatchLineCommandHandler(),
		app.CreateDeliverLineCommandHandler(),
		app.CreateRestockInventoryCommandHandler(),
		app.CreateGetOpenOrdersQueryHandler(),
		app.CreateGetOrderHistoryQueryHandler(),
		app.CreateGetStockLevelsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
