package main

import (
	"fmt"
	"log/slog"
	"os"

	"buyback/cmd"
	httpin "buyback/internal/adapters/in/http"
	"buyback/internal/adapters/out/postgres/orderrepo"
	"buyback/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := connectDB(configs)

	root, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(
		root.CreateSweepExpiredReoffersCommandHandler(),
		configs.ReofferSweepSchedule,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		TicketingBaseURL:     goDotEnvVariable("TICKETING_BASE_URL"),
		TicketingToken:       goDotEnvVariable("TICKETING_TOKEN"),
		LabelAPIURL:          goDotEnvVariable("LABEL_API_URL"),
		LabelAPIKey:          goDotEnvVariable("LABEL_API_KEY"),
		BusinessName:         goDotEnvVariable("BUSINESS_NAME"),
		BusinessStreet:       goDotEnvVariable("BUSINESS_STREET"),
		BusinessCity:         goDotEnvVariable("BUSINESS_CITY"),
		BusinessState:        goDotEnvVariable("BUSINESS_STATE"),
		BusinessPostalCode:   goDotEnvVariable("BUSINESS_POSTAL_CODE"),
		BusinessCountry:      goDotEnvVariable("BUSINESS_COUNTRY"),
		BusinessPhone:        goDotEnvVariable("BUSINESS_PHONE"),
		ReofferSweepSchedule: goDotEnvVariable("REOFFER_SWEEP_SCHEDULE"),
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

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		root.CreateSubmitOrderCommandHandler(),
		root.CreateGenerateLabelCommandHandler(),
		root.CreateGenerateReturnLabelCommandHandler(),
		root.CreateSubmitReofferCommandHandler(),
		root.CreateResolveReofferCommandHandler(),
		root.CreateUpdateOrderStatusCommandHandler(),
		root.CreateSweepExpiredReoffersCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetActiveOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
