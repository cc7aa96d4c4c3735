package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"productpanel/internal/handlers"
	"productpanel/internal/middleware"
	"productpanel/internal/models"
	"productpanel/internal/repositories"
	"productpanel/internal/services"
	"productpanel/pkg/rabbitmq"
	"productpanel/pkg/validator"
)

func main() {
	setupLogger()

	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "products.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	// --- Initialize Repository ---
	// DB_DRIVER=memory runs the panel without a database, handy for demos.
	var productRepo repositories.ProductRepository
	if viper.GetString("DB_DRIVER") == "memory" {
		repo := repositories.NewMockProductRepository()
		seedProducts(repo)
		productRepo = repo
	} else {
		db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DATABASE_DSN"))
		if err != nil {
			logrus.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.Product{}); err != nil {
			logrus.Fatalf("Failed to migrate database: %v", err)
		}
		productRepo = repositories.NewGORMProductRepository(db)
	}

	// --- Initialize RabbitMQ Client ---
	// Product change events are optional; with no broker URL configured the
	// panel runs without publishing.
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			logrus.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	app := NewApp(productRepo, mqClient)

	// --- Start HTTP Server ---
	appPort := viper.GetString("APP_PORT")
	logrus.Infof("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	logrus.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logrus.Errorf("Error during Fiber shutdown: %v", err)
	}
	logrus.Info("Server gracefully stopped")
}

// NewApp wires the repository, service and handlers into a Fiber app.
func NewApp(productRepo repositories.ProductRepository, mqClient *rabbitmq.Client) *fiber.App {
	productService := services.NewProductService(productRepo, mqClient)
	productHandler := handlers.NewProductHandler(productService, validator.NewValidator())

	app := fiber.New()

	// --- Middleware ---
	app.Use(middleware.RequestID())
	app.Use(logger.New())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	productHandler.RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

// setupLogger configures the logrus logger.
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// seedProducts populates the in-memory repository with some initial data.
func seedProducts(repo repositories.ProductRepository) {
	description := "High performance laptop"
	date := "2024-06-01"
	products := []models.Product{
		{Name: "Laptop", Description: &description, Price: decimal.NewFromFloat(5200.00), AvailabilityDate: &date, InStock: true},
		{Name: "Keyboard", Price: decimal.NewFromFloat(320.00), InStock: true},
		{Name: "Mouse", Price: decimal.NewFromFloat(95.50), InStock: false},
	}

	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			logrus.Errorf("Error seeding product %s: %v", products[i].Name, err)
		} else {
			logrus.Infof("Seeded product: %s (ID: %d)", products[i].Name, products[i].ID)
		}
	}
}
