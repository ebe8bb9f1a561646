package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"catalog/internal/handlers"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DB", "catalog")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	mongoURI := viper.GetString("MONGODB_URI")
	mongoDB := viper.GetString("MONGODB_DB")
	port := viper.GetString("PORT")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	log.Println("Starting E-commerce Catalog System...")

	// --- Connect MongoDB ---
	// A failed ping is logged, not fatal: the service starts in degraded mode
	// and serves the sample set until the store becomes reachable.
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		cancel()
		log.Fatalf("Failed to initialize MongoDB client: %v", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		log.Printf("MongoDB connection failed: %v", err)
	} else {
		log.Println("MongoDB connected successfully")
	}
	cancel()
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Printf("Error disconnecting MongoDB client: %v", err)
		}
	}()

	// --- Optional RabbitMQ publisher ---
	var events services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Failed to initialize RabbitMQ client, catalog events disabled: %v", err)
		} else {
			defer mqClient.Close()
			events = mqClient
		}
	}

	// --- Initialize Repository, Service, and Handlers ---
	productRepo := repositories.NewMongoProductRepository(client, mongoDB)
	catalogService := services.NewCatalogService(productRepo, events)
	productHandler := handlers.NewProductHandler(catalogService)
	statusHandler := handlers.NewStatusHandler(catalogService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.New().String() },
	}))
	app.Use(logger.New())

	// --- API Routes ---
	statusHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", port)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(":" + port); err != nil {
			// One retry on the fallback port, then give up.
			log.Printf("Port %s is busy or unavailable (%v), trying 3001...", port, err)
			if err := app.Listen(":3001"); err != nil {
				log.Fatalf("Server failed to start: %v", err)
			}
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
