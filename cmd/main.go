package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Andr3icutrei/tw-copy/internal/client"
	"github.com/Andr3icutrei/tw-copy/internal/config"
	"github.com/Andr3icutrei/tw-copy/internal/events"
	"github.com/Andr3icutrei/tw-copy/internal/handler"
	"github.com/Andr3icutrei/tw-copy/internal/middleware"
	redisClient "github.com/Andr3icutrei/tw-copy/internal/redis"
	"github.com/Andr3icutrei/tw-copy/internal/repository"
	"github.com/Andr3icutrei/tw-copy/internal/service"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	// Database connection
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	// Redis connection
	redis, err := redisClient.NewClient(cfg.RedisAddr, cfg.RedisPassword, 0)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	// Event publisher
	publisher := events.NewPublisher(redis.Client)

	// Write repo, read repo, collaborator clients
	writeRepo := repository.NewTransactionRepository(db)
	readRepo := repository.NewTransactionReadRepository(db, redis.Client)
	accountClient := client.NewAccountClient(cfg.AccountServiceURL, redis.Client)
	notificationClient := client.NewNotificationClient(cfg.NotificationServiceURL)

	transactionSvc := service.NewTransactionService(writeRepo, readRepo, accountClient, notificationClient, publisher)
	transactionHandler := handler.NewTransactionHandler(transactionSvc, transactionSvc)

	// Setup router
	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Transaction routes
	v1 := router.Group("/v1/transactions", middleware.AuthMiddleware())
	{
		v1.POST("", transactionHandler.CreateTransaction)
		v1.POST("/with-account-details", transactionHandler.CreateTransactionWithAccountDetails)
		v1.POST("/with-notification", transactionHandler.CreateTransactionWithNotification)
		v1.GET("/:transactionId", transactionHandler.GetTransaction)
		v1.GET("/:transactionId/with-account-details", transactionHandler.GetTransactionWithAccountDetails)
		v1.PUT("/:transactionId", transactionHandler.ReplaceTransaction)
		v1.DELETE("/:transactionId", transactionHandler.CancelTransaction)
		v1.PATCH("/:transactionId/type", transactionHandler.ChangeTransactionType)
		v1.PATCH("/:transactionId/currency", transactionHandler.ChangeTransactionCurrency)
		v1.PATCH("/:transactionId/execute", transactionHandler.ExecuteTransaction)
		v1.GET("/:transactionId/fee", transactionHandler.CalculateTransactionFee)
		v1.GET("/:transactionId/anti-fraud", transactionHandler.AntiFraudCheck)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Invalidate cached account lookups when the account service announces changes
	go func() {
		subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
			Group:    "transaction-service-group",
			Consumer: "transaction-consumer-1",
			Stream:   events.AccountEventsStream,
			Handler:  accountClient.HandleAccountEvent,
		})
		if err := subscriber.Start(ctx); err != nil {
			log.Printf("Subscriber stopped: %v", err)
		}
	}()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	log.Printf("Transaction service starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
