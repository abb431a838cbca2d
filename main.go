// File: skybook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"

	"skybook/config"
	"skybook/cron"
	"skybook/database"
	bookingRepoPkg "skybook/database/repository/booking"
	sessionRepoPkg "skybook/database/repository/session"
	"skybook/handlers"
	"skybook/middleware"
	"skybook/routes"
	"skybook/services/assistant"
	"skybook/services/booking"
	"skybook/services/dialogue"
	"skybook/services/flight"
	"skybook/services/payment"
	"skybook/services/ticket"
	"skybook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionRepo := sessionRepoPkg.NewRedisSessionRepo(utils.GetSessionCacheClient(), sessionTTL)
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	flightClient := flight.NewAmadeusClient(
		config.AppConfig.AmadeusAPIKey,
		config.AppConfig.AmadeusAPISecret,
		config.AppConfig.AmadeusBaseURL,
	)

	ticketQueue := cron.NewTicketQueue()
	bookingService := &booking.DefaultBookingService{
		Repo:    bookingRepo,
		Tickets: ticketQueue,
		Logger:  logger,
	}

	var generator assistant.TextGenerator
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		g, err := assistant.NewGeminiGenerator(context.Background(), key)
		if err != nil {
			// Canned replies cover every turn; the service runs without the model.
			logger.Sugar().Warnf("main: gemini unavailable, using canned replies: %v", err)
		} else {
			generator = g
		}
	}

	assistantService := &assistant.DefaultAssistantService{
		Engine:    dialogue.NewEngine(),
		Sessions:  sessionRepo,
		Flights:   flightClient,
		Bookings:  bookingService,
		Payments:  payment.NewStripeGateway(logger),
		Generator: generator,
		Logger:    logger,
	}

	// Background ticket rendering and health monitoring.
	cron.InitTicketWorker(bookingRepo, ticket.NewTextRenderer(config.AppConfig.TicketDir))
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetSessionCacheClient(), utils.GetCacheClient()},
		database.MongoClient,
	)

	chatHandler := handlers.NewChatHandler(assistantService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GuestTokenHandler: handlers.GuestTokenHandler,

		HandleChat:   chatHandler.HandleChat,
		ResetSession: chatHandler.ResetSession,

		GetBookingByID:  bookingHandler.GetBookingByID,
		GetUserBookings: bookingHandler.GetUserBookings,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
