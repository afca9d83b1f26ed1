// File: hebelki/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hebelki/config"
	"hebelki/cron"
	"hebelki/database"
	bookingRepoPkg "hebelki/database/repository/booking"
	businessRepoPkg "hebelki/database/repository/business"
	customerRepoPkg "hebelki/database/repository/customer"
	invoiceRepoPkg "hebelki/database/repository/invoice"
	messageRepoPkg "hebelki/database/repository/message"
	serviceRepoPkg "hebelki/database/repository/service"
	staffRepoPkg "hebelki/database/repository/staff"
	"hebelki/handlers"
	"hebelki/middleware"
	"hebelki/models"
	"hebelki/routes"
	"hebelki/services/agent"
	"hebelki/services/booking"
	"hebelki/services/invoicing"
	"hebelki/services/knowledge"
	"hebelki/services/messaging"
	"hebelki/services/reports"
	"hebelki/services/tasks"
	"hebelki/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

// transportFor wires a channel to its configured gateway, falling back to
// the log transport when none is set.
func transportFor(channel models.MessageChannel, gatewayURL string) messaging.Transport {
	if gatewayURL != "" {
		return messaging.NewHTTPTransport(gatewayURL)
	}
	return &messaging.LogTransport{Channel: channel}
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// Repositories.
	businessRepo := businessRepoPkg.NewMongoBusinessRepo()
	staffRepo := staffRepoPkg.NewMongoStaffRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	customerRepo := customerRepoPkg.NewMongoCustomerRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	invoiceRepo := invoiceRepoPkg.NewMongoInvoiceRepo()
	messageRepo := messageRepoPkg.NewMongoMessageRepo()

	// Index setup is part of correctness here, not just speed: the unique
	// partial indexes back the no-double-booking and idempotency guarantees.
	type indexed interface{ EnsureIndexes() error }
	for _, repo := range []indexed{businessRepo, staffRepo, serviceRepo, customerRepo, bookingRepo, invoiceRepo, messageRepo} {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// Services.
	tasksClient := tasks.NewClient()
	defer tasksClient.Close()

	messageService := &messaging.DefaultMessageService{
		Repo:      messageRepo,
		Customers: customerRepo,
		Staff:     staffRepo,
		Transports: map[models.MessageChannel]messaging.Transport{
			models.ChannelEmail:    transportFor(models.ChannelEmail, config.AppConfig.MailGatewayURL),
			models.ChannelWhatsApp: transportFor(models.ChannelWhatsApp, config.AppConfig.WhatsAppGatewayURL),
		},
		Push: &messaging.StaffPusher{Staff: staffRepo},
	}

	reservationService := &booking.DefaultReservationService{
		BusinessRepo: businessRepo,
		ServiceRepo:  serviceRepo,
		StaffRepo:    staffRepo,
		BookingRepo:  bookingRepo,
		CustomerRepo: customerRepo,
		Notifier:     messageService,
		Reminders:    tasksClient,
		HoldTTL:      time.Duration(config.AppConfig.HoldTTLMinutes) * time.Minute,
	}

	invoiceService := &invoicing.DefaultInvoiceService{
		Invoices:  invoiceRepo,
		Customers: customerRepo,
		Messages:  messageService,
		Renderer:  invoicing.TextRenderer{},
		Payments:  invoicing.NewStripeCheckout(),
	}
	if artifactStore, err := invoicing.NewCloudinaryStore(); err != nil {
		logger.Sugar().Warnf("main: invoice document storage disabled: %v", err)
	} else {
		invoiceService.Artifacts = artifactStore
	}

	reportService := &reports.DefaultReportService{
		Bookings: bookingRepo,
		Invoices: invoiceRepo,
	}

	searcher := knowledge.NewHTTPSearcher(config.AppConfig.SearchServiceURL)

	// Agent: registry over the full dependency set, dispatched via Gemini
	// function calling.
	deps := &agent.HandlerDeps{
		Businesses:   businessRepo,
		Services:     serviceRepo,
		Staff:        staffRepo,
		Customers:    customerRepo,
		Bookings:     bookingRepo,
		Invoices:     invoiceRepo,
		MessageLog:   messageRepo,
		Reservations: reservationService,
		Invoicing:    invoiceService,
		Messages:     messageService,
		Reports:      reportService,
		Knowledge:    searcher,
	}
	registry := agent.NewToolset(deps)

	agentSvc, err := agent.NewGeminiAgent(
		context.Background(),
		registry,
		agent.NewRedisIntentStore(),
		agent.NewRedisTranscriptStore(),
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize agent: %v", err)
	}
	defer agentSvc.Close()

	// Background worker: reminders, hold sweeping, overdue invoices.
	cron.InitWorker(cron.WorkerDeps{
		Businesses: businessRepo,
		Bookings:   bookingRepo,
		Customers:  customerRepo,
		Invoices:   invoiceRepo,
		Messages:   messageService,
	})

	// Handlers.
	authHandler := handlers.NewAuthHandler(businessRepo, staffRepo)
	bookingHandler := handlers.NewBookingHandler(reservationService)
	agentHandler := handlers.NewAgentHandler(agentSvc)

	handlerBundle := &handlers.HandlerBundle{
		BusinessRepo: businessRepo,
		StaffRepo:    staffRepo,

		LoginHandler:  authHandler.LoginHandler,
		LogoutHandler: authHandler.LogoutHandler,

		AvailabilityHandler:   bookingHandler.AvailabilityHandler,
		CreateHoldHandler:     bookingHandler.CreateHoldHandler,
		ConfirmBookingHandler: bookingHandler.ConfirmBookingHandler,

		AgentChatHandler:  agentHandler.ChatHandler,
		AgentVoiceHandler: agentHandler.VoiceHandler,
	}

	// The Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "3005"
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
