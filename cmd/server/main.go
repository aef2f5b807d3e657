package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transitdesk/internal/config"
	"transitdesk/internal/database"
	"transitdesk/internal/handlers"
	"transitdesk/internal/repository"
	"transitdesk/internal/security"
	"transitdesk/internal/service"
	"transitdesk/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Invitation token codec
	codec, err := token.NewCodec(cfg.InviteSecret)
	if err != nil {
		log.Fatalf("Failed to initialize token codec: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)
	sessionRepo := repository.NewOperatorSessionRepository(db)
	busRepo := repository.NewBusRepository(db)
	routeRepo := repository.NewRouteRepository(db, operatorRepo)
	discountRepo := repository.NewDiscountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.EmailDebug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	authService := service.NewAuthService(userRepo, cfg.SessionDuration, []byte(cfg.JWTSecret), cfg.JWTDuration)
	operatorService := service.NewOperatorService(operatorRepo, sessionRepo, userRepo, emailService, codec, cfg.InviteTTL)
	dashboardService := service.NewDashboardService(operatorRepo, busRepo, routeRepo, discountRepo, transactionRepo)

	// Initialize handlers
	limiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, limiter)
	authHandler := handlers.NewAuthHandler(authService)
	operatorHandler := handlers.NewOperatorHandler(operatorService, operatorRepo)
	fleetHandler := handlers.NewFleetHandler(busRepo, routeRepo)
	commerceHandler := handlers.NewCommerceHandler(discountRepo, transactionRepo)
	userHandler := handlers.NewUserHandler(userRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.HandleFunc("POST /api/signup", middleware.RateLimit(operatorHandler.CompleteSignup))

	// Authenticated routes
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("GET /api/dashboard", middleware.RequireAuth(dashboardHandler.Counts))
	mux.HandleFunc("GET /api/operators", middleware.RequireAuth(operatorHandler.List))
	mux.HandleFunc("GET /api/operators/{id}", middleware.RequireAuth(operatorHandler.Get))
	mux.HandleFunc("GET /api/buses", middleware.RequireAuth(fleetHandler.ListBuses))
	mux.HandleFunc("GET /api/buses/{id}", middleware.RequireAuth(fleetHandler.GetBus))
	mux.HandleFunc("GET /api/routes", middleware.RequireAuth(fleetHandler.ListRoutes))
	mux.HandleFunc("GET /api/discounts", middleware.RequireAuth(commerceHandler.ListDiscounts))
	mux.HandleFunc("GET /api/transactions", middleware.RequireAuth(commerceHandler.ListTransactions))

	// Admin routes
	mux.HandleFunc("POST /api/operators", middleware.RequireAdmin(operatorHandler.Invite))
	mux.HandleFunc("POST /api/operators/{id}/resend-invite", middleware.RequireAdmin(operatorHandler.ResendInvite))
	mux.HandleFunc("POST /api/operators/{id}/status", middleware.RequireAdmin(operatorHandler.SetStatus))
	mux.HandleFunc("GET /api/users", middleware.RequireAdmin(userHandler.List))
	mux.HandleFunc("POST /api/users/{id}", middleware.RequireAdmin(userHandler.Update))
	mux.HandleFunc("DELETE /api/users/{id}", middleware.RequireAdmin(userHandler.Delete))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}
	}
}
