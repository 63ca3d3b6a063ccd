package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"estate-backend/config"
	"estate-backend/controllers"
	"estate-backend/routes"
	"estate-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Human verification is mandatory on public submissions (keep behavior:
	// fatal if missing, unless explicitly disabled for local development).
	if os.Getenv("CAPTCHA_SECRET") == "" && strings.ToLower(os.Getenv("CAPTCHA_DISABLED")) != "true" {
		log.Fatal("❌ ERROR: CAPTCHA_SECRET environment variable is not set. Set it or CAPTCHA_DISABLED=true.")
	}

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Change-notification fan-out, optionally bridged across instances
	hub := services.NewHub(os.Getenv("REDIS_URL"))
	defer hub.Close()

	// Initialize services
	inventoryService := services.NewInventoryService(db)
	notificationService := services.NewNotificationService(db)
	bookingService := services.NewBookingService(db, inventoryService, notificationService, hub)
	appointmentService := services.NewAppointmentService(db)
	contactService := services.NewContactService(db)
	propertyService := services.NewPropertyService(db)
	announcementService := services.NewAnnouncementService(db)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingService, inventoryService, notificationService)
	appointmentController := controllers.NewAppointmentController(appointmentService)
	contactController := controllers.NewContactController(contactService)
	propertyController := controllers.NewPropertyController(propertyService)
	announcementController := controllers.NewAnnouncementController(announcementService)
	eventsController := controllers.NewEventsController(hub)

	// Nightly inventory drift reconciliation
	reconcile := services.NewReconcileJob(db, strings.ToLower(os.Getenv("RECONCILE_FIX")) == "true")
	scheduler := cron.New()
	schedule := os.Getenv("RECONCILE_SCHEDULE")
	if schedule == "" {
		schedule = "0 3 * * *"
	}
	if _, err := scheduler.AddFunc(schedule, reconcile.Run); err != nil {
		log.Fatalf("❌ Invalid RECONCILE_SCHEDULE %q: %v", schedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Build router
	router := routes.SetupRouter(
		bookingController,
		appointmentController,
		contactController,
		propertyController,
		announcementController,
		eventsController,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		// no WriteTimeout: /api/events holds SSE connections open
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
