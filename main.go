// File: salora/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"salora/config"
	"salora/cron"
	"salora/database"
	appointmentRepo "salora/database/repository/appointment"
	salonRepo "salora/database/repository/salon"
	scheduleRepo "salora/database/repository/schedule"
	"salora/handlers"
	"salora/middleware"
	"salora/models"
	"salora/routes"
	"salora/services/scheduling"
	"salora/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	schedRepo := scheduleRepo.NewMongoScheduleRepo()
	slnRepo := salonRepo.NewMongoSalonRepo()

	if err := apptRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
	}

	// scheduling engine.
	weekCache := scheduling.NewWeekCache(apptRepo)
	checker := &scheduling.Checker{
		Store:    apptRepo,
		Cache:    weekCache,
		FailOpen: config.AppConfig.AvailabilityFailOpen,
	}
	reminderQueue := cron.NewReminderQueue()
	coordinator := &scheduling.Coordinator{
		Store:         apptRepo,
		Checker:       checker,
		Cache:         weekCache,
		Salons:        slnRepo,
		InitialStatus: models.AppointmentStatus(config.AppConfig.DefaultBookingStatus),
		Reminders:     reminderQueue,
	}

	// handlers.
	bookingHandler := handlers.NewBookingHandler(coordinator)
	availabilityHandler := handlers.NewAvailabilityHandler(
		schedRepo, slnRepo, checker, weekCache, config.AppConfig.SlotGranularityMinutes)
	scheduleHandler := handlers.NewScheduleHandler(schedRepo)
	appointmentHandler := handlers.NewAppointmentHandler(coordinator, apptRepo)
	salonHandler := handlers.NewSalonHandler(slnRepo)

	routes.RegisterBookingRoutes(router, bookingHandler, availabilityHandler)
	routes.RegisterSalonRoutes(router, salonHandler, scheduleHandler, appointmentHandler)
	routes.RegisterHealthRoutes(router)

	cron.InitReminderWorker()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

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
