package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timeclock-kiosk/config"
	"timeclock-kiosk/internal/api"
	"timeclock-kiosk/internal/clock"
	"timeclock-kiosk/internal/db"
	"timeclock-kiosk/internal/employee"
	"timeclock-kiosk/internal/manager"
	"timeclock-kiosk/internal/monitor"
	"timeclock-kiosk/internal/photo"
	"timeclock-kiosk/internal/report"
	"timeclock-kiosk/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "timeclockd ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// Initialize database; this runs pending schema migrations and refuses
	// to start on a store it cannot bring up to date.
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shiftStore := store.NewGormStore(gormDB)
	directory := employee.NewGormDirectory(gormDB)
	logger.Println("data store initialized")

	var capture photo.Capture = photo.Disabled{}
	if cfg.Photo.Enabled {
		fc, err := photo.NewFileCapture(cfg.Photo.Dir, photo.SpoolSource{Path: cfg.Photo.SpoolPath})
		if err != nil {
			logger.Fatalf("failed to initialize photo capture: %v", err)
		}
		capture = fc
		logger.Printf("photo capture enabled, storing under %s", cfg.Photo.Dir)
	}

	rules := clock.RulesFromConfig(cfg.Clock)
	engine := clock.NewEngine(shiftStore, directory, capture, rules)
	session := manager.NewSession(cfg.Manager.PINHash, cfg.Manager.Validity())
	corrector := manager.NewCorrector(shiftStore, directory, session, rules)
	reports := report.NewService(gormDB)

	// Run the long-shift watcher in the background so forgotten clock-outs
	// surface in the logs.
	if cfg.Monitor.Enabled {
		watcher := monitor.NewWatcher(shiftStore, cfg.Clock.WarnShift(), cfg.Monitor.Interval())
		go watcher.Run(ctx)
	}

	// Initialize router
	handler := api.NewHandler(engine, corrector, session, reports, directory, shiftStore)
	router := api.NewRouter(handler, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
