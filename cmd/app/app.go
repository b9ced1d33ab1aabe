package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/shiftwise/shiftwise/server/internal/adapters/config"
	httpController "github.com/shiftwise/shiftwise/server/internal/adapters/controller/http"
	"github.com/shiftwise/shiftwise/server/internal/adapters/controller/ws"
	"github.com/shiftwise/shiftwise/server/internal/adapters/database/postgres"
	"github.com/shiftwise/shiftwise/server/internal/domain/service"
	"github.com/shiftwise/shiftwise/server/pkg/logger"
)

// App owns every long-running part of the service: the HTTP server with
// the websocket gateway mounted on it, the reminder scheduler and the
// housekeeping sweep.
type App struct {
	server       *http.Server
	registry     *ws.Registry
	reminders    *service.ReminderService
	housekeeping *service.HousekeepingService
}

func New(cfg *config.Config) (*App, error) {
	eventStorage := postgres.NewCalendarEventStorage(cfg.Database)
	eventService := service.NewCalendarEventService(eventStorage)
	notificationService := service.NewNotificationService(cfg.Redis.Notifications)

	secret := viper.GetString("service.jwt-secret")
	if secret == "" {
		return nil, errors.New("service.jwt-secret is not configured")
	}

	registry := ws.NewRegistry()

	gatewayLogger, err := logger.Named("gateway")
	if err != nil {
		return nil, err
	}
	gateway := ws.NewGateway(registry, secret, gatewayLogger)

	reminderLogger, err := logger.Named("reminder")
	if err != nil {
		return nil, err
	}
	reminders := service.NewReminderService(
		reminderLogger,
		eventStorage,
		registry,
		cfg.Redis.Notifications,
		viper.GetDuration("service.reminder.interval"),
	)

	housekeepingLogger, err := logger.Named("housekeeping")
	if err != nil {
		return nil, err
	}
	housekeeping := service.NewHousekeepingService(
		housekeepingLogger,
		eventStorage,
		viper.GetInt("service.housekeeping.retention-days"),
	)

	httpLogger, err := logger.Named("http")
	if err != nil {
		return nil, err
	}
	controller := httpController.NewController(httpLogger, eventService, notificationService, gateway, secret)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", viper.GetInt("server.port")),
		Handler:           controller.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		server:       server,
		registry:     registry,
		reminders:    reminders,
		housekeeping: housekeeping,
	}, nil
}

// Start runs the service until SIGINT/SIGTERM, then shuts everything
// down: HTTP server first, then the schedulers, then every live socket.
func (a *App) Start() {
	a.reminders.StartScheduler()
	if err := a.housekeeping.Start(); err != nil {
		logger.Log.Panicf("Failed to start housekeeping: %v", err)
	}

	go func() {
		logger.Log.Infof("Server starting on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Panicf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		logger.Log.Errorf("failed to shut down server: %v", err)
	}

	a.reminders.Stop()
	a.housekeeping.Stop()
	a.registry.Shutdown()
}
