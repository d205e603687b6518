package main

import (
	"log"

	"github.com/arisara-dev/event-checkin/config"
	"github.com/arisara-dev/event-checkin/internal/handler"
	"github.com/arisara-dev/event-checkin/internal/middleware"
	"github.com/arisara-dev/event-checkin/internal/repository"
	"github.com/arisara-dev/event-checkin/internal/service"
	"github.com/arisara-dev/event-checkin/pkg/database"
	"github.com/arisara-dev/event-checkin/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Broker is optional; the service runs without one and skips publishing.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	regRepo := repository.NewRegistrationRepository(db)

	// Services
	eventSvc := service.NewEventService(eventRepo, publisher)
	regSvc := service.NewRegistrationService(eventRepo, regRepo, publisher)
	checkinSvc := service.NewCheckinService(eventRepo, regRepo, publisher)

	auth := middleware.BearerAuth(cfg.OrganizerTokens)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "event-checkin"})
	})

	api := e.Group("/api/v1")
	events := api.Group("/events")
	handler.NewEventHandler(eventSvc).RegisterRoutes(events, auth)
	handler.NewRegistrationHandler(regSvc).RegisterRoutes(events, auth)
	handler.NewCheckinHandler(checkinSvc).RegisterRoutes(api, auth)

	log.Printf("Event check-in service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
