package router

import (
	"errors"

	handlers "github.com/NeuralTrust/TakeALook/pkg/handlers/http"
	"github.com/NeuralTrust/TakeALook/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

var (
	ErrInvalidMiddlewareTransport = errors.New("invalid middleware transport")
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
	docsURL             string
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
	docsURL string,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
		docsURL:             docsURL,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	if r.middlewareTransport == nil || r.middlewareTransport.AdminAuthMiddleware == nil {
		return ErrInvalidMiddlewareTransport
	}
	h := r.handlerTransport
	admin := r.middlewareTransport.AdminAuthMiddleware.Middleware()

	if m := r.middlewareTransport.PanicRecoverMiddleware; m != nil {
		router.Use(m.Middleware())
	}
	if m := r.middlewareTransport.MetricsMiddleware; m != nil {
		router.Use(m.Middleware())
	}

	router.Static("/swagger.json", "./docs/swagger.json")
	router.Get("/docs/*", swagger.New(swagger.Config{
		URL: r.docsURL,
	}))

	v1 := router.Group("/api/v1")
	{
		v1.Get("/version", h.GetVersionHandler.Handle)

		logs := v1.Group("/logs")
		{
			logs.Post("/upload", h.UploadLogHandler.Handle)
			logs.Get("", h.ListLogsHandler.Handle)
			logs.Get("/:log_id", h.GetLogHandler.Handle)
			logs.Delete("/:log_id", admin, h.DeleteLogHandler.Handle)
		}

		v1.Get("/rules", h.ListRulesHandler.Handle)
		v1.Get("/suggestions/:category", h.GetSuggestionsHandler.Handle)
		v1.Get("/dashboard/stats", h.DashboardStatsHandler.Handle)

		notifications := v1.Group("/notifications")
		{
			notifications.Get("/pending", h.ListPendingNotificationsHandler.Handle)
			notifications.Post("/:id/sent", admin, h.MarkNotificationSentHandler.Handle)
		}

		v1.Post("/telegram/test", admin, h.TelegramTestHandler.Handle)
		v1.Post("/alerts/daily-summary", admin, h.DailySummaryHandler.Handle)
	}
	return nil
}
