package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Logs
	UploadLogHandler Handler
	ListLogsHandler  Handler
	GetLogHandler    Handler
	DeleteLogHandler Handler

	// Rules
	ListRulesHandler      Handler
	GetSuggestionsHandler Handler

	// Reports
	DashboardStatsHandler Handler
	DailySummaryHandler   Handler

	// Notifications
	ListPendingNotificationsHandler Handler
	MarkNotificationSentHandler     Handler
	TelegramTestHandler             Handler

	GetVersionHandler Handler
}
