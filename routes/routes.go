package routes

import (
	"context"
	"os"

	"meetly/constants"
	"meetly/controllers/booking"
	"meetly/database"
	calendarClient "meetly/httpServices/calendar"
	identityClient "meetly/httpServices/identity"
	mailerClient "meetly/httpServices/mailer"
	"meetly/logger"
	"meetly/middleware"
	"meetly/services/bookingflow"
	"meetly/services/enrichment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	store := database.NewBookingStore(db)
	identity := identityClient.NewClient(os.Getenv("IDENTITY_BASE_URL"))
	calendar := calendarClient.NewClient()

	var notifier bookingflow.Notifier
	mailer := mailerClient.NewClient(os.Getenv("SENDGRID_API_KEY"), os.Getenv("SENDGRID_FROM_EMAIL"))
	if mailer.Configured() {
		notifier = mailer
	} else {
		logger.Warning("SENDGRID_API_KEY not set, booking notifications disabled")
	}

	var enricher bookingflow.Enricher
	if svc, err := enrichment.NewService(context.Background()); err != nil {
		logger.Warning("AI enrichment disabled: " + err.Error())
	} else {
		enricher = svc
	}

	flow := bookingflow.NewService(store, identity, calendar, notifier, enricher)
	bookingController := booking.NewBookingController(db, asyncLogger, flow)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/bookings", bookingController.Store)

	/*=============================================================================
	| Meeting Routes (host only)
	===============================================================================*/
	meetings := api.Group("/meetings").Use(middleware.RequirePermissions(
		constants.PermHostFull,
		constants.PermAdminFull,
	))
	meetings.Get("/", bookingController.Index)
	meetings.Get("/:id", bookingController.Show)
	meetings.Delete("/:id", bookingController.Cancel)
}
