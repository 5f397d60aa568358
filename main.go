// main.go
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/dalibouzir/MeriemBooking-sub000/config"
	"github.com/dalibouzir/MeriemBooking-sub000/controllers"
	"github.com/dalibouzir/MeriemBooking-sub000/logger"
	"github.com/dalibouzir/MeriemBooking-sub000/middleware"
	"github.com/dalibouzir/MeriemBooking-sub000/services"
	"github.com/dalibouzir/MeriemBooking-sub000/store"
	"github.com/dalibouzir/MeriemBooking-sub000/websocket"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.SetLogLevel(cfg.Env)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		websocket.EnableMetrics()
	}

	// database
	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error.Printf("[main] failed to close database: %v", err)
		}
	}()
	if err := store.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// stores
	registrations := store.NewRegistrationStore(db)
	settings := store.NewSettingsStore(db)
	slots := store.NewSlotStore(db)
	products := store.NewProductStore(db)

	// optional side-effect services; nil disables the corresponding effect
	var mailer services.EmailServiceInterface
	if cfg.EmailSender != "" {
		mailer = services.NewSESEmailService(cfg.AWSRegion, cfg.EmailSender)
	} else {
		logger.Warn.Println("[main] EMAIL_SENDER not set, confirmation emails disabled")
	}

	var pixel services.PixelServiceInterface
	if cfg.FacebookPixelID != "" && cfg.FacebookAccessToken != "" {
		pixel = services.NewMetaPixelService(cfg.FacebookPixelID, cfg.FacebookAccessToken)
	} else {
		logger.Warn.Println("[main] Facebook pixel not configured, conversion events disabled")
	}

	var calendar services.CalendarServiceInterface
	if cfg.GoogleServiceAccountJSON != "" && cfg.GoogleCalendarID != "" {
		calendar, err = services.NewGoogleCalendarService(context.Background(), []byte(cfg.GoogleServiceAccountJSON), cfg.GoogleCalendarID)
		if err != nil {
			log.Fatalf("Failed to initialise Google Calendar client: %v", err)
		}
	} else {
		logger.Warn.Println("[main] Google Calendar not configured, invites disabled")
	}

	// services
	feed := websocket.NewFeed()
	registrationService := services.NewRegistrationService(registrations, settings, mailer, pixel, feed)
	bookingService := services.NewBookingService(slots, calendar, mailer)

	// controllers
	challengeController := controllers.NewChallengeController(registrationService, settings, cfg.ApplicationURL)
	bookingController := controllers.NewBookingController(bookingService)
	productController := controllers.NewProductController(products)
	adminController := controllers.NewAdminController(
		registrationService, bookingService, settings, products,
		cfg.AdminEmail, cfg.AdminPasswordHash)

	// router
	router := gin.Default()
	router.Use(middleware.Locale())

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("session", sessionStore))

	router.GET("/health", controllers.Health)

	// public API
	api := router.Group("/api")
	{
		api.GET("/challenge", challengeController.GetChallenge)
		api.POST("/challenge/register", challengeController.Register)
		api.GET("/challenge/stats", challengeController.GetStats)
		api.POST("/challenge/registrations/:id/link-copied", challengeController.MarkLinkCopied)
		api.POST("/challenge/registrations/:id/link-saved", challengeController.MarkLinkSaved)
		api.GET("/challenge/qrcode", challengeController.QRCode)

		api.GET("/free-call/slots", bookingController.ListSlots)
		api.POST("/free-call/book", bookingController.Book)

		api.GET("/products", productController.ListProducts)
		api.GET("/products/:slug/download", productController.DownloadProduct)
	}

	// admin API
	router.POST("/admin/login", adminController.Login)
	admin := router.Group("/admin", middleware.AdminRequired())
	{
		admin.POST("/logout", adminController.Logout)
		admin.GET("/settings", adminController.GetSettings)
		admin.PATCH("/settings", adminController.PatchSettings)
		admin.GET("/registrations", adminController.ListRegistrations)
		admin.POST("/registrations/:id/promote", adminController.PromoteRegistration)
		admin.DELETE("/registrations/:id", adminController.DeleteRegistration)
		admin.POST("/email", adminController.BulkEmail)
		admin.POST("/slots", adminController.CreateSlot)
		admin.DELETE("/slots/:id", adminController.DeleteSlot)
		admin.GET("/reservations", adminController.ListReservations)
		admin.POST("/products", adminController.CreateProduct)
		admin.PUT("/products/:id", adminController.UpdateProduct)
		admin.DELETE("/products/:id", adminController.DeleteProduct)
		admin.GET("/stats-feed", func(c *gin.Context) {
			websocket.ServeWs(c.Writer, c.Request)
		})
	}

	// live dashboard fan-out
	go websocket.HandleMessages()

	logger.Info.Printf("[main] starting server on %s", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
