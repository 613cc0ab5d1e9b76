// Package api wires the Echo HTTP surface: routes, middleware, validation
// and the central error handler.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clubhub/events-api/internal/api/handler"
	"github.com/clubhub/events-api/internal/api/middleware"
	"github.com/clubhub/events-api/internal/core/ports"
)

// Dependencies carries everything the router needs. Services are constructed
// by the caller so the transport layer stays free of infrastructure wiring.
type Dependencies struct {
	Logger   zerolog.Logger
	Verifier middleware.TokenVerifier
	// DevAuth enables the X-User-* header bypass for local development.
	DevAuth bool

	Mongo *mongo.Database
	Redis *redis.Client

	Events        ports.EventService
	Registrations ports.RegistrationService
	Blog          ports.BlogService
	Gallery       ports.GalleryService
	Users         ports.UserService
	Social        ports.SocialService
	Verification  ports.VerificationService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("clubhub"))

	authed := middleware.Auth(deps.Verifier, deps.DevAuth)

	// --- Handlers ---
	eventHandler := handler.NewEventHandler(deps.Events)
	regHandler := handler.NewRegistrationHandler(deps.Registrations)
	blogHandler := handler.NewBlogHandler(deps.Blog)
	galleryHandler := handler.NewGalleryHandler(deps.Gallery)
	userHandler := handler.NewUserHandler(deps.Users)
	authHandler := handler.NewAuthHandler(deps.Users, deps.Social)
	verificationHandler := handler.NewVerificationHandler(deps.Verification)

	v1 := e.Group("/api/v1")

	// --- Auth ---
	auth := v1.Group("/auth")
	auth.GET("/me", authHandler.Me, authed)
	auth.GET("/:provider/login", authHandler.SocialLogin)
	auth.GET("/:provider/callback", authHandler.SocialCallback)
	auth.POST("/verification/send-verification", verificationHandler.Send)
	auth.POST("/verification/verify-code", verificationHandler.Verify)

	// --- Users ---
	users := v1.Group("/users", authed)
	users.GET("/me", userHandler.Me)
	users.PATCH("/me", userHandler.UpdateMe)
	users.POST("/me/avatar", userHandler.UploadAvatar)

	// --- Events ---
	events := v1.Group("/events")
	events.GET("", eventHandler.List)
	events.GET("/:id", eventHandler.Get)
	events.POST("", eventHandler.Create, authed)
	events.PATCH("/:id", eventHandler.Update, authed)
	events.DELETE("/:id", eventHandler.Delete, authed)
	events.PATCH("/:id/toggle-paid", eventHandler.TogglePaid, authed)
	events.POST("/:id/cover", eventHandler.UploadCover, authed)
	events.POST("/:id/register", regHandler.Register, authed)
	events.POST("/:id/attendance", eventHandler.MarkAttendance, authed)

	// --- Registrations ---
	regs := v1.Group("/registrations", authed)
	regs.GET("/me", regHandler.ListMine)
	regs.GET("/:id", regHandler.Get)
	regs.GET("/:id/qr", regHandler.TicketURL)
	regs.GET("/event/:event_id", regHandler.ListByEvent)
	regs.PATCH("/:id/update-payment", regHandler.UpdatePayment)
	regs.PATCH("/:id/checkin-start", regHandler.CheckinStart)
	regs.PATCH("/:id/checkin-end", regHandler.CheckinEnd)

	// --- Blog ---
	blog := v1.Group("/blog")
	blog.GET("", blogHandler.List)
	blog.GET("/:id", blogHandler.Get)
	blog.POST("", blogHandler.Create, authed)
	blog.PATCH("/:id", blogHandler.Update, authed)
	blog.DELETE("/:id", blogHandler.Delete, authed)

	// --- Gallery ---
	gallery := v1.Group("/gallery")
	gallery.GET("", galleryHandler.List)
	gallery.GET("/:id", galleryHandler.Get)
	gallery.POST("", galleryHandler.Upload, authed)
	gallery.DELETE("/:id", galleryHandler.Delete, authed)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
