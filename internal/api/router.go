package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CloveTwilight3/doughmination-backend/internal/api/handler"
	"github.com/CloveTwilight3/doughmination-backend/internal/api/middleware"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/ports"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/service"
	"github.com/CloveTwilight3/doughmination-backend/internal/realtime"
)

// Avatar uploads are capped well under the proxy limits.
const avatarBodyLimit = "2M"

// Deps carries everything the router needs. All services are constructed in
// main and injected here so handler wiring stays declarative.
type Deps struct {
	Log zerolog.Logger

	JWTSecret string
	DataDir   string
	BaseURL   string

	Mongo *mongo.Database
	Redis *redis.Client

	Users       ports.UserService
	Tokens      *service.TokenService
	System      ports.SystemClient
	Directory   ports.MemberDirectory
	MemberCache ports.MemberCache
	Fronts      *service.FrontService
	Tags        *service.TagService
	Statuses    *service.StatusService
	States      *service.MentalStateService
	Insights    *service.InsightsService
	Dispatcher  *service.UpdateDispatcher
	Hub         *realtime.Hub
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("doughmination"))

	authHandler := handler.NewAuthHandler(d.Users, d.Tokens)
	userHandler := handler.NewUserHandler(d.Users, d.DataDir, d.Log)
	memberHandler := handler.NewMemberHandler(d.System, d.Directory)
	frontHandler := handler.NewFrontHandler(d.Fronts)
	tagHandler := handler.NewTagHandler(d.Tags)
	statusHandler := handler.NewStatusHandler(d.Statuses)
	stateHandler := handler.NewStateHandler(d.States)
	adminHandler := handler.NewAdminHandler(d.Dispatcher, d.MemberCache, d.Log)
	insightsHandler := handler.NewInsightsHandler(d.Insights)
	wsHandler := handler.NewWSHandler(d.Hub, d.Log)
	seoHandler := handler.NewSEOHandler(d.Directory, d.BaseURL)
	healthHandler := handler.NewHealthHandler(d.Mongo, d.Redis)

	authRequired := middleware.Auth(d.JWTSecret, d.Users)
	adminOnly := middleware.RequireAdmin()

	// Probes and operational surface.
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// SEO glue and static avatar files.
	e.GET("/robots.txt", seoHandler.Robots)
	e.GET("/sitemap.xml", seoHandler.Sitemap)
	e.GET("/avatars/:filename", userHandler.ServeAvatar)

	// Live update stream.
	e.GET("/ws", wsHandler.Subscribe)

	api := e.Group("/api")

	// Public reads.
	api.POST("/auth/login", authHandler.Login)
	api.GET("/system", memberHandler.System)
	api.GET("/members", memberHandler.Members)
	api.GET("/members/:ref", memberHandler.Member)
	api.GET("/fronters", memberHandler.Fronters)
	api.GET("/statuses", statusHandler.All)
	api.GET("/members/:ref/status", statusHandler.Get)
	api.GET("/mental_state", stateHandler.Get)

	// Any authenticated user.
	authed := api.Group("", authRequired)
	authed.GET("/is_admin", authHandler.IsAdmin)
	authed.POST("/switch", frontHandler.Switch)
	authed.POST("/switch_front", frontHandler.SwitchFront)
	authed.POST("/multi_switch", frontHandler.MultiSwitch)
	authed.GET("/metrics/fronting-time", insightsHandler.FrontingTime)
	authed.GET("/metrics/switch-frequency", insightsHandler.SwitchFrequency)

	// Admin or self; the service policy decides.
	authed.PUT("/users/:id", userHandler.Update)
	authed.POST("/users/:id/avatar", userHandler.UploadAvatar, echomiddleware.BodyLimit(avatarBodyLimit))

	// Admin only.
	admin := api.Group("", authRequired, adminOnly)
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.GET("/tags", tagHandler.All)
	admin.PUT("/members/:ref/tags", tagHandler.Replace)
	admin.POST("/members/:ref/tags", tagHandler.Add)
	admin.DELETE("/members/:ref/tags/:tag", tagHandler.Remove)
	admin.POST("/members/:ref/status", statusHandler.Set)
	admin.DELETE("/members/:ref/status", statusHandler.Clear)
	admin.POST("/mental_state", stateHandler.Set)
	admin.POST("/admin/refresh", adminHandler.Refresh)

	return e
}
