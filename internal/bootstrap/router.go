package bootstrap

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/GoSim-25-26J-441/sample-tracking-overview/internal/api/http"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/auth"
	authmw "github.com/GoSim-25-26J-441/sample-tracking-overview/internal/auth/middleware"
	trackinghttp "github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/http"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/session"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Logger         *slog.Logger
	AllowedOrigins []string

	Health   httpapi.HealthDeps
	Sessions *session.Registry
	// Verifier enables Firebase token checks; nil trusts the X-User-Id header.
	Verifier      authmw.TokenVerifier
	AccessTimeout time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	if dep.Logger == nil {
		dep.Logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Disposition", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Health)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	if dep.Verifier != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.Verifier))
	} else {
		api.Use(auth.OptionalUser())
	}
	api.Use(middleware.RateLimitMiddleware(dep.RateLimitRPS, dep.RateLimitBurst, auth.UserFirebaseUID))

	sessions := trackinghttp.New(dep.Sessions, dep.Logger, dep.AccessTimeout)
	sessions.Register(api.Group("/sessions"))

	return r
}
