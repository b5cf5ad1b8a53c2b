package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apierrors "github.com/clinova/odonto-api/common/errors"
	"github.com/clinova/odonto-api/internal/appointments"
	"github.com/clinova/odonto-api/internal/auth"
	"github.com/clinova/odonto-api/internal/dentists"
	"github.com/clinova/odonto-api/internal/patients"
	"github.com/clinova/odonto-api/pkg/metrics"
)

// Server is the HTTP front of the clinic API. Route composition is explicit:
// every feature registers its endpoints on a group here, no reflective wiring.
type Server struct {
	router *gin.Engine
	logger *zap.Logger
	http   *http.Server
}

// New creates the API server with all middleware and routes registered
func New(
	logger *zap.Logger,
	authSvc *auth.Service,
	dentistsSvc *dentists.Service,
	patientsSvc *patients.Service,
	appointmentsSvc *appointments.Service,
) *Server {
	router := gin.New()

	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(metrics.GinMiddleware())
	router.Use(apierrors.UnifiedErrorMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		router: router,
		logger: logger,
	}

	authMW := auth.NewMiddleware(authSvc)

	public := router.Group("/api/v1")
	{
		public.GET("/health", s.healthCheck)
		public.GET("/metrics", gin.WrapH(promhttp.Handler()))
		auth.RegisterRoutes(public, authSvc)
	}

	protected := router.Group("/api/v1")
	protected.Use(authMW.Authenticate())
	{
		dentists.RegisterRoutes(protected, dentistsSvc, authMW)
		patients.RegisterRoutes(protected, patientsSvc, authMW)
		appointments.RegisterRoutes(protected, appointmentsSvc, authMW)
	}

	return s
}

// Router returns the internal Gin engine for testing purposes
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves HTTP on addr and blocks until the server stops
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting API server", zap.String("addr", addr))
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}
