// Package httpserver exposes the workflow engine over an HTTP/JSON API.
// Handlers are thin: they validate input shape, call the engine and map
// typed errors to response envelopes.
package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pharmaDeliveryManagement/internal/auth"
	"pharmaDeliveryManagement/internal/config"
	"pharmaDeliveryManagement/internal/workflow"
)

// Server wires the engine into a Gin router.
type Server struct {
	engine *workflow.Engine
	cfg    *config.Config
	logger *zap.Logger
}

// New creates a Server.
func New(engine *workflow.Engine, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{engine: engine, cfg: cfg, logger: logger}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(cors())

	api := r.Group("/api")

	// Public routes.
	api.GET("/ping", s.handlePing)
	api.POST("/auth/pharmacy/register", s.handlePharmacyRegister)
	api.POST("/auth/pharmacy/login", s.handlePharmacyLogin)
	api.POST("/auth/admin/login", s.handleAdminLogin)
	api.GET("/track/:trackingNumber", s.handleTrack)

	// Authenticated routes; role checks live in the handlers.
	authed := api.Group("", auth.Middleware(s.cfg.Auth.JWTSecret))
	authed.POST("/auth/pharmacy/change-password", s.handlePharmacyChangePassword)
	authed.PUT("/auth/pharmacy/profile", s.handlePharmacyUpdateProfile)
	authed.POST("/auth/admin/change-password", s.handleAdminChangePassword)
	authed.PUT("/auth/admin/profile", s.handleAdminUpdateProfile)

	authed.GET("/admin/pharmacies", s.handleListPharmacies)
	authed.PUT("/admin/pharmacies/:id", s.handleAdminUpdatePharmacy)
	authed.POST("/admin/pharmacies/:id/approve", s.handleApprovePharmacy)
	authed.POST("/admin/pharmacies/:id/reject", s.handleRejectPharmacy)
	authed.GET("/admin/stats", s.handleStats)

	authed.GET("/deliveries", s.handleListDeliveries)
	authed.POST("/deliveries", s.handleCreateDelivery)
	authed.GET("/deliveries/:id", s.handleGetDelivery)
	authed.PATCH("/deliveries/:id", s.handleUpdateDelivery)

	return r
}

// requestID tags every request with an id for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// cors allows browser clients on other origins; the API carries no
// cookies, so a wildcard origin is safe.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}
