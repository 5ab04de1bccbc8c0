package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/istlab/raffle-backend/internal/engine"
	"github.com/istlab/raffle-backend/internal/models"
)

// Handler exposes the lottery engine over HTTP. The engine is an owned
// handle, not a package global; db is nil when running without a database
// (file-store mode, no operator auth).
type Handler struct {
	engine *engine.Engine
	db     *gorm.DB
}

// New builds the HTTP handler.
func New(e *engine.Engine, db *gorm.DB) *Handler {
	return &Handler{engine: e, db: db}
}

// RegisterRoutes wires all endpoints onto the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	if h.db != nil {
		api.POST("/login", h.Login)
	}

	// Read-only queries stay open; the big screen polls these.
	api.GET("/state", h.State)
	api.GET("/tickets", h.ListTickets)
	api.GET("/tiers", h.ListTiers)
	api.GET("/tiers/:id/records", h.TierRecords)
	api.GET("/records", h.ListRecords)
	api.GET("/draw/preview", h.DrawPreview)

	host := api.Group("/", h.RequireAuth(models.RoleAdmin, models.RoleHost))
	{
		host.POST("/draw/start", h.StartDraw)
		host.POST("/draw/stop", h.StopDraw)
		host.POST("/tiers", h.AddTier)
		host.PUT("/tiers/:id", h.UpdateTier)
		host.DELETE("/tiers/:id", h.RemoveTier)
		host.POST("/tiers/:id/select", h.SelectTier)
		host.PUT("/range", h.SetRange)
		host.PUT("/settings", h.UpdateSettings)
	}

	admin := api.Group("/", h.RequireAuth(models.RoleAdmin))
	{
		admin.POST("/records/:id/revoke", h.RevokeRecord)
		admin.POST("/reset/pool", h.ResetPool)
		admin.POST("/reset/all", h.ResetAll)
		if h.db != nil {
			admin.POST("/operators", h.CreateOperator)
			admin.GET("/operators", h.ListOperators)
			admin.DELETE("/operators/:id", h.DeleteOperator)
		}
	}
}

// respondError maps engine errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case engine.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case engine.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
