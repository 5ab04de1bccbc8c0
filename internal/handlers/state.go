package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/istlab/raffle-backend/internal/engine"
)

// State handles GET /api/v1/state: the full read model in one response, which
// is what the display frontend polls.
func (h *Handler) State(c *gin.Context) {
	var selectedID string
	if t := h.engine.CurrentTier(); t != nil {
		selectedID = t.ID
	}
	c.JSON(http.StatusOK, gin.H{
		"configuration":  h.engine.Config(),
		"tickets":        h.engine.ListTickets(),
		"prizeTiers":     h.engine.ListTiers(),
		"drawRecords":    h.engine.Records(),
		"selectedTierId": selectedID,
		"drawing":        h.engine.IsDrawing(),
		"canDraw":        h.engine.CanDraw(),
	})
}

// ListTickets handles GET /api/v1/tickets.
func (h *Handler) ListTickets(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.ListTickets())
}

// ListRecords handles GET /api/v1/records: full draw history, newest first,
// revoked records included.
func (h *Handler) ListRecords(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Records())
}

// rangePayload is the JSON shape for a ticket range edit. Pointer fields so
// "required" means the key is present; zero is a legal start number.
type rangePayload struct {
	StartNumber *int `json:"startNumber" binding:"required"`
	EndNumber   *int `json:"endNumber" binding:"required"`
}

// SetRange handles PUT /api/v1/range.
func (h *Handler) SetRange(c *gin.Context) {
	var payload rangePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}
	if err := h.engine.SetRange(*payload.StartNumber, *payload.EndNumber); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.engine.Config())
}

// settingsPayload is the JSON shape for a partial settings edit.
type settingsPayload struct {
	AnimationSpeed *int  `json:"animationSpeed,omitempty"`
	SoundEnabled   *bool `json:"soundEnabled,omitempty"`
}

// UpdateSettings handles PUT /api/v1/settings.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var payload settingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}
	updated, err := h.engine.UpdateSettings(engine.SettingsUpdate{
		AnimationSpeed: payload.AnimationSpeed,
		SoundEnabled:   payload.SoundEnabled,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ResetPool handles POST /api/v1/reset/pool.
func (h *Handler) ResetPool(c *gin.Context) {
	h.engine.ResetPool()
	c.JSON(http.StatusOK, gin.H{"message": "pool reset"})
}

// ResetAll handles POST /api/v1/reset/all.
func (h *Handler) ResetAll(c *gin.Context) {
	h.engine.ResetAll()
	c.JSON(http.StatusOK, gin.H{"message": "all state reset"})
}
