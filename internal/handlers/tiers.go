package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/istlab/raffle-backend/internal/engine"
)

// tierCreatePayload is the JSON shape for adding a prize tier.
type tierCreatePayload struct {
	Name          string `json:"name" binding:"required"`
	Quota         int    `json:"quota" binding:"required,min=1"`
	Color         string `json:"color,omitempty"`
	SoundResource string `json:"soundResource,omitempty"`
}

// tierUpdatePayload is the JSON shape for a partial tier edit.
type tierUpdatePayload struct {
	Name          *string `json:"name,omitempty"`
	Quota         *int    `json:"quota,omitempty"`
	Color         *string `json:"color,omitempty"`
	SoundResource *string `json:"soundResource,omitempty"`
}

// ListTiers handles GET /api/v1/tiers.
func (h *Handler) ListTiers(c *gin.Context) {
	var selectedID string
	if t := h.engine.CurrentTier(); t != nil {
		selectedID = t.ID
	}
	c.JSON(http.StatusOK, gin.H{
		"tiers":          h.engine.ListTiers(),
		"selectedTierId": selectedID,
	})
}

// AddTier handles POST /api/v1/tiers.
func (h *Handler) AddTier(c *gin.Context) {
	var payload tierCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	tier, err := h.engine.AddTier(payload.Name, payload.Quota, payload.Color, payload.SoundResource)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tier)
}

// UpdateTier handles PUT /api/v1/tiers/:id.
func (h *Handler) UpdateTier(c *gin.Context) {
	var payload tierUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	tier, err := h.engine.UpdateTier(c.Param("id"), engine.TierUpdate{
		Name:          payload.Name,
		Quota:         payload.Quota,
		Color:         payload.Color,
		SoundResource: payload.SoundResource,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tier)
}

// RemoveTier handles DELETE /api/v1/tiers/:id.
func (h *Handler) RemoveTier(c *gin.Context) {
	if err := h.engine.RemoveTier(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tier removed"})
}

// SelectTier handles POST /api/v1/tiers/:id/select.
func (h *Handler) SelectTier(c *gin.Context) {
	if err := h.engine.SelectTier(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selectedTierId": c.Param("id")})
}

// TierRecords handles GET /api/v1/tiers/:id/records: the per-tier winner
// list, unrevoked, newest first.
func (h *Handler) TierRecords(c *gin.Context) {
	records, err := h.engine.RecordsForTier(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
