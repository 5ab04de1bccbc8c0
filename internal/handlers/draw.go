package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StartDraw handles POST /api/v1/draw/start. An unmet precondition (no
// selected tier with quota, no undrawn tickets, already drawing) is a guarded
// no-op reported as started:false, not an error.
func (h *Handler) StartDraw(c *gin.Context) {
	started := h.engine.StartDraw()
	c.JSON(http.StatusOK, gin.H{
		"started": started,
		"canDraw": h.engine.CanDraw(),
	})
}

// DrawPreview handles GET /api/v1/draw/preview: a cosmetic sample of an
// undrawn ticket for the cycling display. Nothing is consumed.
func (h *Handler) DrawPreview(c *gin.Context) {
	number, ok := h.engine.PickWinner()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"drawing": h.engine.IsDrawing(), "number": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"drawing": true, "number": number})
}

// StopDraw handles POST /api/v1/draw/stop. Returns the committed winner, or
// winner:null when the draw ended without one (pool empty or tier exhausted).
func (h *Handler) StopDraw(c *gin.Context) {
	result := h.engine.StopDraw()
	if result == nil {
		c.JSON(http.StatusOK, gin.H{"winner": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"winner": result})
}

// RevokeRecord handles POST /api/v1/records/:id/revoke. Revoke is idempotent:
// unknown or already-revoked records report revoked:false without an error.
func (h *Handler) RevokeRecord(c *gin.Context) {
	id := c.Param("id")
	before := h.engine.Records()
	h.engine.Revoke(id)

	revoked := false
	for _, r := range before {
		if r.ID == id && !r.IsRevoked {
			revoked = true
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"revoked": revoked})
}
