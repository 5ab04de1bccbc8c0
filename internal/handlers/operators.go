package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/istlab/raffle-backend/internal/models"
)

// CreateOperator creates a new operator account.
func (h *Handler) CreateOperator(c *gin.Context) {
	var input struct {
		Username string              `json:"username" binding:"required"`
		Password string              `json:"password" binding:"required,min=6"`
		Role     models.OperatorRole `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	switch input.Role {
	case models.RoleAdmin, models.RoleHost:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	op := models.Operator{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: string(hashed),
		Role:         input.Role,
	}
	if err := h.db.Create(&op).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create operator: " + err.Error()})
		return
	}
	op.PasswordHash = ""
	c.JSON(http.StatusCreated, op)
}

// ListOperators returns all operator accounts.
func (h *Handler) ListOperators(c *gin.Context) {
	var ops []models.Operator
	if err := h.db.Find(&ops).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list operators: " + err.Error()})
		return
	}
	for i := range ops {
		ops[i].PasswordHash = ""
	}
	c.JSON(http.StatusOK, ops)
}

// DeleteOperator removes an operator account.
func (h *Handler) DeleteOperator(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID"})
		return
	}

	var op models.Operator
	if err := h.db.First(&op, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Operator not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error: " + err.Error()})
		}
		return
	}

	if err := h.db.Delete(&op).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete operator: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Operator deleted"})
}
