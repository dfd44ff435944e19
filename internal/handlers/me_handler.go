package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/middleware"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var user models.User
	if err := h.db.Preload("Client").
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"role":      user.Role,
			"client_id": user.ClientID,
		},
	}
	if user.Client != nil {
		resp["client"] = gin.H{
			"id":       user.Client.ID,
			"name":     user.Client.Name,
			"email":    user.Client.Email,
			"phone":    user.Client.Phone,
			"plan":     user.Client.Plan,
			"timezone": user.Client.Timezone,
		}
	}

	c.JSON(http.StatusOK, resp)
}
