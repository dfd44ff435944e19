package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/middleware"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

// tenantID resolve o tenant da requisição: o operador da plataforma pode
// mirar qualquer tenant via query; os demais ficam presos ao próprio.
func tenantID(c *gin.Context) string {
	role, _ := c.Get(middleware.ContextUserRole)
	if role == models.RoleSuperAdmin {
		if q := c.Query("client_id"); q != "" {
			return q
		}
	}

	clientID, _ := c.Get(middleware.ContextClientID)
	id, _ := clientID.(string)
	return id
}

func currentUserID(c *gin.Context) *string {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(string)
	if !ok {
		return nil
	}
	return &id
}
