package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/config"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/session"
)

const (
	ContextUserID    = "userID"
	ContextClientID  = "clientID"
	ContextUserRole  = "userRole"
	ContextSessionID = "sessionID"
)

// AuthMiddleware valida o token e exige sessão viva no Redis: token
// assinado mas com jti já apagado (logout, expiração) é recusado.
func AuthMiddleware(cfg *config.Config, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		userID, ok1 := claims["sub"].(string)
		jti, ok2 := claims["jti"].(string)
		role, _ := claims["role"].(string)
		clientID, _ := claims["clientId"].(string)
		if !ok1 || !ok2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		owner, err := sessions.UserID(c.Request.Context(), jti)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session_store_unavailable"})
			return
		}
		if owner == "" || owner != userID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session_expired"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextClientID, clientID)
		c.Set(ContextUserRole, role)
		c.Set(ContextSessionID, jti)

		c.Next()
	}
}

// RequireRole protege rotas do operador da plataforma.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, _ := c.Get(ContextUserRole)
		if current != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
