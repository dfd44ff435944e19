package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/config"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/middleware"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/session"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/validators"
)

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	sessions *session.Store
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, sessions *session.Store) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, sessions: sessions}
}

// --------- Requests ---------

type RegisterRequest struct {
	CompanyName  string `json:"company_name" binding:"required"`
	CompanyEmail string `json:"company_email" binding:"required,email"`
	CompanyPhone string `json:"company_phone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	companyEmail := strings.ToLower(strings.TrimSpace(req.CompanyEmail))

	var count int64
	h.db.Model(&models.Client{}).Where("email = ?", companyEmail).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_already_exists"})
		return
	}

	client := models.Client{
		Name:  req.CompanyName,
		Email: companyEmail,
		Phone: req.CompanyPhone,
	}

	if err := h.db.Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_client"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "O domínio do e-mail informado não parece ser válido.",
		})
		return
	}

	user := models.User{
		ClientID:     &client.ID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleClientAdmin,
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	token, err := h.openSession(c, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"role":      user.Role,
			"client_id": user.ClientID,
		},
		"client": gin.H{
			"id":    client.ID,
			"name":  client.Name,
			"email": client.Email,
			"phone": client.Phone,
			"plan":  client.Plan,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Preload("Client").
		Where("email = ? AND active = true", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.openSession(c, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
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
		"token": token,
	}
	if user.Client != nil {
		resp["client"] = gin.H{
			"id":    user.Client.ID,
			"name":  user.Client.Name,
			"email": user.Client.Email,
			"phone": user.Client.Phone,
			"plan":  user.Client.Plan,
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.MustGet(middleware.ContextSessionID).(string)

	if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_close_session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------- JWT + sessão ---------

// openSession assina o token e registra o jti no Redis; a sessão só vale
// enquanto a chave existir lá.
func (h *AuthHandler) openSession(c *gin.Context, user *models.User) (string, error) {
	jti := uuid.NewString()

	clientID := ""
	if user.ClientID != nil {
		clientID = *user.ClientID
	}

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"jti":      jti,
		"clientId": clientID,
		"role":     user.Role,
		"exp":      time.Now().Add(session.DefaultTTL).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.config.JWTSecret))
	if err != nil {
		return "", err
	}

	if err := h.sessions.Create(
		c.Request.Context(),
		jti,
		user.ID,
		session.DefaultTTL,
	); err != nil {
		return "", err
	}

	return signed, nil
}
