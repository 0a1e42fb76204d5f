package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"inventory-api/internal/api/middleware"
	"inventory-api/internal/config"
	"inventory-api/internal/models"
	"inventory-api/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService  *services.AuthService
	totpService  *services.TOTPService
	auditService *services.AuditService
	cfg          *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:  services.NewAuthService(cfg),
		totpService:  services.NewTOTPService(cfg),
		auditService: services.NewAuditService(cfg),
		cfg:          cfg,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyMFARequest struct {
	TempToken string `json:"tempToken" binding:"required"`
	MFACode   string `json:"mfaCode" binding:"required,len=6"`
}

type VerifySetupMFARequest struct {
	MFACode string `json:"mfaCode" binding:"required,len=6"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// Login verifies credentials. Users without MFA get a session cookie and
// their identity; users with MFA enabled get a short-lived pending token
// in the body instead, and no cookie until the code is verified.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request"})
		return
	}

	user, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		// Same message for unknown email and wrong password
		c.JSON(401, gin.H{"message": "Invalid credentials"})
		return
	}

	if user.MFAEnabled {
		tempToken, _, err := h.authService.IssueToken(user.ID, services.TokenKindPending)
		if err != nil {
			c.JSON(500, gin.H{"message": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"mfaRequired": true,
			"tempToken":   tempToken,
			"message":     "Please verify MFA code",
		})
		return
	}

	token, expiresAt, err := h.authService.IssueToken(user.ID, services.TokenKindFull)
	if err != nil {
		c.JSON(500, gin.H{"message": "Failed to generate token"})
		return
	}

	h.setSessionCookie(c, token, expiresAt)
	h.logAudit(user.ID, models.AuditActionLogin, c)

	c.JSON(200, identity(user))
}

// VerifyMFA completes a pending login. The pending token identifies the
// subject; the submitted code is checked against the stored secret with
// a ±1 step window. On failure no new pending token is issued.
func (h *AuthHandler) VerifyMFA(c *gin.Context) {
	var req VerifyMFARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request"})
		return
	}

	userID, err := h.authService.ParseToken(req.TempToken, services.TokenKindPending)
	if err != nil {
		c.JSON(401, gin.H{"message": "Invalid or expired token"})
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil || !user.MFAEnabled {
		c.JSON(400, gin.H{"message": "MFA not enabled for this user"})
		return
	}

	if !h.totpService.ValidateCode(user.MFASecret, req.MFACode) {
		c.JSON(401, gin.H{"message": "Invalid MFA code"})
		return
	}

	token, expiresAt, err := h.authService.IssueToken(user.ID, services.TokenKindFull)
	if err != nil {
		c.JSON(500, gin.H{"message": "Failed to generate token"})
		return
	}

	h.setSessionCookie(c, token, expiresAt)
	h.logAudit(user.ID, models.AuditActionMFAVerify, c)

	c.JSON(200, identity(user))
}

// SetupMFA generates a fresh secret for the current user and persists it
// unconfirmed. MFA is not enforced at login until VerifySetupMFA succeeds.
func (h *AuthHandler) SetupMFA(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		c.JSON(401, gin.H{"message": "Not authenticated"})
		return
	}

	secret, provisioningURI, err := h.totpService.GenerateSecret(user.Email)
	if err != nil {
		c.JSON(500, gin.H{"message": "Failed to generate MFA secret"})
		return
	}

	if err := h.authService.SetMFASecret(user.ID, secret); err != nil {
		c.JSON(500, gin.H{"message": "Failed to save MFA secret"})
		return
	}

	h.logAudit(user.ID, models.AuditActionMFASetup, c)

	c.JSON(200, gin.H{
		"provisioningUri": provisioningURI,
		"secret":          secret,
	})
}

// VerifySetupMFA confirms a pending enrollment: a matching code commits
// MFA as active for the current user.
func (h *AuthHandler) VerifySetupMFA(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		c.JSON(401, gin.H{"message": "Not authenticated"})
		return
	}

	var req VerifySetupMFARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request"})
		return
	}

	// The context copy has its secret blanked; reload it
	stored, err := h.authService.GetUserByID(user.ID)
	if err != nil || stored.MFASecret == "" {
		c.JSON(400, gin.H{"message": "MFA setup not started"})
		return
	}

	if !h.totpService.ValidateCode(stored.MFASecret, req.MFACode) {
		c.JSON(400, gin.H{"message": "Invalid MFA code"})
		return
	}

	if err := h.authService.EnableMFA(user.ID); err != nil {
		c.JSON(500, gin.H{"message": "Failed to enable MFA"})
		return
	}

	c.JSON(200, gin.H{"message": "MFA enabled successfully"})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		c.JSON(401, gin.H{"message": "Not authenticated"})
		return
	}

	h.clearSessionCookie(c)
	h.logAudit(user.ID, models.AuditActionLogout, c)

	c.JSON(200, gin.H{"message": "Logged out successfully"})
}

// GetMe returns the current user's identity
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		c.JSON(401, gin.H{"message": "Not authenticated"})
		return
	}

	c.JSON(200, identity(user))
}

// Register creates a new user (ADMIN only)
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid request"})
		return
	}

	user, err := h.authService.CreateUser(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			c.JSON(400, gin.H{"message": "User already exists"})
			return
		}
		c.JSON(400, gin.H{"message": err.Error()})
		return
	}

	c.JSON(201, identity(user))
}

// identity shapes a user for client responses, never including the
// password hash or MFA secret
func identity(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"role":       user.Role,
		"mfaEnabled": user.MFAEnabled,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(http.SameSiteStrictMode)
	secure := h.cfg.Server.Mode == "release"
	c.SetCookie(middleware.SessionCookie, token, int(time.Until(expiresAt).Seconds()), "/", "", secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	secure := h.cfg.Server.Mode == "release"
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secure, true)
}

// logAudit records an auth event; failures are logged, never surfaced
func (h *AuthHandler) logAudit(userID uint, action string, c *gin.Context) {
	entry := &models.AuditLog{
		UserID:    userID,
		Action:    action,
		Resource:  models.AuditResourceAuth,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if err := h.auditService.Record(entry); err != nil {
		log.Printf("audit logging error: %v", err)
	}
}
