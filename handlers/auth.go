package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scratchboard/dashboard/internal/tokens"
	"github.com/scratchboard/dashboard/pkg/apperr"
	"github.com/scratchboard/dashboard/pkg/logger"
	"github.com/scratchboard/dashboard/pkg/middleware"
)

// LoginRequest is the admin login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CredentialChecker validates admin credentials against the stored document.
type CredentialChecker interface {
	Authenticate(ctx context.Context, username, password string) error
}

// AuthHandler holds dependencies
type AuthHandler struct {
	creds CredentialChecker
	auth  tokens.Authenticator
}

func NewAuthHandler(creds CredentialChecker, auth tokens.Authenticator) *AuthHandler {
	return &AuthHandler{creds: creds, auth: auth}
}

// Register mounts login publicly and logout behind gate.
func (h *AuthHandler) Register(rg gin.IRouter, gate gin.HandlerFunc) {
	a := rg.Group("/api/admin")
	a.POST("/login", h.Login)
	a.POST("/logout", gate, h.Logout)
}

// Login exchanges the admin username and password for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	// an unreadable body is a failed login, not a bad request
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debugf("admin login body rejected: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err := h.creds.Authenticate(c.Request.Context(), req.Username, req.Password); err != nil {
		status := apperr.HTTPStatusCode(err)
		if status >= http.StatusInternalServerError {
			logger.Errorf("admin login: %v", err)
		} else {
			logger.Infof("admin login rejected for %q", req.Username)
		}
		c.JSON(status, gin.H{"message": apperr.Message(err)})
		return
	}
	token, err := h.auth.Issue(c.Request.Context(), req.Username)
	if err != nil {
		logger.Errorf("issue admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
}

// Logout revokes the presented token where the authenticator supports it.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.AdminTokenKey)
	if err := h.auth.Revoke(c.Request.Context(), token); err != nil {
		logger.Warnf("revoke admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
