package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"auth-session-svc/src/clients"
	"auth-session-svc/src/internal/config"
	"auth-session-svc/src/internal/credentials"
	"auth-session-svc/src/internal/middleware"
	"auth-session-svc/src/internal/models"
	"auth-session-svc/src/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	Login(c *gin.Context)
	Logout(c *gin.Context)
	CheckAuth(c *gin.Context)
	UpdatePreferences(c *gin.Context)
	Health(c *gin.Context)
}

type handler struct {
	config    *config.Configuration
	store     session.Store
	verifier  credentials.Verifier
	publisher clients.ActivityPublisher
}

func NewHandler(
	cfg *config.Configuration,
	store session.Store,
	verifier credentials.Verifier,
	publisher clients.ActivityPublisher,
) Handler {
	return &handler{
		config:    cfg,
		store:     store,
		verifier:  verifier,
		publisher: publisher,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updatePreferencesRequest struct {
	Theme string `json:"theme"`
}

func (h *handler) cookieOptions() CookieOptions {
	return CookieOptions{
		Name:   h.config.Session.CookieName,
		TTL:    time.Duration(h.config.Session.TTLHours) * time.Hour,
		Secure: h.config.Session.SecureCookie,
	}
}

// Login verifies credentials, creates a session and sets the session
// cookie. The token never appears in the response body.
func (h *handler) Login(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Username and password are required",
		})
		return
	}

	ok, err := h.verifier.Verify(ctx, req.Username, req.Password)
	if err != nil {
		logrus.WithError(err).Error("Credential verification failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
		})
		return
	}

	if !ok {
		logrus.WithFields(logrus.Fields{
			"username": req.Username,
			"ip":       c.ClientIP(),
		}).Warn("Login rejected")

		h.publishActivity(req.Username, "", models.ServiceAuthLogin, models.ActionLoginFailed, c)

		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Invalid credentials",
		})
		return
	}

	record, err := h.store.Create(ctx, req.Username)
	if err != nil {
		logrus.WithError(err).Error("Failed to create session")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
		})
		return
	}

	SetSessionCookie(c, h.cookieOptions(), record.Token)

	logrus.WithFields(logrus.Fields{
		"username": req.Username,
		"ip":       c.ClientIP(),
	}).Info("User logged in")

	h.publishActivity(req.Username, record.Token, models.ServiceAuthLogin, models.ActionLogin, c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    record,
	})
}

// Logout destroys the session resolved by the middleware and clears the
// cookie. Replaying logout with a stale cookie yields 401, not a crash.
func (h *handler) Logout(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	token := middleware.SessionToken(c)
	record := middleware.SessionRecord(c)

	if err := h.store.Destroy(ctx, token); err != nil {
		if !errors.Is(err, models.ErrSessionNotFound) {
			logrus.WithError(err).Error("Failed to destroy session")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Internal server error",
			})
			return
		}
		// Session raced away between middleware and destroy; the cookie
		// still gets cleared below.
	}

	ClearSessionCookie(c, h.cookieOptions())

	if record != nil {
		logrus.WithField("username", record.Username).Info("User logged out")
		h.publishActivity(record.Username, token, models.ServiceAuthLogout, models.ActionLogout, c)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CheckAuth reports whether the request carries a live session. A missing,
// invalid or expired token is a normal outcome, never an error.
func (h *handler) CheckAuth(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	token := TokenFromRequest(c, h.config.Session.CookieName)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	record, err := h.store.Get(ctx, token)
	if err != nil {
		logrus.WithError(err).Error("Failed to resolve session")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
		})
		return
	}

	if record == nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          record,
	})
}

// UpdatePreferences mutates the theme preference of the current session.
func (h *handler) UpdatePreferences(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.IsValidTheme(req.Theme) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid theme value",
		})
		return
	}

	token := middleware.SessionToken(c)

	record, err := h.store.SetTheme(ctx, token, req.Theme)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSessionNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Not authenticated",
			})
		case errors.Is(err, models.ErrInvalidTheme):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid theme value",
			})
		default:
			logrus.WithError(err).Error("Failed to update preferences")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Internal server error",
			})
		}
		return
	}

	logrus.WithFields(logrus.Fields{
		"username": record.Username,
		"theme":    req.Theme,
	}).Info("Preferences updated")

	h.publishActivity(record.Username, token, models.ServiceAuthPreferences, models.ActionPreferencesUpdate, c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    record,
	})
}

// Health reports liveness and whether the request carries a live session.
func (h *handler) Health(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	sessionState := "none"
	if token := TokenFromRequest(c, h.config.Session.CookieName); token != "" {
		record, err := h.store.Get(ctx, token)
		if err == nil && record != nil {
			sessionState = "active"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"session":   sessionState,
	})
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}

func (h *handler) publishActivity(username, token, service, action string, c *gin.Context) {
	if err := h.publisher.PublishActivity(
		username,
		token,
		service,
		action,
		c.ClientIP(),
		c.Request.UserAgent(),
	); err != nil {
		logrus.WithError(err).Warn("Failed to publish activity event")
	}
}
