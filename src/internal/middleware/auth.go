package middleware

import (
	"net/http"

	"auth-session-svc/src/internal/models"
	"auth-session-svc/src/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	contextSessionToken  = "session_token"
	contextSessionRecord = "session_record"
)

// SessionMiddleware resolves the session cookie against the store for
// routes that require authentication.
type SessionMiddleware struct {
	store      session.Store
	cookieName string
}

func NewSessionMiddleware(store session.Store, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		store:      store,
		cookieName: cookieName,
	}
}

// RequireSession aborts with 401 unless the request carries a live session.
// On success the token and a copy of the record are stored in the gin
// context for the handler.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Not authenticated",
			})
			return
		}

		record, err := m.store.Get(c.Request.Context(), cookie.Value)
		if err != nil {
			logrus.WithError(err).Error("Session resolution failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Internal server error",
			})
			return
		}

		if record == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Not authenticated",
			})
			return
		}

		c.Set(contextSessionToken, cookie.Value)
		c.Set(contextSessionRecord, record)

		logrus.WithField("username", record.Username).Debug("Session resolved")
		c.Next()
	}
}

// SessionToken returns the token resolved by RequireSession, or "".
func SessionToken(c *gin.Context) string {
	token, _ := c.Get(contextSessionToken)
	if s, ok := token.(string); ok {
		return s
	}
	return ""
}

// SessionRecord returns the record resolved by RequireSession, or nil.
func SessionRecord(c *gin.Context) *models.SessionRecord {
	value, _ := c.Get(contextSessionRecord)
	if record, ok := value.(*models.SessionRecord); ok {
		return record
	}
	return nil
}
