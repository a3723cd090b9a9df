package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/quest-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/quest-tracker-api/internal/errors"
)

// RequireAuth checks if the request carries a live session. Expired or
// malformed sessions are cleared and the request stops with 401 before any
// handler runs.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := SessionUsername(c)
		if !ok {
			session := sessions.Default(c)
			if session.Get(constants.ContextKeyUsername) != nil {
				session.Clear()
				_ = session.Save()
			}
			apierrors.AbortWithError(c, http.StatusUnauthorized, apierrors.NewAPIError(apierrors.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		// Store username in context for easy access in handlers
		c.Set(constants.ContextKeyUsername, username)
		c.Next()
	}
}

// SessionUsername resolves the caller from the session without aborting.
// The session is valid only while its absolute expiry lies in the future.
func SessionUsername(c *gin.Context) (string, bool) {
	session := sessions.Default(c)

	username, ok := session.Get(constants.ContextKeyUsername).(string)
	if !ok || username == "" {
		return "", false
	}

	expiresAt, ok := session.Get(constants.SessionKeyExpiresAt).(int64)
	if !ok || !time.Now().Before(time.Unix(expiresAt, 0)) {
		return "", false
	}

	return username, true
}

// GetUsername retrieves the authenticated username from context. It is empty
// when RequireAuth did not run, which the services reject as unauthorized.
func GetUsername(c *gin.Context) string {
	username, _ := c.Get(constants.ContextKeyUsername)
	name, _ := username.(string)
	return name
}

// StartSession stores username with an absolute expiry. Later requests never
// extend it.
func StartSession(c *gin.Context, username string) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyUsername, username)
	session.Set(constants.SessionKeyExpiresAt, time.Now().Add(constants.SessionTTL).Unix())
	return session.Save()
}

// EndSession clears the session and expires the cookie.
func EndSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}
