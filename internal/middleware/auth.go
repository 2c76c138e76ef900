package middleware

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/01moynul/audiogear-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
	CtxIsAdmin  = "isAdmin"
)

// Auth resolves the presented token into a live user row. A token whose
// subject no longer exists is rejected the same way as a bad token; the
// request never proceeds with a stale identity.
func Auth(db *sql.DB, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := ResolvePresentedToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			c.Abort()
			return
		}

		username, err := tokens.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			c.Abort()
			return
		}

		var (
			userID  int64
			isAdmin bool
		)
		err = db.QueryRow("SELECT id, username, is_admin FROM users WHERE username = ?", username).
			Scan(&userID, &username, &isAdmin)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			}
			c.Abort()
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUsername, username)
		c.Set(CtxIsAdmin, isAdmin)
		c.Next()
	}
}

// Admin gates a route behind the admin capability. Must run after Auth.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxIsAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
