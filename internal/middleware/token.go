package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ResolvePresentedToken extracts the bearer credential from a request.
// Two presentation schemes are accepted and the precedence rule lives
// only here: an explicit access_token form/query field wins, otherwise
// the Authorization header must carry "Bearer <token>".
func ResolvePresentedToken(c *gin.Context) (string, bool) {
	if tok := c.PostForm("access_token"); tok != "" {
		return tok, true
	}
	if tok := c.Query("access_token"); tok != "" {
		return tok, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
