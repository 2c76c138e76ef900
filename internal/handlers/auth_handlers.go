package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/01moynul/audiogear-golang/internal/middleware"
	"github.com/01moynul/audiogear-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// Login is the handler for POST /auth/token. It takes OAuth2-style form
// credentials and returns a bearer token.
func (h *Handlers) Login(c *gin.Context) {
	username := c.PostForm("username")
	plaintext := c.PostForm("password")

	var user models.User
	err := h.DB.QueryRow(
		"SELECT id, username, password_hash, is_admin FROM users WHERE username = ?", username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	match, err := password.Matches(plaintext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify password"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	token, err := h.Tokens.GenerateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register is the handler for POST /auth/register. New accounts are always
// non-admin and no token is issued; the client logs in afterwards.
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body"})
		return
	}

	// Length limits count characters, not bytes.
	username := strings.TrimSpace(input.Username)
	if n := utf8.RuneCountInString(username); n < 3 || n > 32 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Username must be 3-32 characters"})
		return
	}
	if strings.ContainsFunc(username, unicode.IsSpace) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Username must not contain whitespace"})
		return
	}
	if n := utf8.RuneCountInString(input.Password); n < 6 || n > 128 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Password must be 6-128 characters"})
		return
	}

	// Usernames are unique case-insensitively; the column's UNIQUE index
	// only covers the exact spelling.
	var existingID int64
	err := h.DB.QueryRow(
		"SELECT id FROM users WHERE LOWER(username) = ?", strings.ToLower(username),
	).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	_, err = h.DB.Exec(
		"INSERT INTO users (username, password_hash, is_admin, created_at) VALUES (?, ?, ?, ?)",
		username, password.Hash, false, time.Now(),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registered"})
}

// Me is the handler for GET /api/me.
func (h *Handlers) Me(c *gin.Context) {
	c.JSON(http.StatusOK, models.UserInfo{
		ID:       c.GetInt64(middleware.CtxUserID),
		Username: c.GetString(middleware.CtxUsername),
		IsAdmin:  c.GetBool(middleware.CtxIsAdmin),
	})
}
