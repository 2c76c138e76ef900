package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/01moynul/audiogear-golang/internal/auth"
	"github.com/01moynul/audiogear-golang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/auth/register", "", map[string]string{
		"username": "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "registered")

	token := env.login(t, "alice", "secret123")

	var me models.UserInfo
	w = env.do(t, "GET", "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &me)
	assert.Equal(t, "alice", me.Username)
	assert.False(t, me.IsAdmin)
	assert.Greater(t, me.ID, int64(0))
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		username string
		password string
		wantMsg  string
	}{
		{"username too short", "ab", "secret123", "Username must be 3-32 characters"},
		{"username too long", "abcdefghijklmnopqrstuvwxyz0123456789", "secret123", "Username must be 3-32 characters"},
		{"multibyte username too short", "ąę", "secret123", "Username must be 3-32 characters"},
		{"username with whitespace", "bad user", "secret123", "Username must not contain whitespace"},
		{"password too short", "alice", "short", "Password must be 6-128 characters"},
		{"multibyte password too short", "alice", "ąęóźż", "Password must be 6-128 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, "POST", "/auth/register", "", map[string]string{
				"username": tt.username,
				"password": tt.password,
			})
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}

func TestRegisterCountsCharactersNotBytes(t *testing.T) {
	env := newTestEnv(t)

	// 32 characters but 64 bytes; still within the limit.
	username := strings.Repeat("ą", 32)
	w := env.do(t, "POST", "/auth/register", "", map[string]string{
		"username": username, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Three characters is the minimum regardless of encoding width.
	w = env.do(t, "POST", "/auth/register", "", map[string]string{
		"username": "ąęó", "password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRegisterDuplicateUsernameCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/auth/register", "", map[string]string{
		"username": "Alice", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	for _, variant := range []string{"Alice", "alice", "ALICE"} {
		w = env.do(t, "POST", "/auth/register", "", map[string]string{
			"username": variant, "password": "secret123",
		})
		assert.Equal(t, http.StatusConflict, w.Code, "variant %q", variant)
		assert.Contains(t, w.Body.String(), "Username already taken")
	}
}

func TestRegisterNeverIssuesToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/auth/register", "", map[string]string{
		"username": "alice", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "access_token")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "secret123", false)

	w := env.doForm(t, "/auth/token", url.Values{
		"username": {"alice"}, "password": {"wrong-password"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect username or password")

	w = env.doForm(t, "/auth/token", url.Values{
		"username": {"nobody"}, "password": {"secret123"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginIsCaseSensitiveOnUsername(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "secret123", false)

	// Registration blocks case variants, but login looks up the exact
	// stored spelling.
	w := env.doForm(t, "/auth/token", url.Values{
		"username": {"ALICE"}, "password": {"secret123"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, "GET", "/api/me", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthTokenViaQueryParam(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "secret123", false)
	token := env.login(t, "alice", "secret123")

	w := env.do(t, "GET", "/api/me?access_token="+token, "", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAuthExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "secret123", false)

	expiredIssuer := auth.NewTokenService([]byte(testSecret), -time.Minute)
	token, err := expiredIssuer.GenerateToken("alice")
	require.NoError(t, err)

	w := env.do(t, "GET", "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthVanishedSubject(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "alice", "secret123", false)
	token := env.login(t, "alice", "secret123")

	_, err := env.DB.Exec("DELETE FROM users WHERE id = ?", userID)
	require.NoError(t, err)

	// A valid token whose subject no longer resolves is a 401, not a
	// stale-identity success.
	w := env.do(t, "GET", "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
