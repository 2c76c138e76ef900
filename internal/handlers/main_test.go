package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/01moynul/audiogear-golang/internal/auth"
	"github.com/01moynul/audiogear-golang/internal/database"
	"github.com/01moynul/audiogear-golang/internal/handlers"
	"github.com/01moynul/audiogear-golang/internal/models"
	"github.com/01moynul/audiogear-golang/internal/routes"
	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	Router *gin.Engine
	DB     *sql.DB
	Tokens *auth.TokenService
}

// newTestEnv builds the real router over an in-memory SQLite store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, "sqlite3"))

	tokens := auth.NewTokenService([]byte(testSecret), time.Hour)
	h := handlers.New(db, tokens)
	return &testEnv{Router: routes.SetupRouter(h), DB: db, Tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// createUser inserts a user row directly and returns its id.
func (e *testEnv) createUser(t *testing.T, username, plaintext string, isAdmin bool) int64 {
	t.Helper()

	var password models.Password
	require.NoError(t, password.Set(plaintext))

	result, err := e.DB.Exec(
		"INSERT INTO users (username, password_hash, is_admin, created_at) VALUES (?, ?, ?, ?)",
		username, password.Hash, isAdmin, time.Now(),
	)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

// createGear inserts a gear row directly and returns its id. rating may be
// nil for an unrated item.
func (e *testEnv) createGear(t *testing.T, name, category, brand string, price float64, inStock bool, rating *float64) int64 {
	t.Helper()

	result, err := e.DB.Exec(
		`INSERT INTO gear_items (name, category, brand, price, in_stock, rating, description, image_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULL, NULL, ?)`,
		name, category, brand, price, inStock, rating, time.Now(),
	)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

// login exercises POST /auth/token and returns the bearer token.
func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()

	w := e.doForm(t, "/auth/token", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.TokenType)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

type pagedGearResponse struct {
	Items    []models.GearItem `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Pages    int               `json:"pages"`
}

type pagedUsersResponse struct {
	Items    []models.UserInfo `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Pages    int               `json:"pages"`
}

func itemNames(items []models.GearItem) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}
