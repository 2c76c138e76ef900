package middleware

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func contextForRequest(req *httptest.ResponseRecorder, method, target, contentType, body string) *gin.Context {
	c, _ := gin.CreateTestContext(req)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	return c
}

func TestResolvePresentedTokenHeader(t *testing.T) {
	c := contextForRequest(httptest.NewRecorder(), "GET", "/api/me", "", "")
	c.Request.Header.Set("Authorization", "Bearer tok-123")

	tok, ok := ResolvePresentedToken(c)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", tok)
}

func TestResolvePresentedTokenHeaderCaseInsensitiveScheme(t *testing.T) {
	c := contextForRequest(httptest.NewRecorder(), "GET", "/api/me", "", "")
	c.Request.Header.Set("Authorization", "bearer tok-123")

	tok, ok := ResolvePresentedToken(c)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", tok)
}

func TestResolvePresentedTokenQueryParam(t *testing.T) {
	c := contextForRequest(httptest.NewRecorder(), "GET", "/api/me?access_token=tok-q", "", "")

	tok, ok := ResolvePresentedToken(c)
	assert.True(t, ok)
	assert.Equal(t, "tok-q", tok)
}

func TestResolvePresentedTokenFormField(t *testing.T) {
	form := url.Values{"access_token": {"tok-form"}}
	c := contextForRequest(httptest.NewRecorder(), "POST", "/api/cart",
		"application/x-www-form-urlencoded", form.Encode())

	tok, ok := ResolvePresentedToken(c)
	assert.True(t, ok)
	assert.Equal(t, "tok-form", tok)
}

func TestResolvePresentedTokenPrecedence(t *testing.T) {
	// The explicit access_token field wins over the Authorization header.
	c := contextForRequest(httptest.NewRecorder(), "GET", "/api/me?access_token=tok-q", "", "")
	c.Request.Header.Set("Authorization", "Bearer tok-header")

	tok, ok := ResolvePresentedToken(c)
	assert.True(t, ok)
	assert.Equal(t, "tok-q", tok)
}

func TestResolvePresentedTokenMissing(t *testing.T) {
	c := contextForRequest(httptest.NewRecorder(), "GET", "/api/me", "", "")

	_, ok := ResolvePresentedToken(c)
	assert.False(t, ok)
}

func TestResolvePresentedTokenMalformedHeader(t *testing.T) {
	for _, header := range []string{"tok-123", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz"} {
		c := contextForRequest(httptest.NewRecorder(), "GET", "/api/me", "", "")
		c.Request.Header.Set("Authorization", header)

		_, ok := ResolvePresentedToken(c)
		assert.False(t, ok, "header %q", header)
	}
}
