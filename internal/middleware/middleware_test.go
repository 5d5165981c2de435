package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/orgdash/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	distinctIDs []string
	events      []string
}

func (r *recordingSink) Enqueue(distinctID string, event string, _ map[string]any) {
	r.distinctIDs = append(r.distinctIDs, distinctID)
	r.events = append(r.events, event)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimitRejectsAfterLimit(t *testing.T) {
	limiter, err := NewRateLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/sign-in", RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sign-in", nil))
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewRateLimiterRejectsBadFormat(t *testing.T) {
	_, err := NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestAuthMiddlewareAcceptsCookie(t *testing.T) {
	token, _, err := utils.GenerateSessionToken("user-1", "a@x.io", true, "secret", time.Hour, "test")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware("secret", "session"), func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		c.String(http.StatusOK, userID)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware("secret", "session"), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPosthogMiddlewareNamesEventsAfterRoute(t *testing.T) {
	sink := &recordingSink{}
	r := gin.New()
	r.Use(PosthogMiddleware(sink))
	withUser := func(c *gin.Context) {
		c.Set(string(userIDKey), "user-1")
		c.Next()
	}
	r.DELETE("/api/v1/organisation/members/:member_id", withUser, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/organisation", withUser, func(c *gin.Context) { c.Status(http.StatusForbidden) })
	r.GET("/health", withUser, func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodDelete, "/api/v1/organisation/members/m-1", nil),
		httptest.NewRequest(http.MethodGet, "/api/v1/organisation", nil),
		httptest.NewRequest(http.MethodGet, "/health", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, []string{"api_v1_organisation_members_:member_id"}, sink.events)
	assert.Equal(t, []string{"user-1"}, sink.distinctIDs)
}

func TestStructuredLoggingSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.GET("/ip", func(c *gin.Context) {
		c.String(http.StatusOK, GetClientIPFromCtx(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "192.0.2.1", w.Body.String())
}
