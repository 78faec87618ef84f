package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-library-backend/internal/config"
	"course-library-backend/internal/shared/middleware"
	"course-library-backend/pkg/container"
)

const (
	berry       = "d28888e9-2ba9-473a-a40f-e38cb54f9b35"
	testSecret  = "0123456789abcdef0123456789abcdef"
	coursesPath = "/api/authors/" + berry + "/courses"
)

func newTestRouter(t *testing.T, withAuth bool) (*gin.Engine, *container.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:     config.AppConfig{Name: "course-library", Environment: "test", Port: "0", Version: "test", LogLevel: "error"},
		Storage: config.StorageConfig{Driver: "memory", Seed: true},
		JWT:     config.JWTConfig{Enabled: withAuth, Secret: testSecret, TokenTTL: time.Hour},
	}

	c, err := container.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	return SetupRouter(c), c
}

func do(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "http://courses.test"+path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth_Memory(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := do(r, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Status   string            `json:"status"`
			Services map[string]string `json:"services"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "ok", body.Data.Status)
	assert.Equal(t, "memory", body.Data.Services["storage"])
}

func TestRouter_CreateThenFollowLocation(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := do(r, http.MethodPost, coursesPath, `{"title":"Knots","description":"Tying them."}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "http://courses.test"+coursesPath+"/"), location)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = do(r, http.MethodGet, strings.TrimPrefix(location, "http://courses.test"), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Knots"`)
}

func TestRouter_Options(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := do(r, http.MethodOptions, coursesPath, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET, OPTIONS, POST, PUT, PATCH, DELETE", w.Header().Get("Allow"))

	w = do(r, http.MethodOptions, "/api/authors", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET, OPTIONS, POST", w.Header().Get("Allow"))
}

func TestRouter_DeleteAuthorCascadesCourses(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := do(r, http.MethodDelete, "/api/authors/"+berry, "", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, coursesPath, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_WriteGuard(t *testing.T) {
	r, c := newTestRouter(t, true)

	w := do(r, http.MethodGet, coursesPath, "", nil)
	assert.Equal(t, http.StatusOK, w.Code, "reads stay public")

	payload := `{"title":"Knots","description":"Tying them."}`

	w = do(r, http.MethodPost, coursesPath, payload, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	readOnly, err := c.JWTManager.GenerateToken("tester", "read")
	require.NoError(t, err)
	w = do(r, http.MethodPost, coursesPath, payload, map[string]string{"Authorization": "Bearer " + readOnly})
	assert.Equal(t, http.StatusForbidden, w.Code)

	writer, err := c.JWTManager.GenerateToken("tester", middleware.ScopeWrite)
	require.NoError(t, err)
	w = do(r, http.MethodPost, coursesPath, payload, map[string]string{"Authorization": "Bearer " + writer})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t, false)
	h := corsHandler(config.CORSConfig{AllowedOrigins: []string{"https://app.example"}}).Handler(r)

	w := do(h, http.MethodOptions, coursesPath, "", map[string]string{
		"Origin":                        "https://app.example",
		"Access-Control-Request-Method": http.MethodPatch,
	})

	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestHealth_RedisConfiguredButUnreachable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := &container.Container{Config: &config.Config{
		App:     config.AppConfig{Version: "test"},
		Storage: config.StorageConfig{Driver: "postgres"},
		Redis:   config.RedisConfig{Enabled: true},
	}}

	w := do(SetupRouter(c), http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
	assert.Contains(t, w.Body.String(), `"redis":"down"`)
}
