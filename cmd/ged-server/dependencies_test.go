package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bosserz/ged-assessment/httpapi"
	"github.com/bosserz/ged-assessment/internal/analytics"
	"github.com/bosserz/ged-assessment/internal/config"
	"github.com/bosserz/ged-assessment/internal/questionbank"
	"github.com/bosserz/ged-assessment/internal/storage"
	"github.com/bosserz/ged-assessment/internal/testhelper"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestEngine(t *testing.T, cfg config.ServerConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := storage.NewSubmissionRepository(testhelper.NewSQLiteStore(t))
	services := []httpapi.Service{
		QuizService(questionbank.NewFileSource("testdata/questions.json"), repo, analytics.NewTracker(nil)),
		AdminService(repo, cfg),
	}
	middlewares := []Middleware{ClientMiddleware(), CorsMiddleware(cfg)}

	return GinEngine(services, middlewares, cfg)
}

func serve(engine http.Handler, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

// GinEngine registers its request metrics on the default registry, so the
// engine is built once.
func TestGinEngine(t *testing.T) {
	engine := newTestEngine(t, config.ServerConfig{AllowedOrigins: []string{"*"}})

	t.Run("health", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/healthz").Code)
	})

	t.Run("questions", func(t *testing.T) {
		rr := serve(engine, http.MethodGet, "/questions")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"id":"q1"`)
	})

	t.Run("admin disabled", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/admin/submissions").Code)
	})

	t.Run("metrics", func(t *testing.T) {
		rr := serve(engine, http.MethodGet, "/metrics")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "ged_http_")
	})
}

func TestAdminService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := storage.NewSubmissionRepository(testhelper.NewSQLiteStore(t))

	router := gin.New()
	AdminService(repo, config.ServerConfig{AdminEnabled: true}).Register(router)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/admin/submissions").Code)
}

func TestCorsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(CorsMiddleware(config.ServerConfig{AllowedOrigins: []string{"https://ged.example.com"}}).Handler)
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://ged.example.com")
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, req)

	assert.Equal(t, "https://ged.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}
