package httputils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClientMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got string
	router := gin.New()
	router.Use(ClientMiddleware())
	router.GET("/", func(c *gin.Context) {
		got = GetClient(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("with user agent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("User-Agent", "ged-quiz/1.0")
		router.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "ged-quiz/1.0", got)
	})

	t.Run("without user agent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, UnknownClient, got)
	})
}

func TestGetClient_EmptyContext(t *testing.T) {
	assert.Equal(t, UnknownClient, GetClient(context.Background()))
}
