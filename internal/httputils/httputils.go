// Package httputils provides utilities for HTTP requests.
package httputils

import (
	"context"

	"github.com/gin-gonic/gin"
)

type httputilsContextKey string

const (
	// contextKeyClient is the key for the client's User-Agent in the context.
	contextKeyClient httputilsContextKey = "httputils:client"
)

// UnknownClient is reported when the request carried no User-Agent.
const UnknownClient = "unknown"

// ClientMiddleware puts the User-Agent header into the request context.
func ClientMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		newCtx := WithClient(c.Request.Context(), c.GetHeader("User-Agent"))
		c.Request = c.Request.WithContext(newCtx)
		c.Next()
	}
}

// WithClient stores the client name in ctx.
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, contextKeyClient, client)
}

// GetClient returns the client name from the context.
func GetClient(ctx context.Context) string {
	if client, ok := ctx.Value(contextKeyClient).(string); ok && client != "" {
		return client
	}

	return UnknownClient
}
