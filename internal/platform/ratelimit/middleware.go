package ratelimit

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/api"
)

// ClientKey identifies the client for rate limiting: the first address in
// X-Forwarded-For, then X-Real-IP, then a loopback fallback.
func ClientKey(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	return "127.0.0.1"
}

// Middleware returns a Gin middleware that consults the limiter before the
// handler runs. A nil limiter means the capability is not configured and the
// request passes through. A limiter backend error aborts with 500: the
// collaborator is configured but unreachable, which must surface rather
// than silently allow.
func Middleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		key := ClientKey(c)
		allowed, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Error("rate limiter unavailable", "error", err, "client", key)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				api.ErrorResponse{Message: "Internal server error"})
			return
		}
		if !allowed {
			slog.Warn("request rate limited", "client", key, "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				api.ErrorResponse{Message: "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
