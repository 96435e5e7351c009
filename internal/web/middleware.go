package web

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garrett-1/portfolio/internal/metrics"
)

// untracked lists path prefixes, relative to the base path, that never count
// as page views.
var untracked = []string{"/static/", "/reveal/", "/s/", "/resume", "/favicon"}

// pageViews counts rendered pages by route. Nothing about the visitor is
// recorded, and visitors sending DNT: 1 are not counted at all.
func pageViews(m *metrics.Metrics, base string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != http.MethodGet || c.Writer.Status() != http.StatusOK {
			return
		}
		if c.GetHeader("DNT") == "1" {
			return
		}
		route := c.FullPath()
		if route == "" || !strings.HasPrefix(route, base) {
			return
		}
		rel := strings.TrimPrefix(route, base)
		if rel == "/healthz" || rel == "/metrics" {
			return
		}
		for _, prefix := range untracked {
			if strings.HasPrefix(rel, prefix) {
				return
			}
		}
		m.PageViews.WithLabelValues(route).Inc()
	}
}

// requestLogger writes one slog record per request. Client addresses are
// salted and hashed so logs cannot be joined back to visitors.
func requestLogger(logger *slog.Logger, salt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client", hashIP(salt, c.ClientIP()),
		)
	}
}

// newSalt returns a random per-process salt for hashIP.
func newSalt() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

func hashIP(salt, ip string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:16]
}
