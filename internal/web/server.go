// Package web serves the portfolio page with gin. HTMX fragments drive the
// experience carousel and navigation highlight; the hero lines are typed
// out over Server-Sent Events, one reveal engine per connection.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garrett-1/portfolio/internal/logging"
	"github.com/garrett-1/portfolio/internal/metrics"
	"github.com/garrett-1/portfolio/internal/platform/clock"
	"github.com/garrett-1/portfolio/internal/portfolio"
	"github.com/garrett-1/portfolio/internal/reveal"
	"github.com/garrett-1/portfolio/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Options tunes a Server. Zero values fall back to defaults.
type Options struct {
	// BasePath mounts every page route under a prefix, e.g. "/Garrett/Portfolio".
	BasePath       string
	RevealInterval time.Duration
	// ResumePath is a local file served by /resume. Empty disables the route.
	ResumePath string
	Scheduler  clock.Scheduler
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

type Server struct {
	content  *portfolio.Content
	sessions *session.Store

	base       string // "" when mounted at the root
	interval   time.Duration
	resumePath string
	sched      clock.Scheduler
	logger     *slog.Logger
	metrics    *metrics.Metrics

	router *gin.Engine
}

// New wires the routes. The caller owns the session store's sweeper.
func New(content *portfolio.Content, sessions *session.Store, opts Options) (*Server, error) {
	s := &Server{
		content:    content,
		sessions:   sessions,
		base:       strings.TrimRight(opts.BasePath, "/"),
		interval:   opts.RevealInterval,
		resumePath: opts.ResumePath,
		sched:      opts.Scheduler,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
	}
	if s.interval <= 0 {
		s.interval = reveal.DefaultInterval
	}
	if s.sched == nil {
		s.sched = clock.System{}
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), requestLogger(s.logger, newSalt()), pageViews(s.metrics, s.base))
	s.router = r
	s.routes(http.FS(static))
	return s, nil
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes(static http.FileSystem) {
	r := s.router

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	site := r.Group(s.groupPath())
	site.GET("/", s.handleIndex)
	site.StaticFS("/static", static)
	site.GET("/resume", s.handleResume)
	site.GET("/reveal/:line", s.handleReveal)

	page := site.Group("/s/:session")
	page.GET("/experience", s.handleExperience)
	page.POST("/experience/next", s.handleNavigate("next", (*session.Session).Advance))
	page.POST("/experience/prev", s.handleNavigate("prev", (*session.Session).Retreat))
	page.POST("/section/:name", s.handleSection)

	r.NoRoute(s.handleNotFound)
}

func (s *Server) groupPath() string {
	if s.base == "" {
		return "/"
	}
	return s.base
}

func (s *Server) url(parts ...string) string {
	return s.base + "/" + strings.Join(parts, "/")
}
