package web

import (
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/garrett-1/portfolio/internal/metrics"
	"github.com/garrett-1/portfolio/internal/reveal"
	"github.com/garrett-1/portfolio/internal/session"
)

// Home page: every load gets its own session.
func (s *Server) handleIndex(c *gin.Context) {
	sess, err := s.sessions.Create()
	if err != nil {
		s.logger.Error("create session", "err", err)
		c.String(http.StatusInternalServerError, "Sorry, something went wrong.")
		return
	}
	c.HTML(http.StatusOK, "index.html", s.page(sess))
}

func (s *Server) handleExperience(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "experience.html", s.experience(sess))
}

// handleNavigate applies a carousel intent and returns the new fragment.
// Moving past either end is a no-op, not an error.
func (s *Server) handleNavigate(direction string, move func(*session.Session) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := s.session(c)
		if !ok {
			return
		}
		moved := move(sess)
		s.metrics.ObserveNavigation(direction, moved)
		c.HTML(http.StatusOK, "experience.html", s.experience(sess))
	}
}

func (s *Server) handleSection(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	if err := sess.SetSection(c.Param("name")); err != nil {
		c.String(http.StatusNotFound, "Unknown section")
		return
	}
	c.HTML(http.StatusOK, "nav.html", s.nav(sess))
}

// handleReveal streams one headline line as Server-Sent Events: a "reveal"
// event per character carrying the visible prefix, then "done". The engine
// is cancelled when the client goes away.
func (s *Server) handleReveal(c *gin.Context) {
	lines := s.content.Profile.Headline
	idx, err := strconv.Atoi(c.Param("line"))
	if err != nil || idx < 0 || idx >= len(lines) {
		c.String(http.StatusNotFound, "Unknown line")
		return
	}
	line := lines[idx]

	events := make(chan reveal.Event, reveal.Units(line.Text)+1)
	engine := reveal.Start(line.Text, line.Delay,
		reveal.WithInterval(s.interval),
		reveal.WithScheduler(s.sched),
		reveal.WithObserver(func(ev reveal.Event) { events <- ev }),
	)
	defer engine.Cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			s.metrics.RevealStreams.WithLabelValues(metrics.OutcomeCancelled).Inc()
			s.logger.Debug("reveal stream cancelled", "line", idx, "revealed", engine.Revealed())
			return
		case ev := <-events:
			text := template.HTMLEscapeString(ev.Text)
			c.SSEvent("reveal", text)
			if ev.Done {
				c.SSEvent("done", text)
				c.Writer.Flush()
				s.metrics.RevealStreams.WithLabelValues(metrics.OutcomeCompleted).Inc()
				return
			}
			c.Writer.Flush()
		}
	}
}

func (s *Server) handleResume(c *gin.Context) {
	if s.resumePath == "" {
		c.String(http.StatusNotFound, "No resume available")
		return
	}
	name := s.content.Contact.ResumeName
	if name == "" {
		name = filepath.Base(s.resumePath)
	}
	c.FileAttachment(s.resumePath, name)
}

// handleNotFound also reports requests that miss the base path, which
// usually means the site is deployed under a different prefix than configured.
func (s *Server) handleNotFound(c *gin.Context) {
	path := c.Request.URL.Path
	if s.base != "" && path != s.base && !strings.HasPrefix(path, s.base+"/") {
		s.logger.Warn("request outside base path", "path", path, "base", s.base)
	}
	c.String(http.StatusNotFound, "404 page not found")
}

// session resolves :session. Expired pages are told to reload, which
// creates a fresh session.
func (s *Server) session(c *gin.Context) (*session.Session, bool) {
	sess, err := s.sessions.Get(c.Param("session"))
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			s.logger.Error("load session", "err", err)
		}
		c.Header("HX-Refresh", "true")
		c.String(http.StatusGone, "This page has expired, reloading.")
		return nil, false
	}
	return sess, true
}
