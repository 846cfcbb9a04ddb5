// Package server serves the résumé site and its admin area with gin.
package server

import (
	"crypto/rand"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/resume/internal/contact"
	"github.com/Zachkp/resume/internal/i18n"
	"github.com/Zachkp/resume/internal/logger"
	"github.com/Zachkp/resume/internal/metrics"
	"github.com/Zachkp/resume/internal/resume"
	"github.com/Zachkp/resume/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

type Options struct {
	Builder *resume.Builder
	Store   *store.Store
	Mailer  contact.Mailer
	Metrics *metrics.Metrics
	Limiter *RateLimiter

	AdminUsername string
	AdminPassword string
	// AdminSecret signs admin session tokens. Empty means a random secret,
	// which logs every admin out on restart.
	AdminSecret string

	// VisitorRetention bounds how long visitor rows are kept. Zero means
	// 12 months.
	VisitorRetention time.Duration

	// StaticDir and ImagesDir are served as-is when set.
	StaticDir string
	ImagesDir string
}

type Server struct {
	engine  *gin.Engine
	builder *resume.Builder
	store   *store.Store
	mailer  contact.Mailer
	metrics *metrics.Metrics
	limiter *RateLimiter

	adminUsername string
	adminPassword string
	adminSecret   []byte
	hashingSalt   string
	retention     time.Duration
}

func New(opts Options) (*Server, error) {
	if opts.Builder == nil {
		return nil, errors.New("server: resume builder is required")
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Limiter == nil {
		opts.Limiter = NewRateLimiter(0.05, 3)
	}

	if opts.VisitorRetention <= 0 {
		opts.VisitorRetention = 365 * 24 * time.Hour
	}

	secret := []byte(opts.AdminSecret)
	if len(secret) == 0 {
		secret = []byte(randomToken())
	}

	s := &Server{
		engine:        gin.Default(),
		builder:       opts.Builder,
		store:         opts.Store,
		mailer:        opts.Mailer,
		metrics:       opts.Metrics,
		limiter:       opts.Limiter,
		adminUsername: opts.AdminUsername,
		adminPassword: opts.AdminPassword,
		adminSecret:   secret,
		hashingSalt:   randomToken(),
		retention:     opts.VisitorRetention,
	}

	tmpl, err := parseTemplates(templateFS)
	if err != nil {
		return nil, err
	}
	s.engine.SetHTMLTemplate(tmpl)

	if opts.StaticDir != "" {
		s.engine.Static("/static", opts.StaticDir)
	}
	if opts.ImagesDir != "" {
		s.engine.Static("/images", opts.ImagesDir)
	}

	s.setupRoutes()
	return s, nil
}

func parseTemplates(fsys fs.FS) (*template.Template, error) {
	funcs := template.FuncMap{
		"t": func(table map[string]string, key string) string {
			if v, ok := table[key]; ok {
				return v
			}
			return key
		},
		"lower": strings.ToLower,
		"query": url.QueryEscape,
	}
	return template.New("").Funcs(funcs).ParseFS(fsys, "templates/*.html")
}

func (s *Server) setupRoutes() {
	r := s.engine
	r.Use(s.metrics.Middleware())
	r.Use(s.visitorTrackingMiddleware())

	r.GET("/", s.handleRoot)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	for _, l := range i18n.Supported() {
		g := r.Group("/" + string(l))
		g.GET("", s.localized(l, s.handleIndex))
		g.GET("/work-content", s.localized(l, s.handleWork))
		g.GET("/education-content", s.localized(l, s.handleEducation))
		g.GET("/skills", s.localized(l, s.handleSkills))
		g.GET("/blog-content", s.localized(l, s.handleBlog))
		g.GET("/contact-form", s.localized(l, s.handleContactForm))
	}

	r.GET("/contact-form", func(c *gin.Context) {
		s.handleContactForm(c, s.requestLocale(c))
	})
	r.POST("/contact", s.handleContact)

	api := r.Group("/api")
	{
		api.GET("/experience", s.handleAPIExperience)
		api.GET("/skills", s.handleAPISkills)
	}

	s.setupAdminRoutes()
}

// Handler exposes the engine for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	logger.Info("server starting", "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) localized(l i18n.Locale, h func(*gin.Context, i18n.Locale)) gin.HandlerFunc {
	return func(c *gin.Context) {
		h(c, l)
	}
}

// requestLocale reads ?lang= (or the lang form field), falling back to
// Accept-Language.
func (s *Server) requestLocale(c *gin.Context) i18n.Locale {
	for _, v := range []string{c.Query("lang"), c.PostForm("lang")} {
		if l, ok := i18n.Parse(v); ok {
			return l
		}
	}
	return i18n.Negotiate(c.GetHeader("Accept-Language"))
}

func (s *Server) renderError(c *gin.Context, l i18n.Locale, status int, err error) {
	logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	c.HTML(status, "error.html", gin.H{
		"lang": l,
		"t":    i18n.Table(l),
	})
}

func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("server: failed to read random bytes: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// hashIP keeps visitor rows linkable per address without storing it.
func (s *Server) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.hashingSalt))
	return hex.EncodeToString(sum[:])[:16]
}
