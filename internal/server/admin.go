package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Zachkp/resume/internal/i18n"
	"github.com/Zachkp/resume/internal/logger"
	"github.com/Zachkp/resume/internal/store"
)

const (
	adminCookie  = "admin_token"
	adminSession = 24 * time.Hour
)

// visitorTrackingMiddleware records page views with hashed IPs. Static
// assets, admin pages and clients sending DNT are skipped.
func (s *Server) visitorTrackingMiddleware() gin.HandlerFunc {
	skip := []string{"/static/", "/images/", "/admin", "/favicon", "/privacy", "/metrics", "/healthz", "/api/"}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if s.store == nil || c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		for _, prefix := range skip {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		v := store.Visitor{
			HashedIP:  s.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: time.Now(),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.TrackVisitor(ctx, v); err != nil {
				logger.Warn("error recording visitor", "error", err)
			}
		}()
		c.Next()
	}
}

func (s *Server) issueAdminToken(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(adminSession)),
	})
	return token.SignedString(s.adminSecret)
}

func (s *Server) verifyAdminToken(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.adminSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject != s.adminUsername {
		return nil, errors.New("invalid admin token")
	}
	return claims, nil
}

func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(adminCookie)
		if err == nil {
			if _, err = s.verifyAdminToken(raw); err == nil {
				c.Next()
				return
			}
		}
		if strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
	}
}

func (s *Server) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	return s.adminUsername != "" && userOK && passOK
}

func (s *Server) setupAdminRoutes() {
	r := s.engine

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{"title": "Privacy Policy"})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		ip := s.hashIP(c.ClientIP())
		if !s.limiter.Allow("admin:" + c.ClientIP()) {
			c.HTML(http.StatusTooManyRequests, "admin-login.html", gin.H{"error": "Too many attempts"})
			return
		}
		if !s.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			logger.Warn("failed admin login attempt", "from", ip)
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := s.issueAdminToken(s.adminUsername)
		if err != nil {
			logger.Error("failed to sign admin token", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Login failed"})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, token, int(adminSession.Seconds()), "/admin", "", c.Request.TLS != nil, true)
		logger.Info("admin login successful", "from", ip)
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", c.Request.TLS != nil, true)
		logger.Info("admin logout", "from", s.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			logger.Error("error loading admin stats", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load statistics"})
			return
		}
		skills, err := s.builder.Skills(i18n.English, "")
		if err != nil {
			logger.Error("error computing skills", "error", err)
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats, "skills": skills})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		if s.store == nil {
			c.HTML(http.StatusServiceUnavailable, "admin-error.html", gin.H{"error": "Storage is disabled"})
			return
		}
		visitors, err := s.store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
	})

	admin.GET("/messages", func(c *gin.Context) {
		if s.store == nil {
			c.HTML(http.StatusServiceUnavailable, "admin-error.html", gin.H{"error": "Storage is disabled"})
			return
		}
		messages, err := s.store.ListMessages(c.Request.Context(), 200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load messages"})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{"messages": messages})
	})

	admin.DELETE("/messages/:id", func(c *gin.Context) {
		if s.store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage is disabled"})
			return
		}
		id := c.Param("id")
		err := s.store.DeleteMessage(c.Request.Context(), id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		case err != nil:
			logger.Error("error deleting message", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		default:
			logger.Info("message deleted by admin", "id", id, "from", s.hashIP(c.ClientIP()))
			c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
		}
	})

	admin.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		if s.store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage is disabled"})
			return
		}
		removed, err := s.CleanupVisitors(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": removed})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		logger.Info("admin stats exported", "by", s.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}

func (s *Server) stats(c *gin.Context) (*store.Stats, error) {
	if s.store == nil {
		return &store.Stats{}, nil
	}
	return s.store.Stats(c.Request.Context(), time.Now())
}

// CleanupVisitors drops visitor rows older than the retention window.
func (s *Server) CleanupVisitors(ctx context.Context) (int64, error) {
	if s.store == nil {
		return 0, nil
	}
	removed, err := s.store.CleanupVisitors(ctx, time.Now().Add(-s.retention))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		logger.Info("privacy cleanup removed visitor records", "count", removed, "retention", s.retention)
	}
	return removed, nil
}
