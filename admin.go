// admin.go - privacy-conscious analytics and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/magnus-site/internal/store"
)

const (
	adminCookie       = "admin_token"
	adminCookieMaxAge = 8 * 60 * 60
	visitorPageLimit  = 200
)

func generateAdminToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate admin token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func equalSecret(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Middleware to check admin authentication
func adminAuthMiddleware(s *server) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || !equalSecret(token, s.adminToken) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Privacy-conscious visitor tracking middleware. Only the salted IP hash
// is stored; visitors sending Do Not Track are skipped entirely.
func visitorTrackingMiddleware(s *server) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !trackable(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		v := store.Visit{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent"), Path: path}
		go func() {
			if err := s.store.RecordVisit(context.Background(), v); err != nil {
				s.logger.Warn("record visit", zap.Error(err))
			}
		}()
		c.Next()
	}
}

func trackable(path string) bool {
	for _, prefix := range []string{"/static/", "/admin", "/favicon", "/privacy", "/healthz", "/metrics"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

func setupAdminRoutes(r *gin.Engine, s *server) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", s.view("Privacy", "", nil))
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", s.view("Admin", "", nil))
	})

	r.POST("/admin/login", func(c *gin.Context) {
		user := c.PostForm("username")
		pass := c.PostForm("password")
		// Evaluate both comparisons so timing does not reveal which failed.
		userOK := equalSecret(user, s.cfg.Admin.Username)
		passOK := equalSecret(pass, s.cfg.Admin.Password)
		if !userOK || !passOK {
			s.logger.Warn("failed admin login", zap.String("visitor", s.store.HashIP(c.ClientIP())))
			c.HTML(http.StatusUnauthorized, "admin-login.html", s.view("Admin", "", gin.H{
				"error": "Invalid username or password",
			}))
			return
		}
		secure := gin.Mode() == gin.ReleaseMode
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, s.adminToken, adminCookieMaxAge, "/admin", "", secure, true)
		s.logger.Info("admin logged in", zap.String("visitor", s.store.HashIP(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.POST("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(adminAuthMiddleware(s))

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			s.logger.Error("load admin stats", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", s.view("Admin", "", gin.H{
				"error": "Failed to load statistics",
			}))
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", s.view("Dashboard", "", gin.H{
			"stats":        stats,
			"defaultAdmin": s.cfg.UsingDefaultAdmin(),
		}))
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.store.RecentVisitors(c.Request.Context(), visitorPageLimit)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", s.view("Admin", "", gin.H{
				"error": "Failed to load visitors",
			}))
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", s.view("Visitors", "", gin.H{
			"visitors": visitors,
		}))
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.store.CleanupOldVisitors(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.logger.Info("admin stats exported", zap.String("visitor", s.store.HashIP(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})
}
