package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/magnus-site/internal/config"
	"github.com/Zachkp/magnus-site/internal/content"
	"github.com/Zachkp/magnus-site/internal/logging"
	"github.com/Zachkp/magnus-site/internal/site"
	"github.com/Zachkp/magnus-site/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web site",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	st, err := store.Open(cfg.Server.DBPath, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	// Privacy cleanup runs once per start.
	go func() {
		if _, err := st.CleanupOldVisitors(context.Background()); err != nil {
			logger.Warn("privacy cleanup failed", zap.Error(err))
		}
	}()

	loader := site.NewLoader(site.SourcesFromClient(newClient(cfg, logger)),
		site.WithLogger(logger),
		site.WithFetchTimeout(cfg.API.Timeout),
	)
	srv, err := newServer(cfg, loader, st, logger)
	if err != nil {
		return err
	}

	if cfg.UsingDefaultAdmin() {
		logger.Warn("admin credentials are the built-in defaults; set ADMIN_USERNAME and ADMIN_PASSWORD")
	}
	logger.Info("serving site",
		zap.String("port", cfg.Server.Port),
		zap.String("api", cfg.API.BaseURL),
		zap.String("db", cfg.Server.DBPath),
	)
	return newRouter(srv).Run(":" + cfg.Server.Port)
}

// server holds what the page handlers share.
type server struct {
	cfg        config.Config
	loader     *site.Loader
	store      *store.Store
	logger     *zap.Logger
	templates  *template.Template
	adminToken string
}

func newServer(c config.Config, loader *site.Loader, st *store.Store, logger *zap.Logger) (*server, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	token, err := generateAdminToken()
	if err != nil {
		return nil, err
	}
	return &server{
		cfg:        c,
		loader:     loader,
		store:      st,
		logger:     logger,
		templates:  tmpl,
		adminToken: token,
	}, nil
}

// view merges the chrome every page template needs into data.
func (s *server) view(title, active string, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["site"] = s.cfg.Site
	data["title"] = title
	data["active"] = active
	data["nav"] = Nav
	data["year"] = time.Now().Year()
	return data
}

func (s *server) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.html", s.view("Page not found", "", gin.H{"lead": NotFoundLead}))
}

func newRouter(s *server) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(s.templates)
	r.Use(metricsMiddleware())
	r.Use(visitorTrackingMiddleware(s))

	r.StaticFS("/static", staticFiles())

	r.GET("/", func(c *gin.Context) {
		home := s.loader.Home(c.Request.Context())
		c.HTML(http.StatusOK, "home.html", s.view("", "home", gin.H{
			"heroLabel":    content.HeroLabel,
			"heroTitle":    content.HeroTitle,
			"heroSubtitle": content.HeroSubtitle,
			"stats":        content.HomeStats,
			"services":     home.Services,
			"blogs":        home.Blogs,
			"banner":       home.Banner,
			"showreel":     content.Showreel,
			"testimonials": content.Testimonials,
			"cta":          content.BookingCTA,
		}))
	})

	r.GET("/about", func(c *gin.Context) {
		c.HTML(http.StatusOK, "about.html", s.view("About", "about", gin.H{
			"aboutMe":    content.AboutMe,
			"philosophy": content.AboutPhilosophy,
			"milestones": content.Milestones,
			"beliefs":    content.Beliefs,
			"banner":     s.loader.Banner(c.Request.Context(), "about"),
		}))
	})

	r.GET("/services", func(c *gin.Context) {
		page := s.loader.Services(c.Request.Context(), "")
		c.HTML(http.StatusOK, "services.html", s.view("Services", "services", gin.H{
			"services": page.Services,
			"banner":   page.Banner,
			"lead":     ServicesLead,
			"process":  content.BookingProcess,
			"cta":      content.BookingCTA,
		}))
	})

	r.GET("/services/:identifier", func(c *gin.Context) {
		page := s.loader.Services(c.Request.Context(), c.Param("identifier"))
		if page.Selected == nil {
			s.notFound(c)
			return
		}
		var related []content.Service
		for _, svc := range page.Services {
			if svc.ID != page.Selected.ID && len(related) < 3 {
				related = append(related, svc)
			}
		}
		c.HTML(http.StatusOK, "service.html", s.view(page.Selected.Name, "services", gin.H{
			"service": page.Selected,
			"related": related,
		}))
	})

	r.GET("/blog", func(c *gin.Context) {
		page := s.loader.Blog(c.Request.Context(), "", c.Query("q"), c.Query("category"))
		c.HTML(http.StatusOK, "blog.html", s.view("Blog", "blog", gin.H{
			"page": page,
		}))
	})

	r.GET("/blog/:identifier", func(c *gin.Context) {
		page := s.loader.Blog(c.Request.Context(), c.Param("identifier"), "", "")
		if page.Selected == nil {
			s.notFound(c)
			return
		}
		post := page.Selected
		source := post.Content
		if source == "" {
			source = post.Excerpt
		}
		body, err := content.RenderHTML(source)
		if err != nil {
			s.logger.Warn("render post", zap.String("post", post.ID), zap.Error(err))
			body = template.HTML(template.HTMLEscapeString(post.Excerpt))
		}
		c.HTML(http.StatusOK, "post.html", s.view(post.Title, "blog", gin.H{
			"post": post,
			"body": body,
		}))
	})

	r.GET("/contact", func(c *gin.Context) {
		s.renderContact(c, http.StatusOK, gin.H{"form": content.ContactRequest{Service: c.Query("service")}})
	})

	r.POST("/contact", func(c *gin.Context) {
		var form content.ContactRequest
		if err := c.ShouldBind(&form); err != nil {
			s.logger.Debug("bind contact form", zap.Error(err))
		}

		req, err := s.loader.SubmitContact(c.Request.Context(), form)
		data := gin.H{"form": req}
		status := http.StatusOK

		var fields content.FieldErrors
		switch {
		case errors.As(err, &fields):
			data["fieldErrors"] = fields
			status = http.StatusUnprocessableEntity
			s.recordContact(c, store.ContactInvalid)
		case err != nil:
			data["error"] = err.Error()
			s.recordContact(c, store.ContactFailed)
		default:
			data["success"] = true
			data["form"] = content.ContactRequest{}
			s.recordContact(c, store.ContactSent)
		}
		s.renderContact(c, status, data)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAdminRoutes(r, s)

	r.NoRoute(s.notFound)
	return r
}

// renderContact renders the contact page, or only the form when the
// request comes from htmx. htmx does not swap 4xx responses, so fragment
// responses are always 200.
func (s *server) renderContact(c *gin.Context, status int, data gin.H) {
	if _, ok := data["fieldErrors"]; !ok {
		data["fieldErrors"] = content.FieldErrors{}
	}
	data["services"] = s.loader.Services(c.Request.Context(), "").Services

	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "contact-form", data)
		return
	}
	data["lead"] = ContactLead
	c.HTML(status, "contact.html", s.view("Contact", "contact", data))
}

func (s *server) recordContact(c *gin.Context, status store.ContactStatus) {
	contactOutcomes.WithLabelValues(string(status)).Inc()
	if err := s.store.RecordContact(c.Request.Context(), status); err != nil {
		s.logger.Warn("record contact outcome", zap.Error(err))
	}
}
