// Package config loads site settings from defaults, an optional YAML file
// and the environment, in that order of precedence (environment wins).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	Site     Site   `yaml:"site"`
	API      API    `yaml:"api"`
	Server   Server `yaml:"server"`
	Admin    Admin  `yaml:"admin"`
	LogLevel string `yaml:"log_level"`
}

// Site is the copy shared by every page's chrome.
type Site struct {
	Name         string `yaml:"name"`
	URL          string `yaml:"url"`
	ContactEmail string `yaml:"contact_email"`
	ContactPhone string `yaml:"contact_phone"`
	Social       Social `yaml:"social"`
}

// Social holds optional profile links; empty links are not shown.
type Social struct {
	Instagram string `yaml:"instagram"`
	Facebook  string `yaml:"facebook"`
	YouTube   string `yaml:"youtube"`
}

// API configures the remote content service.
type API struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// Server configures the web server.
type Server struct {
	Port    string `yaml:"port"`
	DBPath  string `yaml:"db_path"`
	GinMode string `yaml:"gin_mode"`
}

// Admin holds dashboard credentials.
type Admin struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Site: Site{
			Name:         "Magnus the Illusionist",
			URL:          "https://magnusthemagician.com",
			ContactEmail: "contact@magnusthemagician.com",
			ContactPhone: "+1 (555) 000-0000",
		},
		API: API{
			BaseURL: "http://localhost:5000/api/v1",
			Timeout: 5 * time.Second,
		},
		Server: Server{
			Port:   "8080",
			DBPath: "site.db",
		},
		Admin: Admin{
			Username: "admin",
			Password: "admin123",
		},
		LogLevel: "info",
	}
}

// Load returns the configuration from path (optional) and the process
// environment.
func Load(path string) (Config, error) {
	return LoadWith(path, os.Getenv)
}

// LoadWith is Load with a custom environment lookup.
func LoadWith(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	str := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	str(&cfg.Site.Name, "SITE_NAME")
	str(&cfg.Site.URL, "SITE_URL")
	str(&cfg.Site.ContactEmail, "CONTACT_EMAIL")
	str(&cfg.Site.ContactPhone, "CONTACT_PHONE")
	str(&cfg.Site.Social.Instagram, "INSTAGRAM_URL")
	str(&cfg.Site.Social.Facebook, "FACEBOOK_URL")
	str(&cfg.Site.Social.YouTube, "YOUTUBE_URL")
	str(&cfg.API.BaseURL, "API_URL")
	str(&cfg.API.Token, "API_TOKEN")
	str(&cfg.Server.Port, "PORT")
	str(&cfg.Server.DBPath, "DB_PATH")
	str(&cfg.Server.GinMode, "GIN_MODE")
	str(&cfg.Admin.Username, "ADMIN_USERNAME")
	str(&cfg.Admin.Password, "ADMIN_PASSWORD")
	str(&cfg.LogLevel, "LOG_LEVEL")

	if v := getenv("API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}
	return cfg, nil
}

// UsingDefaultAdmin reports whether the admin credentials were left at
// their built-in values.
func (c Config) UsingDefaultAdmin() bool {
	d := Default().Admin
	return c.Admin.Username == d.Username || c.Admin.Password == d.Password
}
