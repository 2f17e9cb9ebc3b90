// config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port" json:"port"`
}

// DatabaseConfig identifies the price store. Driver is one of "sqlite", "mysql" or "postgres".
// URL is the driver DSN (a file path for sqlite).
type DatabaseConfig struct {
	Driver string `yaml:"driver" json:"driver"`
	URL    string `yaml:"url" json:"url"`
}

type ScraperConfig struct {
	URL        string        `yaml:"url" json:"url"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent"`
	TimeoutStr string        `yaml:"timeout" json:"timeout"`
	Timeout    time.Duration `yaml:"-" json:"-"` // Parsed duration
}

type AlertsConfig struct {
	Threshold float64 `yaml:"threshold" json:"threshold"` // Alert when price < threshold; <= 0 disables
	SMTPHost  string  `yaml:"smtp_host" json:"smtp_host"`
	SMTPPort  int     `yaml:"smtp_port" json:"smtp_port"`
	Sender    string  `yaml:"sender" json:"sender"`
	Password  string  `yaml:"password" json:"password"`
	Receiver  string  `yaml:"receiver" json:"receiver"`
}

type DashboardConfig struct {
	RefreshIntervalStr string        `yaml:"refresh_interval" json:"refresh_interval"`
	RefreshInterval    time.Duration `yaml:"-" json:"-"` // Parsed duration
}

type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server"`
	Database  DatabaseConfig  `yaml:"database" json:"database"`
	Scraper   ScraperConfig   `yaml:"scraper" json:"scraper"`
	Alerts    AlertsConfig    `yaml:"alerts" json:"alerts"`
	Dashboard DashboardConfig `yaml:"dashboard" json:"dashboard"`
}

// Defaults returns the configuration used when no layer sets a value.
func Defaults() Config {
	return Config{
		Server:   ServerConfig{Port: "8000"},
		Database: DatabaseConfig{Driver: "sqlite", URL: "market_analyzer.db"},
		Scraper: ScraperConfig{
			URL:        "http://books.toscrape.com/",
			UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			TimeoutStr: "20s",
		},
		Alerts: AlertsConfig{
			SMTPHost: "smtp.gmail.com",
			SMTPPort: 465,
		},
		Dashboard: DashboardConfig{RefreshIntervalStr: "60s"},
	}
}

// Resolver is the one place configuration is resolved. Layers, highest priority first:
//  1. Explicit (command line flags)
//  2. Environment (DB_URL, DB_DRIVER, PORT, EMAIL_*, SMTP_*, ALERT_THRESHOLD, SCRAPE_*)
//  3. Local file (FilePath, then <name>.local.<ext> next to it)
//  4. Defaults
//
// Zero values never override a lower layer.
type Resolver struct {
	Explicit Config
	FilePath string
	// EnvFile is loaded into the process environment first when present. Existing
	// variables win over the file.
	EnvFile string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Resolve merges every layer and parses durations. Call it once at startup and pass
// the result to the components that need it.
func (r Resolver) Resolve() (Config, error) {
	if r.EnvFile != "" {
		if err := godotenv.Load(r.EnvFile); err != nil && !os.IsNotExist(err) {
			log.Printf("WARN Config: could not load env file %s: %v", r.EnvFile, err)
		}
	}

	cfg := Defaults()

	if r.FilePath != "" {
		fileCfg, err := ReadConfigFile(r.FilePath)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
		if err == nil {
			inferDriver(&fileCfg.Database)
			if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
				return Config{}, fmt.Errorf("failed to merge config file %s: %w", r.FilePath, err)
			}
		}
	}

	lookup := r.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	envCfg, err := FromEnv(lookup)
	if err != nil {
		return Config{}, err
	}
	if err := mergo.Merge(&cfg, envCfg, mergo.WithOverride); err != nil {
		return Config{}, fmt.Errorf("failed to merge environment config: %w", err)
	}

	explicit := r.Explicit
	inferDriver(&explicit.Database)
	if err := mergo.Merge(&cfg, explicit, mergo.WithOverride); err != nil {
		return Config{}, fmt.Errorf("failed to merge explicit config: %w", err)
	}

	if err := cfg.parseDurations(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) parseDurations() error {
	var err error
	if c.Scraper.TimeoutStr != "" {
		c.Scraper.Timeout, err = time.ParseDuration(c.Scraper.TimeoutStr)
		if err != nil {
			return fmt.Errorf("failed to parse scraper timeout: %w", err)
		}
	} else {
		c.Scraper.Timeout = 20 * time.Second // Default
	}

	if c.Dashboard.RefreshIntervalStr != "" {
		c.Dashboard.RefreshInterval, err = time.ParseDuration(c.Dashboard.RefreshIntervalStr)
		if err != nil {
			return fmt.Errorf("failed to parse dashboard refresh interval: %w", err)
		}
	} else {
		c.Dashboard.RefreshInterval = 60 * time.Second // Default
	}
	return nil
}

// FromEnv builds the environment layer.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg.Database.URL = get("DB_URL")
	cfg.Database.Driver = get("DB_DRIVER")
	inferDriver(&cfg.Database)
	cfg.Server.Port = get("PORT")
	cfg.Scraper.URL = get("SCRAPE_URL")
	cfg.Scraper.TimeoutStr = get("SCRAPE_TIMEOUT")
	cfg.Alerts.SMTPHost = get("SMTP_HOST")
	cfg.Alerts.Sender = get("EMAIL_SENDER")
	cfg.Alerts.Password = get("EMAIL_PASSWORD")
	cfg.Alerts.Receiver = get("EMAIL_RECEIVER")
	cfg.Dashboard.RefreshIntervalStr = get("DASHBOARD_REFRESH")

	if v := get("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		cfg.Alerts.SMTPPort = port
	}
	if v := get("ALERT_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ALERT_THRESHOLD %q: %w", v, err)
		}
		cfg.Alerts.Threshold = threshold
	}
	return cfg, nil
}

// inferDriver fills in the driver of a layer that sets a URL without one.
func inferDriver(db *DatabaseConfig) {
	if db.Driver == "" && db.URL != "" {
		db.Driver = DriverFromURL(db.URL)
	}
}

// DriverFromURL guesses the driver from a connection string.
// postgres:// URLs (Supabase and friends) map to postgres, user:pass@tcp(...) to mysql,
// anything else is treated as a sqlite file path.
func DriverFromURL(url string) string {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(url, "mysql://"), strings.Contains(url, "@tcp("):
		return "mysql"
	default:
		return "sqlite"
	}
}

func splitExt(f string) (string, string) {
	ext := filepath.Ext(f)
	return strings.TrimSuffix(f, ext), strings.TrimPrefix(ext, ".")
}

// ReadConfigFile reads a yaml (or json5) config file and merges <name>.local.<ext>
// over it when present. Returns os.ErrNotExist when neither file exists.
func ReadConfigFile(name string) (Config, error) {
	var out Config
	allNotFound := true

	prefix, ext := splitExt(name)

	base, err := readOne(name, ext)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if err == nil {
		out = base
		allNotFound = false
	}

	localPath := fmt.Sprintf("%s.local.%s", prefix, ext)
	local, err := readOne(localPath, ext)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if err == nil {
		if err := mergo.Merge(&out, local, mergo.WithOverride); err != nil {
			return out, fmt.Errorf("failed to merge %s: %w", localPath, err)
		}
		log.Printf("Config: merged local overrides from %s", localPath)
		allNotFound = false
	}

	if allNotFound {
		return out, os.ErrNotExist
	}
	return out, nil
}

func readOne(path, ext string) (Config, error) {
	var out Config
	file, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}

	switch ext {
	case "json5", "json":
		err = json5.Unmarshal(file, &out)
	default:
		err = yaml.Unmarshal(file, &out)
	}
	if err != nil {
		return out, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}
	return out, nil
}
