package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestResolveDefaults(t *testing.T) {
	cfg, err := Resolver{LookupEnv: envMap(nil)}.Resolve()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "market_analyzer.db", cfg.Database.URL)
	require.Equal(t, "8000", cfg.Server.Port)
	require.Equal(t, 20*time.Second, cfg.Scraper.Timeout)
	require.Equal(t, 60*time.Second, cfg.Dashboard.RefreshInterval)
	require.Equal(t, 465, cfg.Alerts.SMTPPort)
}

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, `
server:
  port: "9000"
database:
  driver: mysql
  url: "file-user:pw@tcp(localhost:3306)/prices?parseTime=true"
scraper:
  timeout: 5s
alerts:
  threshold: 15
`)

	// file only
	cfg, err := Resolver{FilePath: path, LookupEnv: envMap(nil)}.Resolve()
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Server.Port)
	require.Equal(t, "mysql", cfg.Database.Driver)
	require.Equal(t, 5*time.Second, cfg.Scraper.Timeout)
	require.Equal(t, 15.0, cfg.Alerts.Threshold)

	// environment beats file
	env := envMap(map[string]string{
		"DB_URL":          "postgresql://postgres:pw@db.example.com:5432/postgres",
		"ALERT_THRESHOLD": "12.5",
	})
	cfg, err = Resolver{FilePath: path, LookupEnv: env}.Resolve()
	require.NoError(t, err)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "postgresql://postgres:pw@db.example.com:5432/postgres", cfg.Database.URL)
	require.Equal(t, 12.5, cfg.Alerts.Threshold)
	require.Equal(t, "9000", cfg.Server.Port)

	// explicit beats environment
	explicit := Config{Database: DatabaseConfig{Driver: "sqlite", URL: "explicit.db"}}
	cfg, err = Resolver{Explicit: explicit, FilePath: path, LookupEnv: env}.Resolve()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "explicit.db", cfg.Database.URL)
}

func TestResolveMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Resolver{FilePath: filepath.Join(t.TempDir(), "nope.yaml"), LookupEnv: envMap(nil)}.Resolve()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestReadConfigFileLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "server:\n  port: \"8000\"\ndatabase:\n  url: base.db\n")
	writeFile(t, filepath.Join(dir, "config.local.yaml"), "database:\n  url: local.db\n")

	cfg, err := ReadConfigFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, "8000", cfg.Server.Port)
	require.Equal(t, "local.db", cfg.Database.URL)
}

func TestReadConfigFileJSON5(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	writeFile(t, path, `{
  // comments are allowed
  server: {port: "7000"},
  database: {driver: "sqlite", url: "json5.db"},
}`)

	cfg, err := ReadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, "7000", cfg.Server.Port)
	require.Equal(t, "json5.db", cfg.Database.URL)
}

func TestInvalidEnvValues(t *testing.T) {
	_, err := Resolver{LookupEnv: envMap(map[string]string{"SMTP_PORT": "abc"})}.Resolve()
	require.Error(t, err)

	_, err = Resolver{LookupEnv: envMap(map[string]string{"SCRAPE_TIMEOUT": "soon"})}.Resolve()
	require.Error(t, err)
}

func TestDriverFromURL(t *testing.T) {
	require.Equal(t, "postgres", DriverFromURL("postgres://u:p@h/db"))
	require.Equal(t, "postgres", DriverFromURL("postgresql://u:p@h/db"))
	require.Equal(t, "mysql", DriverFromURL("u:p@tcp(localhost:3306)/db"))
	require.Equal(t, "sqlite", DriverFromURL("market_analyzer.db"))
}

func TestResolveInfersDriverForExplicitURL(t *testing.T) {
	cfg, err := Resolver{
		Explicit:  Config{Database: DatabaseConfig{URL: "postgres://user:pw@db.example.com:5432/prices"}},
		LookupEnv: envMap(nil),
	}.Resolve()
	require.NoError(t, err)
	require.Equal(t, "postgres", cfg.Database.Driver)
}
