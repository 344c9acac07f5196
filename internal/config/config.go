package config

import (
	"os"
	"strings"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/pkg/errors"
)

const envPrefix = "VARIANTCHESS_"

// Config holds the server settings. Load fills it from the environment and
// cmd/server lets flags override individual fields.
type Config struct {
	Addr           string
	AllowedOrigins string
	LogLevel       string
	// DataDir is where results are stored; empty keeps them in memory.
	DataDir string
	Layout  string
}

func Default() Config {
	return Config{
		Addr:           ":3000",
		AllowedOrigins: "http://localhost:5173",
		LogLevel:       "info",
		Layout:         "standard",
	}
}

func Load() (Config, error) {
	cfg := Default()
	cfg.Addr = lookup("ADDR", cfg.Addr)
	cfg.AllowedOrigins = lookup("ALLOWED_ORIGINS", cfg.AllowedOrigins)
	cfg.LogLevel = lookup("LOG_LEVEL", cfg.LogLevel)
	cfg.DataDir = lookup("DATA_DIR", cfg.DataDir)
	cfg.Layout = lookup("LAYOUT", cfg.Layout)
	return cfg, cfg.Validate()
}

func lookup(name, fallback string) string {
	if value, ok := os.LookupEnv(envPrefix + name); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("listen address is empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := model.LayoutByName(c.Layout); err != nil {
		return errors.Wrap(err, "default layout")
	}
	return nil
}

// Origins splits AllowedOrigins into its entries.
func (c Config) Origins() []string {
	origins := []string{}
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, errors.Errorf("unknown log level %q", level)
}
