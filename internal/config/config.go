package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultListenAddr = ":8080"
	defaultDBPath     = "fooddelivery.db"

	envListenAddr     = "FOODDELIVERY_LISTEN_ADDR"
	envDBPath         = "FOODDELIVERY_DB_PATH"
	envLogLevel       = "FOODDELIVERY_LOG_LEVEL"
	envAllowedOrigins = "FOODDELIVERY_ALLOWED_ORIGINS"
	envBcryptCost     = "FOODDELIVERY_BCRYPT_COST"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	ListenAddr     string
	DBPath         string
	LogLevel       slog.Level
	AllowedOrigins []string
	BcryptCost     int
}

// LoadDotEnv loads variables from the given files (".env" when none are
// named) into the environment. Variables already set are left alone and
// missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	cfg := Config{
		ListenAddr:     defaultListenAddr,
		DBPath:         defaultDBPath,
		LogLevel:       slog.LevelInfo,
		AllowedOrigins: []string{"*"},
		BcryptCost:     bcrypt.DefaultCost,
	}

	if v := os.Getenv(envListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(envDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	if v := os.Getenv(envAllowedOrigins); v != "" {
		cfg.AllowedOrigins = parseList(v)
	}
	if v := os.Getenv(envBcryptCost); v != "" {
		cfg.BcryptCost = parseBcryptCost(v)
	}

	return cfg
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// parseList splits a comma-separated value, dropping empty entries.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseBcryptCost falls back to the default cost for values bcrypt rejects.
func parseBcryptCost(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < bcrypt.MinCost || n > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return n
}

// NewLogger creates a structured JSON logger writing to w at the configured level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
