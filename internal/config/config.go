package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fightprog/internal/fflogs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// ErrNoAPIKey is returned when no FFLogs API key could be found in any of the configured places.
var ErrNoAPIKey = errors.New("no FFLogs API key configured: set FFLOGS_API_KEY, FFLOGS_API_KEY_FILE or --fflogs-keyfile")

// AppConfig holds the complete application configuration.
type AppConfig struct {
	FFLogs              fflogs.Config
	APIKeyFile          string
	DefinitionsDir      string
	Concurrency         int
	DataPath            string
	LogDir              string
	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables. The API key is left
// empty; see ResolveAPIKey.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	cfg := &AppConfig{
		FFLogs: fflogs.Config{
			BaseURL:           getEnv("FFLOGS_BASE_URL", fflogs.DefaultBaseURL),
			RequestsPerSecond: getEnvFloat("FFLOGS_REQUESTS_PER_SECOND", fflogs.DefaultRequestsPerSecond),
			Burst:             getEnvInt("FFLOGS_BURST", fflogs.DefaultBurst),
			Timeout:           time.Duration(getEnvInt("FFLOGS_TIMEOUT_SECONDS", int(fflogs.DefaultTimeout/time.Second))) * time.Second,
			CacheTTL:          time.Duration(getEnvInt("FFLOGS_CACHE_TTL_SECONDS", int(fflogs.DefaultCacheTTL/time.Second))) * time.Second,
		},
		APIKeyFile:          getEnv("FFLOGS_API_KEY_FILE", ""),
		DefinitionsDir:      getEnv("PHASE_DEFINITIONS_DIR", "./phaseidentifiers"),
		Concurrency:         getEnvInt("FIGHT_CONCURRENCY", 1),
		DataPath:            dataPath,
		LogDir:              logDir,
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}

	return cfg, nil
}

// ResolveAPIKey fills in the FFLogs API key. A key file given on the command line wins over
// FFLOGS_API_KEY_FILE, which wins over FFLOGS_API_KEY.
func (c *AppConfig) ResolveAPIKey(flagKeyFile string) error {
	for _, path := range []string{flagKeyFile, c.APIKeyFile} {
		if path == "" {
			continue
		}
		key, err := readKeyFile(path)
		if err != nil {
			return err
		}
		log.Debug().Str("path", path).Msg("Loaded FFLogs API key from file")
		c.FFLogs.APIKey = key
		return nil
	}

	if key := strings.TrimSpace(os.Getenv("FFLOGS_API_KEY")); key != "" {
		c.FFLogs.APIKey = key
		return nil
	}
	return ErrNoAPIKey
}

func readKeyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read FFLogs API key file: %w", err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("FFLogs API key file %s is empty", path)
	}
	return key, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		intVal, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil {
			return intVal
		}
		log.Warn().Err(err).Str("key", key).Int("default", fallback).Msg("Ignoring malformed integer setting")
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		floatVal, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err == nil {
			return floatVal
		}
		log.Warn().Err(err).Str("key", key).Float64("default", fallback).Msg("Ignoring malformed number setting")
	}
	return fallback
}
