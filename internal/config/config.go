package config

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Memory backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	// Snapshot memory
	MemoryBackend string
	MemoryPath    string

	// Exports
	ExportDir string

	// Logging
	LogLevel string
	LogFile  string

	// Metrics textfile, written on exit when set
	MetricsFile string

	// Concurrent decodes in batch analysis
	Workers int
}

// Load reads BRIGID_* settings from the environment, after loading a .env
// file from the working directory if one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		MemoryBackend: getEnv("BRIGID_MEMORY_BACKEND", BackendFile),
		MemoryPath:    getEnv("BRIGID_MEMORY_PATH", defaultDataDir()),
		ExportDir:     getEnv("BRIGID_EXPORT_DIR", "."),
		LogLevel:      getEnv("BRIGID_LOG_LEVEL", "info"),
		LogFile:       getEnv("BRIGID_LOG_FILE", ""),
		MetricsFile:   getEnv("BRIGID_METRICS_FILE", ""),
		Workers:       getEnvInt("BRIGID_WORKERS", runtime.GOMAXPROCS(0)),
	}
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".brigid"
	}
	return filepath.Join(dir, "brigid")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil || intValue < 1 {
		log.Printf("Warning: invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return intValue
}
