package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds global settings for the Soteria moderation service.
// All settings can be configured via environment variables or programmatically.
type Config struct {
	// === Server ===
	Port        string // HTTP listen port (default: "8000")
	ServiceName string // Reported by /health

	// === Classifier ===
	ModelPath        string // Directory holding the ONNX toxicity model
	ModelName        string // HuggingFace model id used when downloading
	OnnxLibraryPath  string // Explicit ONNX Runtime shared library path
	EnableClassifier bool   // Disable to run heuristic-only (patterns + sentiment)
	InferTimeoutMs   int    // Per-request inference budget in milliseconds

	// === Moderation thresholds (0.0 - 1.0) ===
	// Tune these to balance false positives vs. missed harm
	ToxicThreshold      float64 // Score at or above this = toxic (default: 0.5)
	ActivationThreshold float64 // Minimum category weight to assign a non-safe category

	// === Artifacts ===
	// Optional YAML file carrying extra rules, lexicon overlays, templates
	// and support resources. Malformed content is a fatal startup error.
	ArtifactPath string

	// DisabledRules switches off detection rules by name, so a noisy rule
	// can be silenced without a rebuild. Unknown names are ignored.
	DisabledRules []string

	// === Storage ===
	DatabaseURL string        // Postgres DSN; empty = in-memory history only
	RedisAddr   string        // Redis host:port for the verdict cache; empty = no cache
	CacheTTL    time.Duration // Verdict cache TTL
	HistorySize int           // In-memory history ring capacity
}

// New creates a Config from the environment with sensible defaults.
func New() *Config {
	return &Config{
		Port:        GetEnv("SOTERIA_PORT", "8000"),
		ServiceName: GetEnv("SOTERIA_SERVICE_NAME", "soteria"),

		ModelPath:        GetEnv("SOTERIA_MODEL_PATH", "./models/toxic-bert"),
		ModelName:        GetEnv("SOTERIA_MODEL_NAME", "unitary/toxic-bert"),
		OnnxLibraryPath:  GetEnv("SOTERIA_ONNX_LIB", ""),
		EnableClassifier: GetEnvBool("SOTERIA_ENABLE_CLASSIFIER", true),
		InferTimeoutMs:   clampInt(GetEnvInt("SOTERIA_INFER_TIMEOUT_MS", 2000), 100, 60000),

		ToxicThreshold:      GetEnvFloat("SOTERIA_TOXIC_THRESHOLD", 0.5),
		ActivationThreshold: GetEnvFloat("SOTERIA_ACTIVATION_THRESHOLD", 0.25),

		ArtifactPath:  GetEnv("SOTERIA_ARTIFACTS", ""),
		DisabledRules: GetEnvSlice("SOTERIA_DISABLED_RULES", nil),

		DatabaseURL: GetEnv("DATABASE_URL", ""),
		RedisAddr:   GetEnv("REDIS_ADDR", ""),
		CacheTTL:    time.Duration(GetEnvInt("SOTERIA_CACHE_TTL_SECONDS", 300)) * time.Second,
		HistorySize: clampInt(GetEnvInt("SOTERIA_HISTORY_SIZE", 1000), 10, 100000),
	}
}

// clampInt ensures a value is within bounds
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Helper functions for environment variable parsing
// These are exported for use by other packages

// HasEnv reports whether an environment variable is explicitly set. Callers
// use it to tell a configured value apart from a fallback default.
func HasEnv(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvBool returns the boolean value of an environment variable or a default value.
func GetEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

// GetEnvFloat returns the float64 value of an environment variable or a default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a default value.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

// GetEnvSlice returns a comma-separated list from an environment variable or a default value.
func GetEnvSlice(key string, defaultValue []string) []string {
	if v := os.Getenv(key); v != "" {
		var parts []string
		for _, p := range strings.Split(v, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
