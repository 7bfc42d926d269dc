package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Notification engine
	PollInterval  time.Duration // how often to recompute the next occurrence
	TriggerWindow time.Duration // fire when the occurrence is this close
	RetryInterval time.Duration // spacing between re-notifications
	MaxRetries    int           // re-notifications after the initial one

	// Video metadata
	OEmbedEndpoint string        // metadata endpoint base URL
	FetchTimeout   time.Duration // transport timeout for metadata fetches

	// Optional push channel; both empty = in-app reminders only
	FCMCredentialsFile string
	FCMDeviceToken     string

	SeedFile string // optional YAML seed file, empty = seeding disabled

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	// Rate limit on the metadata-resolve endpoint, which fans out to a
	// public API
	ResolveBurst        int
	ResolveRefillPerMin int
}

func Load() *Config {
	// Best effort: a .env file is a dev convenience, not a requirement.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("ROUTINEON_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("ROUTINEON_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("ROUTINEON_LOG_LEVEL", "info"),
		PrettyLog: mustBool("ROUTINEON_PRETTY_LOG", true),

		// Notification engine
		PollInterval:  mustDuration("ROUTINEON_POLL_INTERVAL", 30*time.Second),
		TriggerWindow: mustDuration("ROUTINEON_TRIGGER_WINDOW", time.Minute),
		RetryInterval: mustDuration("ROUTINEON_RETRY_INTERVAL", 5*time.Minute),
		MaxRetries:    getenvInt("ROUTINEON_MAX_RETRIES", 3),

		// Video metadata
		OEmbedEndpoint: getenv("ROUTINEON_OEMBED_ENDPOINT", "https://www.youtube.com/oembed"),
		FetchTimeout:   mustDuration("ROUTINEON_FETCH_TIMEOUT", 5*time.Second),

		// Push channel (optional)
		FCMCredentialsFile: getenv("ROUTINEON_FCM_CREDENTIALS_FILE", ""),
		FCMDeviceToken:     getenv("ROUTINEON_FCM_DEVICE_TOKEN", ""),

		// Seeding (optional)
		SeedFile: getenv("ROUTINEON_SEED_FILE", ""),

		// Redis settings
		RedisAddr:           requireEnv("ROUTINEON_REDIS_ADDR"),
		RedisUser:           getenv("ROUTINEON_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("ROUTINEON_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("ROUTINEON_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("ROUTINEON_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("ROUTINEON_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("ROUTINEON_TRUST_PROXY", false),

		// Rate limiting
		ResolveBurst:        getenvInt("ROUTINEON_RESOLVE_BURST", 5),
		ResolveRefillPerMin: getenvInt("ROUTINEON_RESOLVE_REFILL_PER_MIN", 10),
	}

	if cfg.FCMCredentialsFile != "" && cfg.FCMDeviceToken == "" {
		panic("❌ FATAL: ROUTINEON_FCM_DEVICE_TOKEN is required when ROUTINEON_FCM_CREDENTIALS_FILE is set")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		cfgCopy.FCMDeviceToken = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
