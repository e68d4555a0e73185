package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses interval settings
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The types reflect how the values are used
// in the application: strings for identifiers and secrets, durations for
// intervals.
type Config struct {
	Env              string        // application environment (local/staging/production)
	Port             string        // HTTP port to listen on
	DBUser           string        // database username
	DBPass           string        // database password (optional)
	DBHost           string        // database host address
	DBPort           string        // database port number
	DBName           string        // database name
	JWTSecret        string        // secret used to sign JWTs
	AccessTTLMin     int           // access token time-to-live in minutes
	OTPSecret        string        // secret the OTP sealing key is derived from
	OTPTTL           time.Duration // how long a sealed OTP stays valid
	StatsBaseURL     string        // PlayerNation API base URL for the selected env
	StatsAPIKey      string        // PlayerNation bearer credential
	StatsPollEvery   time.Duration // interval between stats poll sweeps
	LeaderboardTTL   time.Duration // leaderboard cache lifetime
	AMQPURL          string        // RabbitMQ connection string (optional)
}

// Load reads configuration values from environment variables and returns
// a Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. The PlayerNation
// base URL is resolved per environment: STATS_BASE_URL wins when set,
// otherwise STATS_BASE_URL_<ENV> is consulted.
func Load() Config {
	env := must("APP_ENV") // local / staging / production
	return Config{
		Env:            env,
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		OTPSecret:      must("OTP_SECRET"),
		OTPTTL:         envDur("OTP_TTL", 5*time.Minute),
		StatsBaseURL:   statsBaseURL(env),
		StatsAPIKey:    os.Getenv("STATS_API_KEY"),
		StatsPollEvery: envDur("STATS_POLL_INTERVAL", time.Minute),
		LeaderboardTTL: envDur("LEADERBOARD_CACHE_TTL", 5*time.Minute),
		AMQPURL:        os.Getenv("RABBITMQ_URL"),
	}
}

// statsBaseURL resolves the provider base URL for the given environment
// name. There is no runtime switching: the value is fixed at startup.
func statsBaseURL(env string) string {
	if v := os.Getenv("STATS_BASE_URL"); v != "" {
		return v
	}
	switch env {
	case "production":
		return getenv("STATS_BASE_URL_PRODUCTION", "https://api.playernation.example")
	case "staging":
		return getenv("STATS_BASE_URL_STAGING", "https://staging-api.playernation.example")
	default:
		return getenv("STATS_BASE_URL_LOCAL", "http://localhost:9090")
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	return def
}
