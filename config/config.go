package config

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// DevSessionSecret signs session cookies when SESSION_SECRET is not set.
// Good enough for a laptop, never for a deployment.
const DevSessionSecret = "kalma-dev-session-secret"

// Supported values for DB_DRIVER
const (
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
)

// Config holds everything the service reads from the environment
type Config struct {
	Port       string
	EventsFile string
	Database   Database
	Session    Session
	Cache      Cache
	RateLimit  RateLimit
}

// Database selects the SQL driver and where it connects
type Database struct {
	Driver   string
	Path     string // sqlite only
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Session configures the signed session cookie
type Session struct {
	Secret        string
	TTL           time.Duration
	SecureCookies bool
}

// Cache configures the go-utils cache backing session revocation
type Cache struct {
	Type          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// RateLimit bounds login/register attempts per client IP
type RateLimit struct {
	RPS   float64
	Burst int
}

func Default() Config {
	return Config{
		Port:       "8080",
		EventsFile: "./events.json",
		Database: Database{
			Driver: DriverSQLite,
			Path:   "./kalma.db",
			Host:   "localhost",
			Name:   "kalma",
			User:   "root",
		},
		Session: Session{
			Secret: DevSessionSecret,
			TTL:    24 * time.Hour,
		},
		Cache: Cache{
			Type:      "memory",
			RedisAddr: "localhost:6379",
		},
		RateLimit: RateLimit{
			RPS:   5,
			Burst: 10,
		},
	}
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv(Default())
}

// FromEnv overlays environment variables on base. Unset or unparsable
// values keep the base value.
func FromEnv(base Config) Config {
	cfg := base
	cfg.Port = env("PORT", cfg.Port)
	cfg.EventsFile = env("EVENTS_FILE", cfg.EventsFile)

	cfg.Database.Driver = strings.ToLower(env("DB_DRIVER", cfg.Database.Driver))
	cfg.Database.Path = env("DB_PATH", cfg.Database.Path)
	cfg.Database.Host = env("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = env("DB_PORT", cfg.Database.Port)
	cfg.Database.Name = env("DB_NAME", cfg.Database.Name)
	cfg.Database.User = env("DB_USER", cfg.Database.User)
	cfg.Database.Password = env("DB_PASSWORD", cfg.Database.Password)

	cfg.Session.Secret = env("SESSION_SECRET", cfg.Session.Secret)
	if v, ok := getEnvInt("SESSION_TTL_HOURS"); ok && v > 0 {
		cfg.Session.TTL = time.Duration(v) * time.Hour
	}
	if v, ok := getEnvBool("SECURE_COOKIES"); ok {
		cfg.Session.SecureCookies = v
	}

	cfg.Cache.Type = strings.ToLower(env("CACHE_TYPE", cfg.Cache.Type))
	cfg.Cache.RedisAddr = env("REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = env("REDIS_PASSWORD", cfg.Cache.RedisPassword)
	if v, ok := getEnvInt("REDIS_DB"); ok && v >= 0 {
		cfg.Cache.RedisDB = v
	}

	if v, ok := getEnvFloat("AUTH_RATE_RPS"); ok && v > 0 {
		cfg.RateLimit.RPS = v
	}
	if v, ok := getEnvInt("AUTH_RATE_BURST"); ok && v > 0 {
		cfg.RateLimit.Burst = v
	}
	return cfg
}

// DSN returns the data source name for the configured driver.
func (d Database) DSN() string {
	switch d.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(d.Host, d.port())
		mc.DBName = d.Name
		mc.ParseTime = true
		return mc.FormatDSN()
	case DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.User, d.Password),
			Host:     net.JoinHostPort(d.Host, d.port()),
			Path:     "/" + d.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	default:
		return d.Path
	}
}

func (d Database) port() string {
	if d.Port != "" {
		return d.Port
	}
	if d.Driver == DriverPostgres {
		return "5432"
	}
	return "3306"
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvFloat(name string) (float64, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
