package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const dotenvFilename = ".env"

type Config struct {
	HTTPPort           string
	Env                string
	CORSAllowedOrigins []string
	DB                 DBConfig
	Auth               AuthConfig
	Stats              StatsConfig
	Cache              CacheConfig
	AMQP               AMQPConfig
	Log                LogConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type AuthConfig struct {
	URL           string
	APIKey        string
	Timeout       time.Duration
	SkipAuth      bool
	MockUserID    string
	MockUserEmail string
	MockUserName  string
}

type StatsConfig struct {
	MaxRangeDays int
}

type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env (nearest one walking up from the working directory, never
// overriding variables already set), then resolves every key from the
// environment, the optional config file and the defaults, in that order.
func Load(configFile string) (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://localhost:5173")

	v.SetDefault("db.dsn", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "budgeteer")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("db.auto_migrate", false)

	v.SetDefault("auth.url", "")
	v.SetDefault("auth.api_key", "")
	v.SetDefault("auth.timeout", 5*time.Second)
	v.SetDefault("auth.skip", false)
	v.SetDefault("auth.mock_user_id", "00000000-0000-0000-0000-000000000001")
	v.SetDefault("auth.mock_user_email", "")
	v.SetDefault("auth.mock_user_name", "")

	v.SetDefault("stats.max_range_days", 90)

	v.SetDefault("cache.ttl", time.Minute)
	v.SetDefault("cache.max_entries", 1024)

	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "budgeteer.events")

	v.SetDefault("log.level", "")
	v.SetDefault("log.format", "json")
}

func fromViper(v *viper.Viper) Config {
	return Config{
		HTTPPort:           v.GetString("http.port"),
		Env:                v.GetString("env"),
		CORSAllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
		DB: DBConfig{
			DSN:             v.GetString("db.dsn"),
			Host:            v.GetString("db.host"),
			Port:            v.GetString("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Name:            v.GetString("db.name"),
			SSLMode:         v.GetString("db.sslmode"),
			TimeZone:        v.GetString("db.timezone"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
			AutoMigrate:     v.GetBool("db.auto_migrate"),
		},
		Auth: AuthConfig{
			URL:           v.GetString("auth.url"),
			APIKey:        v.GetString("auth.api_key"),
			Timeout:       v.GetDuration("auth.timeout"),
			SkipAuth:      v.GetBool("auth.skip"),
			MockUserID:    v.GetString("auth.mock_user_id"),
			MockUserEmail: v.GetString("auth.mock_user_email"),
			MockUserName:  v.GetString("auth.mock_user_name"),
		},
		Stats: StatsConfig{
			MaxRangeDays: v.GetInt("stats.max_range_days"),
		},
		Cache: CacheConfig{
			TTL:        v.GetDuration("cache.ttl"),
			MaxEntries: v.GetInt("cache.max_entries"),
		},
		AMQP: AMQPConfig{
			URL:      v.GetString("amqp.url"),
			Exchange: v.GetString("amqp.exchange"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}

// URL renders the connection as a postgres:// URL for tools that do not
// accept keyword/value DSNs.
func (c DBConfig) URL() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func loadDotEnv() error {
	path, err := findDotEnv(dotenvFilename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func findDotEnv(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fs.ErrNotExist
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
