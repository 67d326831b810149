package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"lighthouse.app/pkg/errors"
	"lighthouse.app/pkg/validation"
)

const (
	maxRedisDB    = 15
	maxPortNumber = 65535
)

// Config represents the client configuration structure
type Config struct {
	Server     ServerConfig     `split_words:"true"`
	Storage    StorageConfig    `split_words:"true"`
	WeatherKit WeatherKitConfig `split_words:"true"`
	Backend    BackendConfig    `split_words:"true"`
	Explore    ExploreConfig    `split_words:"true"`
	Logging    LoggingConfig    `split_words:"true"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"127.0.0.1"`
	Port int    `envconfig:"SERVER_PORT" default:"8080"`
}

// Addr returns the listen address of the screen server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageType selects the durable store the session is written to
type StorageType int

const (
	StorageTypeUnknown StorageType = iota
	StorageTypeFile
	StorageTypeDatabase
	StorageTypeRedis
	StorageTypeMemory
)

// String returns the string representation of storage type
func (s StorageType) String() string {
	switch s {
	case StorageTypeFile:
		return "file"
	case StorageTypeDatabase:
		return "database"
	case StorageTypeRedis:
		return "redis"
	case StorageTypeMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// IsValid checks if the storage type is valid
func (s StorageType) IsValid() bool {
	return s == StorageTypeFile || s == StorageTypeDatabase || s == StorageTypeRedis || s == StorageTypeMemory
}

// StorageTypeFromString converts string to StorageType enum
func StorageTypeFromString(s string) StorageType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return StorageTypeFile
	case "database":
		return StorageTypeDatabase
	case "redis":
		return StorageTypeRedis
	case "memory":
		return StorageTypeMemory
	default:
		return StorageTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (s *StorageType) UnmarshalText(text []byte) error {
	*s = StorageTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (s StorageType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type StorageConfig struct {
	Type      StorageType    `envconfig:"STORAGE_TYPE" default:"file"`
	Dir       string         `envconfig:"STORAGE_DIR" default:".lighthouse"`
	KeyPrefix string         `envconfig:"STORAGE_KEY_PREFIX" default:"lighthouse:"`
	Database  DatabaseConfig `split_words:"true"`
	Redis     RedisConfig    `split_words:"true"`
}

type DatabaseConfig struct {
	Driver     string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"DB_SQLITE_PATH" default:".lighthouse/storage.db"`
	Host       string `envconfig:"DB_HOST" default:"localhost"`
	Port       int    `envconfig:"DB_PORT" default:"5432"`
	User       string `envconfig:"DB_USER" default:"postgres"`
	Password   string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name       string `envconfig:"DB_NAME" default:"lighthouse"`
	SSLMode    string `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type WeatherKitConfig struct {
	BaseURL        string  `envconfig:"WEATHERKIT_BASE_URL" default:"https://weatherkit.apple.com/api/v1"`
	Token          string  `envconfig:"WEATHERKIT_TOKEN"`
	TimeoutSeconds int     `envconfig:"WEATHERKIT_TIMEOUT" default:"10"`
	RateLimit      float64 `envconfig:"WEATHERKIT_RATE_LIMIT" default:"5"`
	RateBurst      int     `envconfig:"WEATHERKIT_RATE_BURST" default:"3"`
	EnableLogging  bool    `envconfig:"WEATHERKIT_ENABLE_LOGGING" default:"true"`
}

// Timeout returns the HTTP timeout of WeatherKit requests
func (w WeatherKitConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

type BackendConfig struct {
	BaseURL        string `envconfig:"BACKEND_BASE_URL" default:"http://localhost:3000"`
	TimeoutSeconds int    `envconfig:"BACKEND_TIMEOUT" default:"10"`
	EnableLogging  bool   `envconfig:"BACKEND_ENABLE_LOGGING" default:"true"`
}

// Timeout returns the HTTP timeout of backend requests
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

type ExploreConfig struct {
	Latitude  float64 `envconfig:"EXPLORE_LATITUDE" default:"48.8566"`
	Longitude float64 `envconfig:"EXPLORE_LONGITUDE" default:"2.3522"`
	Language  string  `envconfig:"EXPLORE_LANGUAGE" default:"fr"`
	TimeZone  string  `envconfig:"EXPLORE_TIMEZONE" default:"Local"`
}

// Location resolves the time zone used for forecast labels
func (e ExploreConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(e.TimeZone)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("unknown EXPLORE_TIMEZONE %q", e.TimeZone), err)
	}
	return loc, nil
}

type LoggingConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	FilePath   string `envconfig:"LOG_FILE_PATH" default:"logs/lighthouse.log"`
	EnableFile bool   `envconfig:"LOG_ENABLE_FILE" default:"false"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.WeatherKit.Validate(); err != nil {
		return err
	}
	if err := c.Backend.Validate(); err != nil {
		return err
	}
	if err := c.Explore.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Host == "" {
		return errors.NewConfigurationError("SERVER_HOST cannot be empty", nil)
	}
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (s *StorageConfig) Validate() error {
	switch s.Type {
	case StorageTypeFile:
		if s.Dir == "" {
			return errors.NewConfigurationError("STORAGE_DIR cannot be empty when using file storage", nil)
		}
		return nil
	case StorageTypeDatabase:
		return s.Database.Validate()
	case StorageTypeRedis:
		return s.Redis.Validate()
	case StorageTypeMemory:
		return nil
	default:
		return errors.NewConfigurationError("STORAGE_TYPE must be one of: file, database, redis, memory", nil)
	}
}

func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case "sqlite":
		if d.SQLitePath == "" {
			return errors.NewConfigurationError("DB_SQLITE_PATH cannot be empty for the sqlite driver", nil)
		}
		return nil
	case "postgres":
	default:
		return errors.NewConfigurationError("DB_DRIVER must be one of: sqlite, postgres", nil)
	}

	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis storage", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

// Validate checks the WeatherKit settings. An empty token is allowed so the
// client can start; requests then fail with 401 and surface in the screens.
func (w *WeatherKitConfig) Validate() error {
	if !isHTTPURL(w.BaseURL) {
		return errors.NewConfigurationError("WEATHERKIT_BASE_URL must start with http:// or https://", nil)
	}
	if w.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("WEATHERKIT_TIMEOUT must be at least 1 second", nil)
	}
	if w.RateLimit <= 0 {
		return errors.NewConfigurationError("WEATHERKIT_RATE_LIMIT must be positive", nil)
	}
	if w.RateBurst < 1 {
		return errors.NewConfigurationError("WEATHERKIT_RATE_BURST must be at least 1", nil)
	}
	return nil
}

func (b *BackendConfig) Validate() error {
	if !isHTTPURL(b.BaseURL) {
		return errors.NewConfigurationError("BACKEND_BASE_URL must start with http:// or https://", nil)
	}
	if b.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("BACKEND_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (e *ExploreConfig) Validate() error {
	if !validation.IsValidLatitude(e.Latitude) {
		return errors.NewConfigurationError("EXPLORE_LATITUDE must be between -90 and 90", nil)
	}
	if !validation.IsValidLongitude(e.Longitude) {
		return errors.NewConfigurationError("EXPLORE_LONGITUDE must be between -180 and 180", nil)
	}
	if !validation.IsValidLanguageTag(e.Language) {
		return errors.NewConfigurationError("EXPLORE_LANGUAGE must be a language tag such as fr or en-US", nil)
	}
	if _, err := e.Location(); err != nil {
		return err
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", nil)
	}
	if l.EnableFile && l.FilePath == "" {
		return errors.NewConfigurationError("LOG_FILE_PATH cannot be empty when file logging is enabled", nil)
	}
	return nil
}

func isHTTPURL(v string) bool {
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")
}
