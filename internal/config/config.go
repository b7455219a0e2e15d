package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Lastfm     LastfmConfig     `mapstructure:"lastfm"`
	Strava     StravaConfig     `mapstructure:"strava"`
	TMDB       TMDBConfig       `mapstructure:"tmdb"`
	Trakt      TraktConfig      `mapstructure:"trakt"`
	Goodreads  GoodreadsConfig  `mapstructure:"goodreads"`
	Letterboxd LetterboxdConfig `mapstructure:"letterboxd"`
	Archive    ArchiveConfig    `mapstructure:"archive"`
	Sync       SyncConfig       `mapstructure:"sync"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	Path            string        `mapstructure:"path"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN builds the connection string for the configured driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	}
	return c.Path
}

type LastfmConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	Username string        `mapstructure:"username"`
	PageSize int           `mapstructure:"page_size"`
	Delay    time.Duration `mapstructure:"delay"`
}

type StravaConfig struct {
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	RefreshToken string        `mapstructure:"refresh_token"`
	PerPage      int           `mapstructure:"per_page"`
	Delay        time.Duration `mapstructure:"delay"`
}

type TMDBConfig struct {
	APIKey string        `mapstructure:"api_key"`
	Delay  time.Duration `mapstructure:"delay"`
}

type TraktConfig struct {
	ClientID    string        `mapstructure:"client_id"`
	AccessToken string        `mapstructure:"access_token"`
	Username    string        `mapstructure:"username"`
	PageSize    int           `mapstructure:"page_size"`
	Delay       time.Duration `mapstructure:"delay"`
}

type GoodreadsConfig struct {
	ExportDir string `mapstructure:"export_dir"`
}

type LetterboxdConfig struct {
	ExportDir string `mapstructure:"export_dir"`
}

type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
}

type SyncConfig struct {
	BatchSize   int           `mapstructure:"batch_size"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// Load reads configuration from an optional config file, a local .env,
// and the environment. Secrets always come from the environment.
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/worldly.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "require")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("lastfm.page_size", 200)
	v.SetDefault("lastfm.delay", 250*time.Millisecond)
	v.SetDefault("strava.per_page", 200)
	v.SetDefault("strava.delay", 500*time.Millisecond)
	v.SetDefault("tmdb.delay", 300*time.Millisecond)
	v.SetDefault("trakt.username", "me")
	v.SetDefault("trakt.page_size", 100)
	v.SetDefault("trakt.delay", 250*time.Millisecond)
	v.SetDefault("goodreads.export_dir", "./data/goodreads")
	v.SetDefault("letterboxd.export_dir", "./data/letterboxd")
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.use_ssl", true)
	v.SetDefault("archive.bucket", "worldly-raw")
	v.SetDefault("sync.batch_size", 500)
	v.SetDefault("sync.http_timeout", 15*time.Second)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.name", "DATABASE_NAME")
	v.BindEnv("lastfm.api_key", "LASTFM_API_KEY")
	v.BindEnv("lastfm.username", "LASTFM_USERNAME")
	v.BindEnv("strava.client_id", "STRAVA_CLIENT_ID")
	v.BindEnv("strava.client_secret", "STRAVA_CLIENT_SECRET")
	v.BindEnv("strava.refresh_token", "STRAVA_REFRESH_TOKEN")
	v.BindEnv("tmdb.api_key", "TMDB_API_KEY")
	v.BindEnv("trakt.client_id", "TRAKT_CLIENT_ID")
	v.BindEnv("trakt.access_token", "TRAKT_ACCESS_TOKEN")
	v.BindEnv("trakt.username", "TRAKT_USERNAME")
	v.BindEnv("archive.endpoint", "ARCHIVE_ENDPOINT")
	v.BindEnv("archive.access_key", "ARCHIVE_ACCESS_KEY")
	v.BindEnv("archive.secret_key", "ARCHIVE_SECRET_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
