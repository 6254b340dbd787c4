package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server      ServerConfig      `env:",prefix=SERVER_"`
	Postgres    PostgresConfig    `env:",prefix=POSTGRES_"`
	Redis       RedisConfig       `env:",prefix=REDIS_"`
	Catalog     CatalogConfig     `env:",prefix=ANILIST_"`
	Recognition RecognitionConfig `env:",prefix=RECOGNITION_"`
	Security    SecurityConfig    `env:",prefix="`
	CORS        CORSConfig        `env:",prefix=CORS_"`
	Env         string            `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
}

type PostgresConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=animeworld"`
	Password string `env:"PASSWORD,default=animeworld_password"`
	DBName   string `env:"DB,default=animeworld_db"`
	SSLMode  string `env:"SSLMODE,default=disable"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
}

// CatalogConfig configures the AniList GraphQL client.
type CatalogConfig struct {
	Endpoint         string   `env:"ENDPOINT,default=https://graphql.anilist.co"`
	RequestTimeout   Duration `env:"REQUEST_TIMEOUT,default=10s"`
	PageDelay        Duration `env:"PAGE_DELAY,default=250ms"`
	TrendingTTL      Duration `env:"TRENDING_TTL,default=5m"`
	DetailTTL        Duration `env:"DETAIL_TTL,default=30m"`
	ScheduleTTL      Duration `env:"SCHEDULE_TTL,default=10m"`
	PlaceholderImage string   `env:"PLACEHOLDER_IMAGE,default=/assets/cover-placeholder.png"`
}

// RecognitionConfig configures the image recognition providers.
// An empty SauceNAO key switches that provider into simulation mode
// instead of failing at startup.
type RecognitionConfig struct {
	TraceMoeEndpoint string   `env:"TRACEMOE_ENDPOINT,default=https://api.trace.moe/search"`
	SauceNAOEndpoint string   `env:"SAUCENAO_ENDPOINT,default=https://saucenao.com/search.php"`
	SauceNAOKey      string   `env:"SAUCENAO_KEY,default="`
	MaxUploadBytes   int64    `env:"MAX_UPLOAD_BYTES,default=5242880"`
	RequestTimeout   Duration `env:"REQUEST_TIMEOUT,default=20s"`
}

type SecurityConfig struct {
	RateLimitRequests int      `env:"RATE_LIMIT_REQUESTS,default=30"`
	RateLimitWindow   Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:5173"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// SimulationMode reports whether the SauceNAO provider runs on canned results.
func (rc RecognitionConfig) SimulationMode() bool {
	return rc.SauceNAOKey == ""
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if config.Recognition.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("RECOGNITION_MAX_UPLOAD_BYTES must be positive")
	}
	if config.Catalog.Endpoint == "" {
		return nil, fmt.Errorf("ANILIST_ENDPOINT must not be empty")
	}

	return &config, nil
}

// LoadWithDefaults loads configuration with default context
func LoadWithDefaults() (*Config, error) {
	return Load(context.Background())
}
