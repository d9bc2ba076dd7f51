package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	MetadataBackendDynamoDB = "dynamodb"
	MetadataBackendPostgres = "postgres"
)

type Config struct {
	Env      Env
	Server   ServerConfig
	Minio    MinioConfig
	Upload   FileUploadConfig
	Image    ImageConfig
	Metadata MetadataConfig
	DynamoDB DynamoDBConfig
	Database DatabaseConfig
	NATS     NATSConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host           string        `envconfig:"SERVER_HOST" default:"localhost"`
	Port           string        `envconfig:"SERVER_PORT" default:"8080"`
	RequestTimeout time.Duration `envconfig:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

type MinioConfig struct {
	Endpoint      string `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName    string `envconfig:"MINIO_BUCKET_NAME" required:"true"`
	AccessKey     string `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey     string `envconfig:"MINIO_SECRET_KEY" required:"true"`
	UseSSL        bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	PublicBaseURL string `envconfig:"MINIO_PUBLIC_BASE_URL" default:""`
}

type FileUploadConfig struct {
	MaxSize         int64         `envconfig:"UPLOAD_MAX_SIZE" default:"10485760"` // 10MB
	Folder          string        `envconfig:"MEDIA_FOLDER" default:""`
	MediaTimeout    time.Duration `envconfig:"UPLOAD_MEDIA_TIMEOUT" default:"30s"`
	MetadataTimeout time.Duration `envconfig:"UPLOAD_METADATA_TIMEOUT" default:"5s"`
}

type ImageConfig struct {
	MaxWidth    int   `envconfig:"IMAGE_MAX_WIDTH" default:"800"`
	MaxHeight   int   `envconfig:"IMAGE_MAX_HEIGHT" default:"600"`
	JPEGQuality int   `envconfig:"IMAGE_JPEG_QUALITY" default:"85"`
	MaxPixels   int64 `envconfig:"IMAGE_MAX_PIXELS" default:"50000000"` // decoded width*height
}

type MetadataConfig struct {
	Backend string `envconfig:"METADATA_BACKEND" default:"dynamodb"`
}

type DynamoDBConfig struct {
	Region    string `envconfig:"DYNAMODB_REGION" default:"us-east-1"`
	Table     string `envconfig:"DYNAMODB_TABLE" default:"file_records"`
	Endpoint  string `envconfig:"DYNAMODB_ENDPOINT" default:""`
	AccessKey string `envconfig:"DYNAMODB_ACCESS_KEY" default:""`
	SecretKey string `envconfig:"DYNAMODB_SECRET_KEY" default:""`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER"`
	Password       string        `envconfig:"DB_PASSWORD"`
	Name           string        `envconfig:"DB_NAME"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

// NATSConfig configures orphan reporting. An empty URL disables it.
type NATSConfig struct {
	URL          string `envconfig:"NATS_URL" default:""`
	StreamName   string `envconfig:"NATS_STREAM_NAME" default:"ORPHANS"`
	Subject      string `envconfig:"NATS_SUBJECT" default:"media.orphaned"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" default:"orphan-audit"`
}

// Enabled reports whether orphan notices should be published
func (n NATSConfig) Enabled() bool {
	return n.URL != ""
}

// Load reads an optional .env file then the process environment
func Load() (*Config, error) {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Metadata.Backend {
	case MetadataBackendDynamoDB:
		if c.DynamoDB.Table == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required for the %s backend", MetadataBackendDynamoDB)
		}
	case MetadataBackendPostgres:
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
			return fmt.Errorf("DB_HOST, DB_USER and DB_NAME are required for the %s backend", MetadataBackendPostgres)
		}
	default:
		return fmt.Errorf("unknown METADATA_BACKEND %q", c.Metadata.Backend)
	}

	if c.Image.MaxWidth <= 0 || c.Image.MaxHeight <= 0 {
		return fmt.Errorf("image bounds must be positive, got %dx%d", c.Image.MaxWidth, c.Image.MaxHeight)
	}
	if c.Image.JPEGQuality < 1 || c.Image.JPEGQuality > 100 {
		return fmt.Errorf("IMAGE_JPEG_QUALITY must be within 1..100, got %d", c.Image.JPEGQuality)
	}
	if c.Image.MaxPixels <= 0 {
		return fmt.Errorf("IMAGE_MAX_PIXELS must be positive")
	}
	if c.Upload.MaxSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_SIZE must be positive")
	}
	return nil
}
