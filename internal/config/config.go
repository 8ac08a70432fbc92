package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env          Env
	Server       ServerConfig
	Auth         AuthConfig
	Storage      StorageConfig
	Moderation   ModerationConfig
	Transcoding  TranscodingConfig
	Quota        QuotaConfig
	ImageService ImageServiceConfig
	NATS         NATSConfig
	Database     DatabaseConfig
	Cleanup      CleanupConfig
}

type Env struct {
	Env     string `envconfig:"ENV" default:"DEV"`
	TempDir string `envconfig:"TEMP_DIR" default:""`
}

type ServerConfig struct {
	Host          string `envconfig:"SERVER_HOST" default:"localhost"`
	Port          string `envconfig:"SERVER_PORT" default:"8080"`
	MaxUploadSize int64  `envconfig:"SERVER_MAX_UPLOAD_SIZE" default:"524288000"` // 500MB
	// RequestTimeout must exceed TRANSCODING_TIMEOUT plus MODERATION_MAX_POLL_DURATION,
	// otherwise a slow video fails on the request deadline instead of the poll bound.
	RequestTimeout time.Duration `envconfig:"SERVER_REQUEST_TIMEOUT" default:"20m"`
}

type AuthConfig struct {
	JWTSecret string `envconfig:"AUTH_JWT_SECRET" required:"true"`
}

type StorageConfig struct {
	Endpoint      string `envconfig:"STORAGE_ENDPOINT" default:"s3.amazonaws.com"`
	Region        string `envconfig:"STORAGE_REGION" default:"us-east-1"`
	BucketName    string `envconfig:"STORAGE_BUCKET_NAME" required:"true"`
	AccessKey     string `envconfig:"STORAGE_ACCESS_KEY" required:"true"`
	SecretKey     string `envconfig:"STORAGE_SECRET_KEY" required:"true"`
	PublicBaseURL string `envconfig:"STORAGE_PUBLIC_BASE_URL" required:"true"`
	UseSSL        bool   `envconfig:"STORAGE_USE_SSL" default:"true"`
	CreateBucket  bool   `envconfig:"STORAGE_CREATE_BUCKET" default:"false"`
}

// DefaultBlocklist holds the moderation label names that reject an upload.
var DefaultBlocklist = []string{
	"Explicit",
	"Non-Explicit Nudity of Intimate parts and Kissing",
	"Violence",
	"Visually Disturbing",
	"Drugs & Tobacco",
	"Alcohol",
	"Rude Gestures",
	"Gambling",
	"Hate Symbols",
}

type ModerationConfig struct {
	Region          string        `envconfig:"MODERATION_REGION" default:"us-east-1"`
	AccessKey       string        `envconfig:"MODERATION_ACCESS_KEY" default:""`
	SecretKey       string        `envconfig:"MODERATION_SECRET_KEY" default:""`
	MinConfidence   float32       `envconfig:"MODERATION_MIN_CONFIDENCE" default:"60"`
	ImageThreshold  int64         `envconfig:"MODERATION_IMAGE_THRESHOLD" default:"5"`
	VideoThreshold  int64         `envconfig:"MODERATION_VIDEO_THRESHOLD" default:"5"`
	PollInterval    time.Duration `envconfig:"MODERATION_POLL_INTERVAL" default:"500ms"`
	MaxPollDuration time.Duration `envconfig:"MODERATION_MAX_POLL_DURATION" default:"10m"`
	RequestsPerSec  float64       `envconfig:"MODERATION_REQUESTS_PER_SEC" default:"5"`
	Burst           int           `envconfig:"MODERATION_BURST" default:"5"`
	Blocklist       []string      `envconfig:"MODERATION_BLOCKLIST"`
}

// Labels returns the configured blocklist or DefaultBlocklist.
func (m ModerationConfig) Labels() []string {
	if len(m.Blocklist) == 0 {
		return DefaultBlocklist
	}
	return m.Blocklist
}

type TranscodingConfig struct {
	FFmpegPath  string        `envconfig:"TRANSCODING_FFMPEG_PATH" default:"ffmpeg"`
	FFprobePath string        `envconfig:"TRANSCODING_FFPROBE_PATH" default:"ffprobe"`
	Timeout     time.Duration `envconfig:"TRANSCODING_TIMEOUT" default:"300s"`
	Preset      string        `envconfig:"TRANSCODING_PRESET" default:"medium"`
}

type QuotaConfig struct {
	BaseURL string        `envconfig:"QUOTA_BASE_URL" required:"true"`
	Path    string        `envconfig:"QUOTA_PATH" default:"/api/v1/user/post-count"`
	Timeout time.Duration `envconfig:"QUOTA_TIMEOUT" default:"5s"`
}

type ImageServiceConfig struct {
	DeriveURL string        `envconfig:"IMAGE_SERVICE_DERIVE_URL" default:""`
	AuthToken string        `envconfig:"IMAGE_SERVICE_AUTH_TOKEN" default:""`
	UpdateURL string        `envconfig:"IMAGE_SERVICE_UPDATE_URL" default:""`
	Timeout   time.Duration `envconfig:"IMAGE_SERVICE_TIMEOUT" default:"10s"`
}

type NATSConfig struct {
	URL            string `envconfig:"NATS_URL" required:"true"`
	StreamName     string `envconfig:"NATS_STREAM_NAME" default:"MEDIA"`
	SubjectPrefix  string `envconfig:"NATS_SUBJECT_PREFIX" default:"media"`
	ConsumerName   string `envconfig:"NATS_CONSUMER_NAME" default:"media-reconciler"`
	RemovalSubject string `envconfig:"NATS_REMOVAL_SUBJECT" default:"media.removal_requested"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

type CleanupConfig struct {
	Every  time.Duration `envconfig:"CLEANUP_EVERY" default:"15m"`
	MaxAge time.Duration `envconfig:"CLEANUP_WORKSPACE_MAX_AGE" default:"1h"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

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
	videoBudget := c.Transcoding.Timeout + c.Moderation.MaxPollDuration
	if c.Server.RequestTimeout <= videoBudget {
		return fmt.Errorf("SERVER_REQUEST_TIMEOUT %s must exceed TRANSCODING_TIMEOUT plus MODERATION_MAX_POLL_DURATION (%s)",
			c.Server.RequestTimeout, videoBudget)
	}
	return nil
}
