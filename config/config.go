package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpServer    HttpServerConfig    `envconfig:"HTTP_SERVER"`
	Database      DatabaseConfig      `envconfig:"DATABASE"`
	Redis         RedisConfig         `envconfig:"REDIS"`
	MessageStream MessageStreamConfig `envconfig:"MESSAGE_STREAM"`
	HttpClient    HttpClientConfig    `envconfig:"HTTP_CLIENT"`
	PhonePe       PhonePeConfig       `envconfig:"PHONEPE"`
	Hold          HoldConfig          `envconfig:"HOLD"`
}

type HttpServerConfig struct {
	Port string `envconfig:"HTTP_SERVER_PORT" default:"3000"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DATABASE_HOST" default:"localhost"`
	Port     string `envconfig:"DATABASE_PORT" default:"5432"`
	User     string `envconfig:"DATABASE_USER" default:"postgres"`
	Password string `envconfig:"DATABASE_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DATABASE_NAME" default:"travel_booking"`
	SSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type MessageStreamConfig struct {
	Host     string `envconfig:"MESSAGE_STREAM_HOST" default:"localhost"`
	Port     string `envconfig:"MESSAGE_STREAM_PORT" default:"5672"`
	User     string `envconfig:"MESSAGE_STREAM_USER" default:"guest"`
	Password string `envconfig:"MESSAGE_STREAM_PASSWORD" default:"guest"`
}

type HttpClientConfig struct {
	TimeoutSeconds   int   `envconfig:"HTTP_CLIENT_TIMEOUT_SECONDS" default:"5"`
	FailureThreshold int64 `envconfig:"HTTP_CLIENT_FAILURE_THRESHOLD" default:"10"`
}

// PhonePeConfig carries the gateway credentials and endpoints. The salt key
// is a shared secret; it must never be logged.
type PhonePeConfig struct {
	MerchantID      string `envconfig:"PHONEPE_MERCHANT_ID"`
	SaltKey         string `envconfig:"PHONEPE_SALT_KEY"`
	SaltIndex       string `envconfig:"PHONEPE_SALT_INDEX" default:"1"`
	PayURL          string `envconfig:"PHONEPE_PAY_URL" default:"https://api-preprod.phonepe.com/apis/pg-sandbox/pg/v1/pay"`
	StatusURLPrefix string `envconfig:"PHONEPE_STATUS_URL_PREFIX" default:"https://api-preprod.phonepe.com/apis/pg-sandbox"`
	SiteURL         string `envconfig:"PHONEPE_SITE_URL" default:"http://localhost:3000"`
}

type HoldConfig struct {
	TTLMinutes int `envconfig:"HOLD_TTL_MINUTES" default:"15"`
}

func InitConfig() *Config {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to process config: %v", err)
	}
	return &cfg
}
