package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	RedisURL    string
	SMSQueueKey string

	JWTSigningKey   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	OTPTTL time.Duration

	SMSProvider       string // "kavenegar" | "sns"
	KavenegarAPIKey   string
	KavenegarTemplate string
	SNSRegion         string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users     string
	AllowList string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:     getEnv("DYNAMO_TABLE_USERS", "users"),
			AllowList: getEnv("DYNAMO_TABLE_ALLOWLIST", "allowlist"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "otp-auth-avatars"),

		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SMSQueueKey: getEnv("SMS_QUEUE_KEY", "sms:jobs"),

		JWTSigningKey:   getEnv("JWT_SIGNING_KEY", ""),
		AccessTokenTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_LIFETIME", 24)) * time.Hour,
		RefreshTokenTTL: time.Duration(getEnvInt("REFRESH_TOKEN_LIFETIME", 168)) * time.Hour,

		OTPTTL: time.Duration(getEnvInt("OTP_TTL_SECONDS", 120)) * time.Second,

		SMSProvider:       getEnv("SMS_PROVIDER", "kavenegar"),
		KavenegarAPIKey:   getEnv("KAVENEGAR_API_KEY", ""),
		KavenegarTemplate: getEnv("KAVENEGAR_TEMPLATE", "ibc-otp"),
		SNSRegion:         getEnv("SNS_REGION", "us-east-1"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
