package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables
	S3BucketName string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion         string
	PurgeReportTopic  string // SNS topic ARN for purge summaries; empty disables publishing
	DeletionGraceDays int    // grace period before a deletion request becomes purgeable

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users             string
	VerificationCodes string
	DeletionRequests  string
	Roles             string
	UserRoles         string
	Profiles          string
	TravelPreferences string
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
			Users:             getEnv("DYNAMO_TABLE_USERS", "users"),
			VerificationCodes: getEnv("DYNAMO_TABLE_VERIFICATION_CODES", "verification_codes"),
			DeletionRequests:  getEnv("DYNAMO_TABLE_DELETION_REQUESTS", "account_deletion_requests"),
			Roles:             getEnv("DYNAMO_TABLE_ROLES", "roles"),
			UserRoles:         getEnv("DYNAMO_TABLE_USER_ROLES", "user_roles"),
			Profiles:          getEnv("DYNAMO_TABLE_PROFILES", "profiles"),
			TravelPreferences: getEnv("DYNAMO_TABLE_TRAVEL_PREFERENCES", "travel_preferences"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "planora-avatars"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@planora.ai"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion:         getEnv("SNS_REGION", "us-east-1"),
		PurgeReportTopic:  getEnv("SNS_PURGE_REPORT_TOPIC_ARN", ""),
		DeletionGraceDays: getEnvInt("DELETION_GRACE_DAYS", 30),

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
