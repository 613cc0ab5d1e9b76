package config

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// DevAuth accepts the X-User-* identity headers in place of a bearer
	// token. Never enable outside local development.
	DevAuth bool `env:"DEV_AUTH, default=false"`

	// ArtifactWorkers is the number of background QR workers.
	ArtifactWorkers int `env:"ARTIFACT_WORKERS, default=4"`

	Mongo   MongoConfig
	Redis   RedisConfig
	AWS     AWSConfig
	Cognito CognitoConfig
	Buckets BucketConfig
	OAuth   OAuthConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=clubhub"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type AWSConfig struct {
	Region          string `env:"AWS_REGION, default=ap-south-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	// EndpointURL overrides the AWS endpoint for localstack/minio setups.
	EndpointURL string `env:"AWS_ENDPOINT_URL"`
	// SenderEmail is the verified SES identity verification emails are
	// sent from.
	SenderEmail string `env:"AWS_SES_SENDER_EMAIL, default=noreply@clubhub.example"`
}

type CognitoConfig struct {
	UserPoolID string `env:"COGNITO_USER_POOL_ID"`
	ClientID   string `env:"COGNITO_CLIENT_ID"`
	// Audience is checked against the token's aud claim when set. Leave
	// empty for access tokens, which carry no audience.
	Audience string `env:"COGNITO_AUDIENCE"`
}

type BucketConfig struct {
	EventCovers string `env:"BUCKET_EVENT_COVERS, default=clubhub-event-covers"`
	Avatars     string `env:"BUCKET_AVATARS,      default=clubhub-avatars"`
	Gallery     string `env:"BUCKET_GALLERY,      default=clubhub-gallery"`
	QRCodes     string `env:"BUCKET_QR_CODES,     default=clubhub-qr-codes"`
}

type OAuthConfig struct {
	GoogleClientID        string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret    string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL     string `env:"GOOGLE_REDIRECT_URL"`
	MicrosoftClientID     string `env:"MICROSOFT_CLIENT_ID"`
	MicrosoftClientSecret string `env:"MICROSOFT_CLIENT_SECRET"`
	MicrosoftTenant       string `env:"MICROSOFT_TENANT, default=common"`
	MicrosoftRedirectURL  string `env:"MICROSOFT_REDIRECT_URL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		panic(err)
	}
	return &cfg
}
