package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. An optional
// .env file is loaded first (missing file is fine). Only variables that are
// actually set override the current values.
//
// Recognized variables:
//
//	ADDRESS               HTTP bind address
//	DATABASE_DSN          PostgreSQL DSN
//	SECRET_KEY            JWT HMAC secret
//	ACCESS_TOKEN_TTL      token lifetime, Go duration string ("24h")
//	STORAGE_TIMEOUT       storage operation bound, Go duration string ("5s")
//	SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD
//	MAIL_FROM             sender address for outbound mail
//	CORS_ALLOWED_ORIGINS  comma-separated origins
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(name string, target *string) {
		if v, ok := os.LookupEnv(name); ok {
			*target = v
		}
	}
	setDuration := func(name string, target *time.Duration) {
		if v, ok := os.LookupEnv(name); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*target = d
			}
		}
	}

	setString("ADDRESS", &config.EndpointAddr)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("SECRET_KEY", &config.SecretKey)
	setDuration("ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration)
	setDuration("STORAGE_TIMEOUT", &config.StorageTimeout)
	setString("SMTP_HOST", &config.SMTPHost)
	if v, ok := os.LookupEnv("SMTP_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			config.SMTPPort = port
		}
	}
	setString("SMTP_USERNAME", &config.SMTPUsername)
	setString("SMTP_PASSWORD", &config.SMTPPassword)
	setString("MAIL_FROM", &config.MailFrom)
	setString("CORS_ALLOWED_ORIGINS", &config.CORSAllowedOrigins)
}
