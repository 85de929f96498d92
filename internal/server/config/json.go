package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avolkov3/simpledb/internal/flagx"
	"github.com/avolkov3/simpledb/internal/timex"
)

// JsonConfig is the intermediate DTO for JSON configuration files. Interval
// fields use timex.Duration, which accepts both duration strings ("24h") and
// integer nanoseconds.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	StorageTimeout              timex.Duration `json:"storage_timeout"`
	SMTPHost                    string         `json:"smtp_host"`
	SMTPPort                    int            `json:"smtp_port"`
	SMTPUsername                string         `json:"smtp_username"`
	SMTPPassword                string         `json:"smtp_password"`
	MailFrom                    string         `json:"mail_from"`
	CORSAllowedOrigins          string         `json:"cors_allowed_origins"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. Absent flags mean no file is
// loaded. Only fields present (non-zero) in the file override the current
// values. Unreadable or invalid files panic: a requested config file that
// cannot be applied is a startup failure.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.StorageTimeout.Duration != 0 {
		config.StorageTimeout = time.Duration(c.StorageTimeout.Duration)
	}
	if c.SMTPHost != "" {
		config.SMTPHost = c.SMTPHost
	}
	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	if c.SMTPUsername != "" {
		config.SMTPUsername = c.SMTPUsername
	}
	if c.SMTPPassword != "" {
		config.SMTPPassword = c.SMTPPassword
	}
	if c.MailFrom != "" {
		config.MailFrom = c.MailFrom
	}
	if c.CORSAllowedOrigins != "" {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
}
