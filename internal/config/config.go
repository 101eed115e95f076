package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`

	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	SessionTTLHours int    `envconfig:"SESSION_TTL_HOURS" default:"24"`

	// Admin routes are only mounted when a token is configured.
	AdminAPIToken string `envconfig:"ADMIN_API_TOKEN"`

	// Supabase storage (S3-compatible) settings for export snapshots
	S3URL           string `envconfig:"SUPABASE_S3_URL" required:"true"`
	S3Bucket        string `envconfig:"SUPABASE_S3_BUCKET" required:"true"`
	S3Region        string `envconfig:"SUPABASE_S3_REGION" required:"true"`
	S3AccessKey     string `envconfig:"SUPABASE_S3_ACCESS_KEY" required:"true"`
	S3SecretKey     string `envconfig:"SUPABASE_S3_SECRET_KEY" required:"true"`
	ExportURLTTLMin int    `envconfig:"EXPORT_URL_TTL_MIN" default:"15"`

	// Aggregation worker settings
	AggregationQueueName         string `envconfig:"AGGREGATION_QUEUE_NAME" default:"assessment_events"`
	AggregationPollTimeoutSec    int    `envconfig:"AGGREGATION_POLL_TIMEOUT_SEC" default:"30"`
	AggregationVisibilitySec     int    `envconfig:"AGGREGATION_VISIBILITY_SEC" default:"120"`
	AggregationPollMaxMsg        int    `envconfig:"AGGREGATION_POLL_MAX_MSG" default:"1"`
	AggregationMaxRetries        int    `envconfig:"AGGREGATION_MAX_RETRIES" default:"5"`
	AggregationBackoffInitialSec int    `envconfig:"AGGREGATION_BACKOFF_INITIAL_SEC" default:"1"`
	AggregationBackoffMaxSec     int    `envconfig:"AGGREGATION_BACKOFF_MAX_SEC" default:"60"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN returns the connection string adjusted for the runtime environment.
// Development disables SSL for local Postgres; everything else sits behind a
// transaction pooler and needs the simple query protocol to avoid
// server-side prepared statements.
func (c *Config) DSN() string {
	dsn := c.DBConnectionString
	if c.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := " "
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			if strings.Contains(dsn, "?") {
				separator = "&"
			} else {
				separator = "?"
			}
		}
		dsn += separator + "sslmode=disable"
	}
	if c.Environment != "development" && !strings.Contains(dsn, "prefer_simple_protocol") {
		separator := "&"
		if !strings.Contains(dsn, "?") {
			separator = "?"
		}
		dsn += separator + "prefer_simple_protocol=true"
	}
	return dsn
}
