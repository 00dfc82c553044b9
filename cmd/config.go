package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"consignment/internal/core/domain/model/slot"
	"consignment/internal/pkg/errs"
)

const defaultDeliveryWindows = "morning|Morning|09:00|12:00,afternoon|Afternoon|12:00|16:00,evening|Evening|16:00|20:00"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers           []string
	KafkaConsumerGroup     string
	KafkaDisputeTopic      string
	KafkaNotificationTopic string

	JWTSecret string

	ZipServiceURL          string
	ZipServiceablePrefixes []string
	ZipValidationTimeout   time.Duration

	ContestWindow         time.Duration
	MaxCapacityPerWindow  int
	SchedulingHorizonDays int
	DeliveryWindows       []slot.Window
	SchedulingLocation    *time.Location

	FinalizationSchedule  string
	FinalizationBatchSize int

	LogFormat string
	LogLevel  string
}

// LoadConfig reads the configuration from the environment. Every key has a
// default except JWT_SECRET.
func LoadConfig() (Config, error) {
	var problems []error
	intVar := func(key string, def int) int {
		v, err := getEnvInt(key, def)
		problems = append(problems, err)
		return v
	}

	cfg := Config{
		HTTPPort:   getEnv("HTTP_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "consignment"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		KafkaBrokers:           splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaConsumerGroup:     getEnv("KAFKA_CONSUMER_GROUP", "consignment"),
		KafkaDisputeTopic:      getEnv("KAFKA_DISPUTE_TOPIC", "order.disputes"),
		KafkaNotificationTopic: getEnv("KAFKA_NOTIFICATION_TOPIC", "buyer.notifications"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		ZipServiceURL:          getEnv("ZIP_SERVICE_URL", ""),
		ZipServiceablePrefixes: splitList(getEnv("ZIP_SERVICEABLE_PREFIXES", "")),

		MaxCapacityPerWindow:  intVar("MAX_CAPACITY_PER_WINDOW", 4),
		SchedulingHorizonDays: intVar("SCHEDULING_HORIZON_DAYS", 7),

		FinalizationSchedule:  getEnv("FINALIZATION_SCHEDULE", "@every 1m"),
		FinalizationBatchSize: intVar("FINALIZATION_BATCH_SIZE", 500),

		LogFormat: getEnv("LOG_FORMAT", "console"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	contestHours := intVar("CONTEST_WINDOW_HOURS", 24)
	if contestHours <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("CONTEST_WINDOW_HOURS", contestHours, 1, "unbounded"))
	}
	cfg.ContestWindow = time.Duration(contestHours) * time.Hour

	timeout, err := time.ParseDuration(getEnv("ZIP_VALIDATION_TIMEOUT", "3s"))
	if err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("ZIP_VALIDATION_TIMEOUT", err))
	}
	cfg.ZipValidationTimeout = timeout

	if cfg.DeliveryWindows, err = slot.ParseWindows(getEnv("DELIVERY_WINDOWS", defaultDeliveryWindows)); err != nil {
		problems = append(problems, fmt.Errorf("DELIVERY_WINDOWS: %w", err))
	}

	if cfg.SchedulingLocation, err = time.LoadLocation(getEnv("SCHEDULING_TIMEZONE", "UTC")); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("SCHEDULING_TIMEZONE", err))
	}

	if cfg.JWTSecret == "" {
		problems = append(problems, errs.NewValueIsRequiredError("JWT_SECRET"))
	}

	if err = errors.Join(problems...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf("0.0.0.0:%s", c.HTTPPort)
}

// KafkaEnabled reports whether a broker list was configured.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(raw) == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultVal, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
