package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	BotToken       string // Required: bot token for the platform gateway
	AppID          string // Required: application id commands are registered under
	GuildID        string // Required: the one guild this process serves
	AuditChannelID string // Required: channel receiving audit and error records

	DelegationsFile   string  // Path to the delegation document (default: ./delegations.jsonc)
	MessagesPerSecond float64 // Outbound message rate cap (default: 5)
	MessageBurst      int     // Outbound message burst (default: 5)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	OpsPort             int           // Ops HTTP port for probes and metrics (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		BotToken:       os.Getenv("ROLEWARDEN_BOT_TOKEN"),
		AppID:          os.Getenv("ROLEWARDEN_APP_ID"),
		GuildID:        os.Getenv("ROLEWARDEN_GUILD_ID"),
		AuditChannelID: os.Getenv("ROLEWARDEN_AUDIT_CHANNEL"),

		DelegationsFile:   getEnvOrDefault("ROLEWARDEN_DELEGATIONS_FILE", "delegations.jsonc"),
		MessagesPerSecond: getEnvFloatOrDefault("ROLEWARDEN_MESSAGE_RATE", 5),
		MessageBurst:      getEnvIntOrDefault("ROLEWARDEN_MESSAGE_BURST", 5),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		OpsPort:             getEnvIntOrDefault("ROLEWARDEN_OPS_PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate reports the first missing required setting.
func (cfg Config) Validate() error {
	switch {
	case cfg.BotToken == "":
		return errors.New("ROLEWARDEN_BOT_TOKEN is required")
	case cfg.AppID == "":
		return errors.New("ROLEWARDEN_APP_ID is required")
	case cfg.GuildID == "":
		return errors.New("ROLEWARDEN_GUILD_ID is required")
	case cfg.AuditChannelID == "":
		return errors.New("ROLEWARDEN_AUDIT_CHANNEL is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
		return floatValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
