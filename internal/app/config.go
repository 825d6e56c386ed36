package app

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/utils"
)

type Config struct {
	Environment         string `yaml:"environment"`
	Version             string `yaml:"version"`
	Port                string `yaml:"port"`
	JWTSecretKey        string `yaml:"jwt_secret_key"`
	EscrowAddress       string `yaml:"escrow_address"`
	VotingWindowSeconds int64  `yaml:"voting_window_seconds"`
	RedisAddr           string `yaml:"redis_addr"`
	RedisEventChannel   string `yaml:"redis_event_channel"`
	EventsEnabled       bool   `yaml:"events_enabled"`
}

// LoadConfig layers an optional YAML file (AJO_CONFIG_FILE) under the
// environment; env vars win.
func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Environment:         "development",
		Port:                "8080",
		JWTSecretKey:        "defaultsecret",
		EscrowAddress:       "ajo-escrow",
		VotingWindowSeconds: 604800,
		RedisAddr:           "localhost:6379",
		RedisEventChannel:   "ajo:events",
	}

	if path := os.Getenv("AJO_CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn("Config file unreadable, using defaults", "path", path, "error", err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Warn("Config file invalid, using defaults", "path", path, "error", err)
		} else {
			log.Info("Config file loaded", "path", path)
		}
	}

	cfg.Environment = utils.GetEnv("APP_ENV", cfg.Environment, log)
	cfg.Version = utils.GetEnv("APP_VERSION", cfg.Version, log)
	cfg.Port = utils.GetEnv("PORT", cfg.Port, log)
	cfg.JWTSecretKey = utils.GetEnv("JWT_SECRET_KEY", cfg.JWTSecretKey, log)
	cfg.EscrowAddress = utils.GetEnv("ESCROW_ADDRESS", cfg.EscrowAddress, log)
	cfg.VotingWindowSeconds = utils.GetEnvAsInt64("REFUND_VOTING_WINDOW", cfg.VotingWindowSeconds, log)
	cfg.RedisAddr = utils.GetEnv("REDIS_ADDR", cfg.RedisAddr, log)
	cfg.RedisEventChannel = utils.GetEnv("REDIS_EVENT_CHANNEL", cfg.RedisEventChannel, log)
	cfg.EventsEnabled = utils.GetEnvAsBool("EVENTS_ENABLED", cfg.EventsEnabled, log)
	return cfg
}
