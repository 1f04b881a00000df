package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from an optional YAML file, applies environment
// variable overrides, fills defaults and validates presence of the mandatory
// settings. A missing file is fine; the environment alone can configure
// everything.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Expand environment variables in the YAML content
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides file values with explicit environment variables.
func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("API_SERVER"); v != "" {
		cfg.Node.Host = v
	}
	if v := os.Getenv("ADMIN_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Node.AdminPort = port
		}
	}
	if v := os.Getenv("BOT_ID"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CHAIN_API_URL"); v != "" {
		cfg.Chain.APIURL = v
	}
	if v := os.Getenv("PARTICIPANT_ADDRESS"); v != "" {
		cfg.Chain.Participant = v
	}
	if v := os.Getenv("MISSED_PCT_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Alerts.MissedPctThreshold = f
		}
	}
	if v := os.Getenv("MISSED_PCT_DECIMALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Alerts.PctDecimals = n
		}
	}
	if v := os.Getenv("CHECK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Monitor.Interval = Duration(d)
		}
	}
	if v := os.Getenv("OPS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Node.AdminPort == 0 {
		cfg.Node.AdminPort = 9200
	}
	if cfg.Alerts.MissedPctThreshold == 0 {
		cfg.Alerts.MissedPctThreshold = 3.0
	}
	if cfg.Alerts.PctDecimals == 0 {
		cfg.Alerts.PctDecimals = 2
	}
	if cfg.Alerts.IgnoredChecks == nil {
		cfg.Alerts.IgnoredChecks = []string{"consensus_key_match", "validator_in_set"}
	}
	if cfg.Monitor.Interval == 0 {
		cfg.Monitor.Interval = Duration(60 * time.Second)
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks that the mandatory settings are present. Anything beyond
// presence is intentionally left to the upstream APIs to reject.
func (c *AppConfig) Validate() error {
	if c.Node.Host == "" {
		return errors.New("API_SERVER (node.host) must be set")
	}
	if c.Telegram.BotToken == "" {
		return errors.New("BOT_ID (telegram.bot_token) must be set")
	}
	if c.Telegram.ChatID == "" {
		return errors.New("CHAT_ID (telegram.chat_id) must be set")
	}
	return nil
}
