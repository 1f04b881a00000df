package config

import (
	"fmt"
	"time"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Node     NodeConfig     `yaml:"node"`
	Telegram TelegramConfig `yaml:"telegram"`
	Chain    ChainConfig    `yaml:"chain"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// NodeConfig locates the monitored node's management API.
type NodeConfig struct {
	Host      string `yaml:"host"`
	AdminPort int    `yaml:"admin_port"`
}

// TelegramConfig holds the destination for alerts.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

// ChainConfig enables the optional confirmation-weight check. Both fields
// must be set for the check to run.
type ChainConfig struct {
	APIURL      string `yaml:"api_url"`
	Participant string `yaml:"participant"`
}

// AlertsConfig tunes the evaluation rules.
type AlertsConfig struct {
	MissedPctThreshold float64  `yaml:"missed_pct_threshold"`
	PctDecimals        int      `yaml:"pct_decimals"`
	IgnoredChecks      []string `yaml:"ignored_checks"`
}

// MonitorConfig holds scheduling settings.
type MonitorConfig struct {
	Interval Duration `yaml:"interval"`
}

// ServerConfig holds the ops HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Duration wraps time.Duration so YAML values like "60s" parse; bare
// integers are taken as seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := unmarshal(&n); err != nil {
		return err
	}
	*d = Duration(time.Duration(n) * time.Second)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
