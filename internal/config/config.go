// Package config loads and validates auditor configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/girste/posture/internal/errors"
)

// Config describes the posture the auditor expects to find.
type Config struct {
	AdminUser       string          `yaml:"admin_user"`
	AdminShell      string          `yaml:"admin_shell"`
	ExpectedPorts   []int           `yaml:"expected_ports"`
	ListenAllowlist []int           `yaml:"listen_allowlist"`
	MonitorTools    []string        `yaml:"monitor_tools"`
	MonitorServices []string        `yaml:"monitor_services"`
	MonitorDirs     []string        `yaml:"monitor_dirs"`
	JournalLookback string          `yaml:"journal_lookback"`
	Probes          map[string]bool `yaml:"probes"`
	Notifications   NotifyConfig    `yaml:"notifications"`
	Watch           WatchConfig     `yaml:"watch"`
}

// NotifyConfig holds webhook notification settings
type NotifyConfig struct {
	Enabled bool          `yaml:"enabled"`
	Slack   SlackConfig   `yaml:"slack"`
	Webhook WebhookConfig `yaml:"webhook"`
}

type SlackConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
	Channel    string `yaml:"channel"`
	Username   string `yaml:"username"`
}

type WebhookConfig struct {
	Enabled bool              `yaml:"enabled"`
	URL     string            `yaml:"url"`
	Method  string            `yaml:"method"` // POST, PUT
	Headers map[string]string `yaml:"headers"`
}

// WatchConfig controls the continuous re-audit loop.
type WatchConfig struct {
	Interval string `yaml:"interval"`
}

var knownProbes = map[string]bool{
	"ssh":        true,
	"firewall":   true,
	"user":       true,
	"ssh-key":    true,
	"monitoring": true,
	"network":    true,
	"logging":    true,
}

func Default() *Config {
	return &Config{
		AdminUser:       "admin",
		AdminShell:      "/bin/bash",
		ExpectedPorts:   []int{22, 80, 443},
		ListenAllowlist: []int{22, 80, 443, 61208},
		MonitorTools:    []string{"htop", "glances"},
		MonitorServices: []string{"glances", "cron"},
		MonitorDirs:     []string{"/var/log/monitoring", "/opt/monitoring/scripts"},
		JournalLookback: "24h",
		Probes: map[string]bool{
			"ssh": true, "firewall": true, "user": true, "ssh-key": true,
			"monitoring": true, "network": true, "logging": true,
		},
		Notifications: NotifyConfig{
			Enabled: false,
			Slack: SlackConfig{
				Username: "posture",
			},
			Webhook: WebhookConfig{
				Method: "POST",
			},
		},
		Watch: WatchConfig{
			Interval: "15m",
		},
	}
}

// Load builds a Config from the first file found on the search paths,
// falling back to defaults when none exists.
func Load() (*Config, error) {
	cfg := Default()

	// Build search paths with priority order
	searchPaths := []string{}

	// 1. Environment variable (highest priority)
	if path := os.Getenv("POSTURE_CONFIG"); path != "" {
		searchPaths = append(searchPaths, path)
	}

	// 2. Current directory
	searchPaths = append(searchPaths, "posture.yaml")

	// 3. User config directory
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "posture", "posture.yaml"))
	}

	// 4. System-wide config
	searchPaths = append(searchPaths, "/etc/posture/posture.yaml")

	for _, path := range searchPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrInvalidConfig, "unreadable config at %s: %v", path, err)
		}
		break
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile reads configuration from an explicit path. Unlike Load, a
// missing file is an error here.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "cannot read config %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "invalid config at %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProbeEnabled reports whether a probe should run. Probes absent from
// the map default to enabled.
func (c *Config) IsProbeEnabled(name string) bool {
	enabled, ok := c.Probes[name]
	return !ok || enabled
}

// LookbackDuration returns the journal lookback window.
func (c *Config) LookbackDuration() time.Duration {
	d, err := time.ParseDuration(c.JournalLookback)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// WatchInterval returns the delay between watch cycles.
func (c *Config) WatchInterval() time.Duration {
	d, err := time.ParseDuration(c.Watch.Interval)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

// SudoersPath returns the drop-in file expected for the admin user.
func (c *Config) SudoersPath() string {
	return filepath.Join("/etc/sudoers.d", c.AdminUser)
}

// SudoersLine returns the exact grant line expected in the drop-in.
func (c *Config) SudoersLine() string {
	return c.AdminUser + " ALL=(ALL) NOPASSWD:ALL"
}

// Validate checks config for errors
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AdminUser) == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "admin_user must not be empty")
	}

	if err := validPorts("expected_ports", c.ExpectedPorts); err != nil {
		return err
	}
	if err := validPorts("listen_allowlist", c.ListenAllowlist); err != nil {
		return err
	}

	if d, err := time.ParseDuration(c.JournalLookback); err != nil || d <= 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "journal_lookback must be a positive duration, got %q", c.JournalLookback)
	}

	if d, err := time.ParseDuration(c.Watch.Interval); err != nil || d <= 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "watch interval must be a positive duration, got %q", c.Watch.Interval)
	}

	for name := range c.Probes {
		if !knownProbes[name] {
			return errors.Wrap(errors.ErrInvalidConfig, "unknown probe %q", name)
		}
	}

	// Validate Slack webhook
	if c.Notifications.Slack.Enabled && c.Notifications.Slack.WebhookURL != "" {
		url := strings.TrimSpace(c.Notifications.Slack.WebhookURL)
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return errors.Wrap(errors.ErrInvalidConfig, "slack webhook URL must start with http:// or https://")
		}
	}

	// Validate generic webhook
	if c.Notifications.Webhook.Enabled && c.Notifications.Webhook.URL != "" {
		url := strings.TrimSpace(c.Notifications.Webhook.URL)
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return errors.Wrap(errors.ErrInvalidConfig, "generic webhook URL must start with http:// or https://")
		}
	}

	return nil
}

func validPorts(field string, ports []int) error {
	for _, p := range ports {
		if p < 1 || p > 65535 {
			return errors.Wrap(errors.ErrInvalidConfig, "%s contains invalid port %d", field, p)
		}
	}
	return nil
}
