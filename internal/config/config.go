package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	CRM      CRMConfig      `yaml:"crm"`
	Sync     SyncConfig     `yaml:"sync"`
	Server   ServerConfig   `yaml:"server"`
	LogLevel string         `yaml:"log_level"`
}

type RabbitMQConfig struct {
	// URL empty disables event publishing.
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// CRMConfig describes the remote deal source and its request discipline.
type CRMConfig struct {
	BaseURL string `yaml:"base_url"`
	// APIToken authenticates every request. A missing token is a
	// configuration error that fails a run before any network call.
	APIToken string        `yaml:"api_token"`
	PageSize int           `yaml:"page_size"`
	MaxPages int           `yaml:"max_pages"` // safety cap on the pagination walk
	Timeout  time.Duration `yaml:"timeout"`   // per attempt
	// CallTimeout bounds one logical call including all its retries.
	CallTimeout time.Duration `yaml:"call_timeout"`
	Retry       RetryConfig   `yaml:"retry"`
	// FieldMapVersion labels the custom-field allow-list below.
	FieldMapVersion string `yaml:"field_map_version"`
	// FieldMap maps semantic attribute names to CRM custom-field ids.
	FieldMap map[string]string `yaml:"field_map"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type SyncConfig struct {
	// Interval zero disables the periodic scheduler; runs are then
	// trigger-only.
	Interval time.Duration `yaml:"interval"`
	// RunTimeout is the hard wall-clock budget for one run, tuned to the
	// hosting platform's execution ceiling.
	RunTimeout  time.Duration `yaml:"run_timeout"`
	Concurrency int           `yaml:"concurrency"`
	// IncrementalWindow bounds how far back an incremental scan looks when
	// no completed run exists to anchor on.
	IncrementalWindow time.Duration `yaml:"incremental_window"`
	// ScheduledAllDeals makes cron-driven runs full scans.
	ScheduledAllDeals bool `yaml:"scheduled_all_deals"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// CronSecret is the shared bearer secret for scheduled trigger calls.
	CronSecret string `yaml:"cron_secret"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "deal_syncer"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "deals"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "dashboard_deals"
	}
	if c.CRM.PageSize == 0 {
		c.CRM.PageSize = 100
	}
	if c.CRM.MaxPages == 0 {
		c.CRM.MaxPages = 100
	}
	if c.CRM.Timeout == 0 {
		c.CRM.Timeout = 10 * time.Second
	}
	if c.CRM.CallTimeout == 0 {
		c.CRM.CallTimeout = 30 * time.Second
	}
	if c.CRM.Retry.MaxAttempts == 0 {
		c.CRM.Retry.MaxAttempts = 3
	}
	if c.CRM.Retry.InitialBackoff == 0 {
		c.CRM.Retry.InitialBackoff = 1 * time.Second
	}
	if c.CRM.Retry.MaxBackoff == 0 {
		c.CRM.Retry.MaxBackoff = 5 * time.Second
	}
	if c.Sync.RunTimeout == 0 {
		c.Sync.RunTimeout = 5 * time.Minute
	}
	if c.Sync.Concurrency == 0 {
		c.Sync.Concurrency = 5
	}
	if c.Sync.IncrementalWindow == 0 {
		c.Sync.IncrementalWindow = 48 * time.Hour
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
