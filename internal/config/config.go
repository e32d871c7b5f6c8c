package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reporthub/reporthub/internal/i18n"
	"github.com/reporthub/reporthub/internal/report"
)

// Config holds runtime configuration for ReportHub
type Config struct {
	LogLevel  string `json:"log_level" yaml:"log_level" env:"REPORTHUB_LOG_LEVEL"`
	LogFile   string `json:"log_file" yaml:"log_file" env:"REPORTHUB_LOG_FILE"`
	LogFormat string `json:"log_format" yaml:"log_format" env:"REPORTHUB_LOG_FORMAT"` // "json" or "console"

	// Language of notification texts ("en", "es")
	Language string `json:"language" yaml:"language" env:"REPORTHUB_LANGUAGE"`

	// Metrics
	MetricsEnabled bool `json:"metrics_enabled" yaml:"metrics_enabled" env:"REPORTHUB_METRICS_ENABLED"`
	MetricsPort    int  `json:"metrics_port" yaml:"metrics_port" env:"REPORTHUB_METRICS_PORT"`

	// InfluxDB (push)
	InfluxURL      string        `json:"influx_url" yaml:"influx_url" env:"REPORTHUB_INFLUX_URL"`
	InfluxToken    string        `json:"influx_token" yaml:"influx_token" env:"REPORTHUB_INFLUX_TOKEN"`
	InfluxOrg      string        `json:"influx_org" yaml:"influx_org" env:"REPORTHUB_INFLUX_ORG"`
	InfluxBucket   string        `json:"influx_bucket" yaml:"influx_bucket" env:"REPORTHUB_INFLUX_BUCKET"`
	InfluxInterval time.Duration `json:"influx_interval" yaml:"influx_interval" env:"REPORTHUB_INFLUX_INTERVAL"`

	// Notification channel credentials
	Channels Channels `json:"channels" yaml:"channels" envPrefix:"REPORTHUB_"`

	// Demonstration run inputs
	Demo Demo `json:"demo" yaml:"demo"`
}

// Channels groups the connection settings of every notification channel.
type Channels struct {
	Email    EmailConfig    `json:"email" yaml:"email" envPrefix:"EMAIL_"`
	WhatsApp WhatsAppConfig `json:"whatsapp" yaml:"whatsapp" envPrefix:"WHATSAPP_"`
	Telegram TelegramConfig `json:"telegram" yaml:"telegram" envPrefix:"TELEGRAM_"`
}

// EmailConfig holds SMTP settings.
type EmailConfig struct {
	Host string `json:"host" yaml:"host" env:"HOST"`
	Port int    `json:"port" yaml:"port" env:"PORT"`
	User string `json:"user" yaml:"user" env:"USER"`
	Pass string `json:"pass" yaml:"pass" env:"PASS"`
}

// WhatsAppConfig holds WhatsApp API credentials.
type WhatsAppConfig struct {
	APIKey string `json:"api_key" yaml:"api_key" env:"API_KEY"`
	Phone  string `json:"phone" yaml:"phone" env:"PHONE"`
}

// TelegramConfig holds Telegram bot credentials.
type TelegramConfig struct {
	BotToken string `json:"bot_token" yaml:"bot_token" env:"BOT_TOKEN"`
	ChatID   string `json:"chat_id" yaml:"chat_id" env:"CHAT_ID"`
}

// Demo describes what a demonstration run generates, sends and decorates.
type Demo struct {
	Data       string                `json:"data" yaml:"data" env:"REPORTHUB_DEMO_DATA"`
	Styling    report.StylingOptions `json:"styling" yaml:"styling"`
	Deliveries []Delivery            `json:"deliveries" yaml:"deliveries" env:"-"` // file only
	Decoration Decoration            `json:"decoration" yaml:"decoration"`
}

// Delivery is one report to generate and send.
type Delivery struct {
	Format    string `json:"format" yaml:"format"`
	Recipient string `json:"recipient" yaml:"recipient"`
	Channel   string `json:"channel" yaml:"channel"`
}

// Decoration holds the values of the Basic -> Color -> Font -> Border chain.
type Decoration struct {
	Content     string                `json:"content" yaml:"content"`
	Styling     report.StylingOptions `json:"styling" yaml:"styling"`
	Color       string                `json:"color" yaml:"color"`
	Background  string                `json:"background" yaml:"background"`
	FontFamily  string                `json:"font_family" yaml:"font_family"`
	FontSize    int                   `json:"font_size" yaml:"font_size"`
	FontWeight  string                `json:"font_weight" yaml:"font_weight"`
	BorderStyle string                `json:"border_style" yaml:"border_style"`
	BorderWidth int                   `json:"border_width" yaml:"border_width"`
	BorderColor string                `json:"border_color" yaml:"border_color"`
}

// DefaultConfig returns the demonstration configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "json",
		Language:  i18n.DefaultLanguage,

		// Metrics defaults (opt-in)
		MetricsEnabled: false,
		MetricsPort:    9090,

		InfluxInterval: 1 * time.Minute,

		Channels: Channels{
			Email:    EmailConfig{Host: "smtp.gmail.com", Port: 587, User: "user@gmail.com", Pass: "password"},
			WhatsApp: WhatsAppConfig{APIKey: "api_key_123", Phone: "+1234567890"},
			Telegram: TelegramConfig{BotToken: "bot_token_456", ChatID: "123456789"},
		},

		Demo: Demo{
			Data:    "Informe del Proyecto XYZ - Q4 2024",
			Styling: *report.NewStylingOptions("Arial", 12, "blue"),
			Deliveries: []Delivery{
				{Format: "pdf", Recipient: "usuario@email.com", Channel: "email"},
				{Format: "excel", Recipient: "+1234567890", Channel: "whatsapp"},
				{Format: "word", Recipient: "123456789", Channel: "telegram"},
			},
			Decoration: Decoration{
				Content:     "Datos del proyecto",
				Styling:     *report.NewStylingOptions("Arial", 12, "black"),
				Color:       "blue",
				Background:  "lightblue",
				FontFamily:  "Times New Roman",
				FontSize:    14,
				FontWeight:  "bold",
				BorderStyle: "solid",
				BorderWidth: 2,
				BorderColor: "black",
			},
		},
	}
}

// Validate returns a list of non-fatal configuration warnings, such as
// incomplete channel credentials or deliveries missing a field.
func (c *Config) Validate() []string {
	var warnings []string
	checks := []struct {
		cond bool
		msg  string
	}{
		{c.Channels.Email.Host == "", "email host is empty; email deliveries will only be simulated without an SMTP target"},
		{c.Channels.Email.Host != "" && c.Channels.Email.Port <= 0, "email host provided but port is not positive"},
		{c.Channels.WhatsApp.APIKey == "", "whatsapp api key is missing"},
		{c.Channels.Telegram.BotToken != "" && c.Channels.Telegram.ChatID == "", "telegram bot token provided but chat id is missing"},
		{c.Channels.Telegram.BotToken == "" && c.Channels.Telegram.ChatID != "", "telegram chat id provided but bot token is missing"},
		{c.MetricsEnabled && (c.MetricsPort <= 0 || c.MetricsPort > 65535), fmt.Sprintf("metrics enabled but port %d is invalid", c.MetricsPort)},
		{c.InfluxURL != "" && c.InfluxBucket == "", "influx url provided but bucket is missing"},
	}
	for _, ch := range checks {
		if ch.cond {
			warnings = append(warnings, ch.msg)
		}
	}
	if tr, err := i18n.New(); err == nil && !tr.Supported(c.Language) {
		warnings = append(warnings, fmt.Sprintf("language %q has no translations; falling back to %q", c.Language, i18n.DefaultLanguage))
	}
	for i, d := range c.Demo.Deliveries {
		if d.Format == "" || d.Recipient == "" || d.Channel == "" {
			warnings = append(warnings, fmt.Sprintf("delivery %d is incomplete (format=%q recipient=%q channel=%q)", i, d.Format, d.Recipient, d.Channel))
		}
	}
	return warnings
}

// LoadConfigFromFile loads config from a YAML/JSON file on top of the defaults
func LoadConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
