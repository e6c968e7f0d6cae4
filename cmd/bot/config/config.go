// Package config загружает конфигурацию Telegram-бота.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// ColumnWidths определяет ширину колонок для текстового вывода рейтингов.
type ColumnWidths struct {
	Name  int `yaml:"name"`
	Count int `yaml:"count"`
}

// BotConfig содержит конфигурацию для Telegram-бота
type BotConfig struct {
	Token       string        `yaml:"token"`
	BackendURL  string        `yaml:"backend_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	// MaxFileSizeMB ограничивает размер принимаемого архива.
	MaxFileSizeMB int `yaml:"max_file_size_mb"`
	// ExcelThreshold - начиная с такого числа строк в рейтингах к ответу
	// прикладывается XLSX.
	ExcelThreshold int          `yaml:"excel_threshold"`
	Render         ColumnWidths `yaml:"render"`
}

// Logging содержит конфигурацию логирования бота
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config является оберткой для соответствия структуре YAML файла.
type Config struct {
	Bot     BotConfig `yaml:"bot"`
	Logging Logging   `yaml:"logging"`
}

// LoadBotConfig загружает конфигурацию бота из указанного файла.
// Токен может быть задан переменной окружения BOT_TOKEN (в том числе из .env).
func LoadBotConfig(filename string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bot config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// допускается конфигурация только через окружение
	default:
		return nil, fmt.Errorf("failed to read bot config file %s: %w", filename, err)
	}

	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Bot.Token = v
	}
	if v := os.Getenv("BOT_BACKEND_URL"); v != "" {
		cfg.Bot.BackendURL = v
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults заполняет незаданные значения значениями по умолчанию.
func (c *Config) ApplyDefaults() {
	b := &c.Bot
	if b.BackendURL == "" {
		b.BackendURL = DefaultBackendURL
	}
	if b.HTTPTimeout == 0 {
		b.HTTPTimeout = DefaultHTTPTimeout
	}
	if b.MaxFileSizeMB == 0 {
		b.MaxFileSizeMB = DefaultMaxFileSizeMB
	}
	if b.ExcelThreshold == 0 {
		b.ExcelThreshold = DefaultExcelThreshold
	}
	if b.Render.Name == 0 {
		b.Render.Name = DefaultNameColumnWidth
	}
	if b.Render.Count == 0 {
		b.Render.Count = DefaultCountColumnWidth
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
}

// MaxFileBytes возвращает ограничение размера архива в байтах.
func (c *BotConfig) MaxFileBytes() int64 {
	return int64(c.MaxFileSizeMB) << 20
}

// Validate проверяет корректность конфигурации бота.
func (c *BotConfig) Validate() error {
	if c.Token == "" || c.Token == "YOUR_TELEGRAM_BOT_TOKEN" {
		return fmt.Errorf("bot.token is not configured")
	}
	if c.BackendURL == "" {
		return fmt.Errorf("bot.backend_url cannot be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("bot.http_timeout must be positive")
	}
	if c.MaxFileSizeMB <= 0 {
		return fmt.Errorf("bot.max_file_size_mb must be positive")
	}
	if c.ExcelThreshold <= 0 {
		return fmt.Errorf("bot.excel_threshold must be positive")
	}
	if c.Render.Name <= 0 || c.Render.Count <= 0 {
		return fmt.Errorf("bot.render column widths must be positive")
	}
	return nil
}
