// Package config предоставляет управление конфигурацией приложения
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Server содержит конфигурацию HTTP-сервера
type Server struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadSizeMB int64         `yaml:"max_upload_size_mb"`
}

// Processing содержит конфигурацию анализа
type Processing struct {
	TopN            int           `yaml:"top_n"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	// ExtraStopwordsFile - файл с дополнительными стоп-словами, по одному на строку.
	ExtraStopwordsFile string `yaml:"extra_stopwords_file"`
}

// Wordcloud содержит параметры изображения облака слов
type Wordcloud struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	MaxWords   int    `yaml:"max_words"`
	Background string `yaml:"background"`
}

// Output содержит конфигурацию артефактов отчета
type Output struct {
	Dir       string    `yaml:"dir"`
	FontPath  string    `yaml:"font_path"`
	Render    bool      `yaml:"render"`
	XLSX      bool      `yaml:"xlsx"`
	Wordcloud Wordcloud `yaml:"wordcloud"`
}

// Logging содержит конфигурацию логирования
type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Config содержит конфигурацию приложения
type Config struct {
	Server     Server     `yaml:"server"`
	Processing Processing `yaml:"processing"`
	Output     Output     `yaml:"output"`
	Logging    Logging    `yaml:"logging"`
}

func defaultConfig() *Config {
	return &Config{
		Server: Server{
			Host:            DefaultServerHost,
			Port:            DefaultServerPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			MaxUploadSizeMB: DefaultMaxUploadSizeMB,
		},
		Processing: Processing{
			TopN:            DefaultTopN,
			CacheTTL:        DefaultCacheTTL,
			CleanupInterval: DefaultCleanupInterval,
		},
		Output: Output{
			Dir:    DefaultOutputDir,
			Render: true,
			XLSX:   true,
			Wordcloud: Wordcloud{
				Width:      DefaultWordcloudWidth,
				Height:     DefaultWordcloudHeight,
				MaxWords:   DefaultWordcloudWords,
				Background: DefaultBackground,
			},
		},
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return defaultConfig()
}

// LoadConfig загружает конфигурацию: значения по умолчанию, затем YAML-файл
// (если он существует), затем переменные окружения, в том числе из .env.
// Пустой path означает config.yml в рабочем каталоге.
func LoadConfig(path string) (*Config, error) {
	// .env необязателен, переменные окружения могут быть заданы напрямую
	_ = godotenv.Load()

	if path == "" {
		path = DefaultConfigFile
	}

	cfg := defaultConfig()
	if err := loadFromYAML(path, cfg); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию из env: %w", err)
	}
	return cfg, nil
}

// loadFromYAML накладывает значения из YAML-файла на cfg.
// Отсутствие файла ошибкой не считается.
func loadFromYAML(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("не удалось прочитать файл конфигурации %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("не удалось разобрать YAML конфигурацию: %w", err)
	}
	return nil
}

// applyEnv переопределяет значения конфигурации переменными окружения.
func applyEnv(cfg *Config) error {
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Output.Dir = getEnv("CHATSTATS_OUTPUT_DIR", cfg.Output.Dir)
	cfg.Output.FontPath = getEnv("CHATSTATS_FONT_PATH", cfg.Output.FontPath)
	cfg.Processing.ExtraStopwordsFile = getEnv("CHATSTATS_STOPWORDS_FILE", cfg.Processing.ExtraStopwordsFile)
	cfg.Logging.Level = getEnv("CHATSTATS_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("CHATSTATS_LOG_FORMAT", cfg.Logging.Format)

	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("недопустимый SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}

	if v := os.Getenv("CHATSTATS_TOP_N"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("недопустимый CHATSTATS_TOP_N: %w", err)
		}
		cfg.Processing.TopN = n
	}

	if v := os.Getenv("CHATSTATS_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("недопустимый CHATSTATS_CACHE_TTL: %w", err)
		}
		cfg.Processing.CacheTTL = ttl
	}

	return nil
}

// Address возвращает адрес сервера в формате "host:port"
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MaxUploadBytes возвращает ограничение размера загружаемого архива в байтах.
func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadSizeMB << 20
}

// Validate проверяет, являются ли значения конфигурации допустимыми
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port должен быть действительным номером порта (1-65535)")
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout должно быть положительным")
	}

	if c.Server.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("server.max_upload_size_mb должно быть положительным")
	}

	if c.Processing.TopN <= 0 {
		return fmt.Errorf("processing.top_n должно быть положительным целым числом")
	}

	if c.Processing.CacheTTL <= 0 {
		return fmt.Errorf("processing.cache_ttl должно быть положительным")
	}

	if c.Processing.CleanupInterval <= 0 {
		return fmt.Errorf("processing.cleanup_interval должно быть положительным")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir не может быть пустым")
	}

	if c.Output.Wordcloud.Width <= 0 || c.Output.Wordcloud.Height <= 0 {
		return fmt.Errorf("output.wordcloud.width и height должны быть положительными")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// all good
	default:
		return fmt.Errorf("logging.level должен быть одним из: debug, info, warn, error")
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format должен быть одним из: text, json")
	}

	return nil
}

// getEnv извлекает значение переменной окружения или возвращает значение по умолчанию, если она не установлена
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
