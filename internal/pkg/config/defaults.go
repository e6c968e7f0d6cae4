package config

import "time"

// Default values for configuration.
const (
	// Server defaults
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxUploadSizeMB = 50

	// Processing defaults
	DefaultTopN            = 10
	DefaultCacheTTL        = 60 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute

	// Output defaults
	DefaultOutputDir       = "output"
	DefaultWordcloudWidth  = 1200
	DefaultWordcloudHeight = 800
	DefaultWordcloudWords  = 150
	DefaultBackground      = "#ffffff"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// DefaultConfigFile - файл конфигурации, который ищется в рабочем каталоге.
	DefaultConfigFile = "config.yml"
)
