package config

import "time"

// Значения по умолчанию для бота.
const (
	DefaultBackendURL       = "http://localhost:8080"
	DefaultHTTPTimeout      = 2 * time.Minute
	DefaultMaxFileSizeMB    = 20
	DefaultExcelThreshold   = 10
	DefaultNameColumnWidth  = 24
	DefaultCountColumnWidth = 6
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
)
