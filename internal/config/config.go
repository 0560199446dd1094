package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

const (
	sourceSheetIDEnv     = "SOURCE_SHEET_ID"
	destSheetIDEnv       = "DEST_SHEET_ID"
	sheetsBackendEnv     = "SHEETS_BACKEND"
	credentialsFileEnv   = "SHEETS_CREDENTIALS_FILE"
	workbookDirEnv       = "WORKBOOK_DIR"
	layoutFileEnv        = "DEMAND_LAYOUT_FILE"
	portEnv              = "PORT"
	logLevelEnv          = "LOG_LEVEL"
	defaultPort          = "3000"
	defaultWorkbookDir   = "."
	defaultSheetsBackend = BackendGoogle
)

// Backend selects the SpreadsheetGateway implementation.
type Backend string

const (
	BackendGoogle   Backend = "google"
	BackendWorkbook Backend = "workbook"
)

type Config struct {
	Port     string
	LogLevel slog.Level
	Sheets   SheetsConfig
	Layout   domain.Layout
	Redis    *RedisConfig
}

type SheetsConfig struct {
	SourceSheetID   string
	DestSheetID     string
	Backend         Backend
	CredentialsFile string
	WorkbookDir     string
}

func Load() (*Config, error) {
	port := os.Getenv(portEnv)
	if port == "" {
		port = defaultPort
	}

	backend := Backend(strings.ToLower(os.Getenv(sheetsBackendEnv)))
	if backend == "" {
		backend = defaultSheetsBackend
	}

	workbookDir := os.Getenv(workbookDirEnv)
	if workbookDir == "" {
		workbookDir = defaultWorkbookDir
	}

	layout, err := LoadLayout(os.Getenv(layoutFileEnv))
	if err != nil {
		return nil, err
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     port,
		LogLevel: parseLogLevel(os.Getenv(logLevelEnv)),
		Sheets: SheetsConfig{
			SourceSheetID:   strings.TrimSpace(os.Getenv(sourceSheetIDEnv)),
			DestSheetID:     strings.TrimSpace(os.Getenv(destSheetIDEnv)),
			Backend:         backend,
			CredentialsFile: os.Getenv(credentialsFileEnv),
			WorkbookDir:     workbookDir,
		},
		Layout: layout,
		Redis:  redisConfig,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
