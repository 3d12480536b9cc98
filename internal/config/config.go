// Package config builds the run configuration from the environment.
//
// Load is called once by the entry point; the resulting Config is passed to
// every component explicitly.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for one ingestion run.
type Config struct {
	ScoreboardURL string
	BoxScoreURL   string
	UserAgent     string
	HTTPTimeout   time.Duration

	// Location decides which calendar day "yesterday" is.
	Location *time.Location

	SpreadsheetID string
	Worksheet     string
	// CredentialPaths are tried in order; the first existing file wins.
	CredentialPaths []string

	LogFile  string
	LogLevel string
}

// Load reads a .env file from the working directory when one exists, then
// builds the configuration from environment variables with defaults.
func Load() (Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return Config{}, err
	}

	return Config{
		ScoreboardURL:   envOrDefault(envScoreboardURL, defaultScoreboardURL),
		BoxScoreURL:     envOrDefault(envBoxScoreURL, defaultBoxScoreURL),
		UserAgent:       envOrDefault(envUserAgent, defaultUserAgent),
		HTTPTimeout:     durationEnvOrDefault(envHTTPTimeout, defaultHTTPTimeout),
		Location:        locationEnvOrDefault(envReportTimezone, time.Local),
		SpreadsheetID:   envOrDefault(envSpreadsheetID, defaultSpreadsheetID),
		Worksheet:       envOrDefault(envWorksheet, defaultWorksheet),
		CredentialPaths: credentialPaths(os.Getenv(envCredentialsPath), executableDir()),
		LogFile:         envOrDefault(envLogFile, defaultLogFile),
		LogLevel:        envOrDefault(envLogLevel, defaultLogLevel),
	}, nil
}

// loadDotEnv applies path to the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// credentialPaths lists the candidate credential files: an explicit override,
// the resources directory next to the binary, then the container mount.
func credentialPaths(override, exeDir string) []string {
	paths := make([]string, 0, 3)
	if override != "" {
		paths = append(paths, override)
	}
	if exeDir != "" {
		paths = append(paths, filepath.Join(exeDir, "..", "resources", "credentials.json"))
	}
	return append(paths, FallbackCredentialsPath)
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return ""
		}
		return wd
	}
	return filepath.Dir(exe)
}
