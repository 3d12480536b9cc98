package config

import "time"

const (
	envScoreboardURL   = "SCOREBOARD_URL"
	envBoxScoreURL     = "BOXSCORE_URL"
	envUserAgent       = "USER_AGENT"
	envHTTPTimeout     = "HTTP_TIMEOUT"
	envReportTimezone  = "REPORT_TIMEZONE"
	envSpreadsheetID   = "SPREADSHEET_ID"
	envWorksheet       = "WORKSHEET"
	envCredentialsPath = "CREDENTIALS_PATH"
	envLogFile         = "LOG_FILE"
	envLogLevel        = "LOG_LEVEL"
)

const (
	defaultScoreboardURL = "https://www.espn.com/wnba/scoreboard/_/date/%s"
	defaultBoxScoreURL   = "https://www.espn.com/wnba/boxscore?gameId=%s"
	defaultUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/90.0.4430.212 Safari/537.36"
	defaultHTTPTimeout   = 30 * time.Second
	defaultSpreadsheetID = "1Y7xom2jOLWYLzDlLsVYWZngs0JnnHjw5zZ7mR6GMjkQ"
	defaultWorksheet     = "2024_scores"
	defaultLogFile       = "logs/box_score_scraper.log"
	defaultLogLevel      = "info"

	// FallbackCredentialsPath is where container deployments mount the key.
	FallbackCredentialsPath = "/app/resources/credentials.json"
	dotEnvFile              = ".env"
)
