// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// ports, TLS, logging level and request limits; AppConfig covers where the
// member sheet lives and how its columns are read.
type AppConfig struct {
	// Source selection: "sheets" (Google Sheets API) or "file" (.xlsx/.csv).
	SourceType string

	// Google Sheets
	SheetsCredentialsFile string
	SheetsSpreadsheetID   string
	SheetsRange           string

	// Local workbook
	FilePath  string
	FileSheet string

	// Sheet layout
	KeyColumn    int
	HeaderRows   int
	CoachColumn  string
	DefaultValue string

	// Optional overrides
	ColumnMapFile       string
	SummaryTemplateFile string

	// Sheet access
	CacheTTL     time.Duration
	FetchTimeout time.Duration

	// Rate limiting on sheet-backed routes (0 requests disables)
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// CORS
	CORSAllowedOrigins []string
}
