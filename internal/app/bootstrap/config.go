// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/twindash/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Source types accepted by source_type.
const (
	SourceSheets = "sheets"
	SourceFile   = "file"
)

// appConfigKeys defines the configuration keys for twindash.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: sheets_spreadsheet_id, key_column, etc.
//   - Environment variables: TWINDASH_SHEETS_SPREADSHEET_ID, TWINDASH_KEY_COLUMN, etc.
//   - Command-line flags: --sheets_spreadsheet_id, --key_column, etc.
var appConfigKeys = []config.AppKey{
	{Name: "source_type", Default: SourceSheets, Desc: "Member sheet source: 'sheets' or 'file'"},

	// Google Sheets
	{Name: "sheets_credentials_file", Default: "credentials.json", Desc: "Path to the service-account JSON key"},
	{Name: "sheets_spreadsheet_id", Default: "1Kjo-jfEYdPc_KFoCa4kL_UtBrochTiBLFFYiPQ88lio", Desc: "Spreadsheet ID"},
	{Name: "sheets_range", Default: "'Copy of No CGM >2D - Vig, Vin'!A1:BJ300", Desc: "A1 range holding the member table"},

	// Local workbook
	{Name: "file_path", Default: "", Desc: "Path to a .xlsx or .csv export (source_type=file)"},
	{Name: "file_sheet", Default: "", Desc: "Worksheet name inside the .xlsx (blank means the first)"},

	// Sheet layout
	{Name: "key_column", Default: 1, Desc: "Zero-based column holding MEMBER_ID"},
	{Name: "header_rows", Default: 1, Desc: "Rows above the member data"},
	{Name: "coach_column", Default: "Coach", Desc: "Header name of the coach column"},
	{Name: "default_value", Default: models.DefaultValue, Desc: "Text used for missing cells"},

	// Overrides
	{Name: "column_map_file", Default: "", Desc: "YAML file overriding metric column positions"},
	{Name: "summary_template_file", Default: "", Desc: "text/template file replacing the built-in summary"},

	// Sheet access
	{Name: "cache_ttl", Default: "0s", Desc: "Reuse a fetched sheet for this long (0 re-reads every request)"},
	{Name: "fetch_timeout", Default: "15s", Desc: "Deadline for one sheet read"},

	// Rate limiting
	{Name: "rate_limit_requests", Default: 60, Desc: "Sheet-backed requests allowed per client per window (0 disables)"},
	{Name: "rate_limit_window", Default: "1m", Desc: "Rate limit window"},

	// CORS
	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated allowed origins"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, TWINDASH_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TWINDASH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		SourceType: strings.ToLower(strings.TrimSpace(appValues.String("source_type"))),

		SheetsCredentialsFile: appValues.String("sheets_credentials_file"),
		SheetsSpreadsheetID:   appValues.String("sheets_spreadsheet_id"),
		SheetsRange:           appValues.String("sheets_range"),

		FilePath:  appValues.String("file_path"),
		FileSheet: appValues.String("file_sheet"),

		KeyColumn:    appValues.Int("key_column"),
		HeaderRows:   appValues.Int("header_rows"),
		CoachColumn:  appValues.String("coach_column"),
		DefaultValue: appValues.String("default_value"),

		ColumnMapFile:       appValues.String("column_map_file"),
		SummaryTemplateFile: appValues.String("summary_template_file"),

		CacheTTL:     appValues.Duration("cache_ttl", 0),
		FetchTimeout: appValues.Duration("fetch_timeout", 15*time.Second),

		RateLimitRequests: appValues.Int("rate_limit_requests"),
		RateLimitWindow:   appValues.Duration("rate_limit_window", time.Minute),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Credentials are not opened here; a missing key file is reported per
// request by the source so the service still answers /health.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var errs []error

	switch appCfg.SourceType {
	case SourceSheets:
		if appCfg.SheetsSpreadsheetID == "" {
			errs = append(errs, errors.New("sheets_spreadsheet_id is required when source_type=sheets"))
		}
		if appCfg.SheetsRange == "" {
			errs = append(errs, errors.New("sheets_range is required when source_type=sheets"))
		}
	case SourceFile:
		if appCfg.FilePath == "" {
			errs = append(errs, errors.New("file_path is required when source_type=file"))
		}
	default:
		errs = append(errs, fmt.Errorf("source_type must be %q or %q, got %q", SourceSheets, SourceFile, appCfg.SourceType))
	}

	if appCfg.KeyColumn < 0 {
		errs = append(errs, fmt.Errorf("key_column must be >= 0, got %d", appCfg.KeyColumn))
	}
	if appCfg.HeaderRows < 0 {
		errs = append(errs, fmt.Errorf("header_rows must be >= 0, got %d", appCfg.HeaderRows))
	}
	if strings.TrimSpace(appCfg.CoachColumn) == "" {
		errs = append(errs, errors.New("coach_column must not be blank"))
	}
	if appCfg.CacheTTL < 0 {
		errs = append(errs, errors.New("cache_ttl must not be negative"))
	}
	if appCfg.FetchTimeout <= 0 {
		errs = append(errs, errors.New("fetch_timeout must be positive"))
	}
	if appCfg.RateLimitRequests < 0 {
		errs = append(errs, errors.New("rate_limit_requests must not be negative"))
	}
	if appCfg.RateLimitRequests > 0 && appCfg.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("rate_limit_window must be positive when rate limiting is on"))
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
