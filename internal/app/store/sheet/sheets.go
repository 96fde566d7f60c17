package sheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dalemusser/twindash/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsConfig locates a range in a Google spreadsheet.
type SheetsConfig struct {
	CredentialsFile string // service-account JSON key
	SpreadsheetID   string
	Range           string // A1 notation, e.g. 'Tab name'!A1:BJ300

	// ClientOptions replace the service-account credentials when set.
	// Tests point these at a local server.
	ClientOptions []option.ClientOption
}

// SheetsSource reads a range through the Google Sheets v4 API.
type SheetsSource struct {
	cfg SheetsConfig
	log *zap.Logger

	mu  sync.Mutex
	svc *sheets.Service
}

// NewSheetsSource returns a source for cfg. Credentials are read on the
// first Fetch, so a missing key file is reported per request rather than
// preventing startup.
func NewSheetsSource(cfg SheetsConfig, logger *zap.Logger) *SheetsSource {
	return &SheetsSource{cfg: cfg, log: logger}
}

// Describe implements Source.
func (s *SheetsSource) Describe() string {
	return "google-sheets:" + s.cfg.SpreadsheetID
}

// Fetch implements Source.
func (s *SheetsSource) Fetch(ctx context.Context) (models.Table, error) {
	fetchID := uuid.NewString()
	start := time.Now()

	svc, err := s.service()
	if err != nil {
		s.log.Error("sheet fetch failed",
			zap.String("fetch_id", fetchID),
			zap.String("source", s.Describe()),
			zap.Error(err))
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, s.cfg.Range).Context(ctx).Do()
	if err != nil {
		fields := []zap.Field{
			zap.String("fetch_id", fetchID),
			zap.String("source", s.Describe()),
			zap.String("range", s.cfg.Range),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		}
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			fields = append(fields, zap.Int("status", gerr.Code))
		}
		s.log.Error("sheet fetch failed", fields...)
		return nil, &FetchError{Source: s.Describe(), Op: "read", Err: err}
	}

	table := make(models.Table, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		table[i] = cells
	}

	s.log.Debug("sheet fetched",
		zap.String("fetch_id", fetchID),
		zap.String("source", s.Describe()),
		zap.Int("rows", len(table)),
		zap.Duration("elapsed", time.Since(start)))
	return table, nil
}

// service builds the API client once. Failures are not remembered, so a
// key file dropped into place later is picked up on the next request.
func (s *SheetsSource) service() (*sheets.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.svc != nil {
		return s.svc, nil
	}

	opts := s.cfg.ClientOptions
	if len(opts) == 0 {
		data, err := os.ReadFile(s.cfg.CredentialsFile)
		if err != nil {
			return nil, &FetchError{Source: s.Describe(), Op: "credentials", Err: err}
		}
		jwt, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, &FetchError{Source: s.Describe(), Op: "credentials", Err: err}
		}
		// The token source outlives any single request.
		opts = []option.ClientOption{option.WithHTTPClient(jwt.Client(context.Background()))}
	}

	svc, err := sheets.NewService(context.Background(), opts...)
	if err != nil {
		return nil, &FetchError{Source: s.Describe(), Op: "connect", Err: err}
	}
	s.svc = svc
	return svc, nil
}
