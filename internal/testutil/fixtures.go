package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/dalemusser/twindash/internal/app/store/sheet"
	"github.com/dalemusser/twindash/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// SheetWidth is wide enough to hold every default metric column (BJ = 62).
const SheetWidth = 62

// MemberRow builds a full-width row for member id with the default metric
// columns filled in and coach placed in CoachColumn.
func MemberRow(id, coach string) []string {
	row := make([]string, SheetWidth)
	row[0] = "1"
	row[1] = id
	row[CoachColumn] = coach
	row[11] = "62%"
	row[12] = "4"
	row[15] = "8.1"
	row[19] = "6.4"
	row[21] = "212"
	row[23] = "198"
	row[27] = "33.2"
	row[28] = "31.0"
	row[30] = "138"
	row[31] = "126"
	row[32] = "88"
	row[33] = "82"
	row[37] = "71%"
	row[41] = "6.5"
	row[52] = "Metformin 500mg"
	row[53] = "22"
	row[54] = "38"
	row[59] = "14"
	row[60] = "12"
	return row
}

// CoachColumn is where MemberTable puts the "Coach" header.
const CoachColumn = 4

// MemberTable returns a header row plus members A1, A2, a duplicate A1,
// and a short hand-edited row for B7 that stops after column 20.
func MemberTable() models.Table {
	header := make([]string, SheetWidth)
	header[1] = "MEMBER_ID"
	header[CoachColumn] = "Coach"

	dup := MemberRow("A1", "Sam")
	dup[11] = "duplicate"

	short := MemberRow("B7", "Ana")[:20]

	return models.Table{
		header,
		MemberRow("A1", "Sam"),
		MemberRow("A2", "Ana"),
		dup,
		short,
	}
}

// ErrStubUnavailable is the failure StubSource returns from FailingSource.
var ErrStubUnavailable = errors.New("stub: transport closed")

// StubSource is a sheet.Source returning a fixed table or error.
type StubSource struct {
	Table models.Table
	Err   error
	calls atomic.Int32
}

// NewStubSource returns a source serving t.
func NewStubSource(t models.Table) *StubSource {
	return &StubSource{Table: t}
}

// FailingSource returns a source whose every Fetch fails like a real
// adapter would.
func FailingSource() *StubSource {
	return &StubSource{Err: &sheet.FetchError{Source: "stub", Op: "read", Err: ErrStubUnavailable}}
}

// Fetch implements sheet.Source.
func (s *StubSource) Fetch(ctx context.Context) (models.Table, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Table, nil
}

// Describe implements sheet.Source.
func (s *StubSource) Describe() string { return "stub" }

// Calls reports how many times Fetch ran.
func (s *StubSource) Calls() int { return int(s.calls.Load()) }
