package coaches

import (
	"errors"
	"net/http"

	"github.com/dalemusser/twindash/internal/app/store/sheet"
	"github.com/dalemusser/twindash/internal/app/system/rowlookup"
	"github.com/dalemusser/twindash/internal/app/system/timeouts"
	"github.com/dalemusser/twindash/internal/app/system/webjson"
	"go.uber.org/zap"
)

// Handler serves the list of coaches named in the sheet.
type Handler struct {
	Source     sheet.Source
	HeaderRows int    // rows at the top of the sheet that are not members
	Column     string // header text of the coach column
	Log        *zap.Logger
}

// NewHandler constructs a coaches Handler reading the column headed column.
func NewHandler(src sheet.Source, headerRows int, column string, logger *zap.Logger) *Handler {
	return &Handler{Source: src, HeaderRows: headerRows, Column: column, Log: logger}
}

type listResponse struct {
	Coaches []string `json:"coaches"`
}

// ServeList handles GET /coaches.
//
// Unlike the member list, the coach column is found by its header text.
// Values are de-duplicated, blanks dropped, and sorted.
// A missing column or source failure answers 500 with { "error": "…" }.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "sheet fetch")
	defer cancel()

	table, err := h.Source.Fetch(ctx)
	if err != nil {
		h.Log.Error("coaches: sheet fetch failed", zap.String("source", h.Source.Describe()), zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "Member sheet is unavailable.")
		return
	}

	coaches, err := rowlookup.DistinctValues(table, h.HeaderRows, h.Column)
	if errors.Is(err, rowlookup.ErrColumnNotFound) {
		h.Log.Error("coaches: column missing from header", zap.String("column", h.Column))
		webjson.Error(w, http.StatusInternalServerError, "Column '"+h.Column+"' not found in sheet.")
		return
	}
	if err != nil {
		h.Log.Error("coaches: listing failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	webjson.Write(w, http.StatusOK, listResponse{Coaches: coaches})
}
