// internal/app/features/members/handler.go
package members

import (
	"net/http"

	"github.com/dalemusser/twindash/internal/app/store/sheet"
	"github.com/dalemusser/twindash/internal/app/system/rowlookup"
	"github.com/dalemusser/twindash/internal/app/system/timeouts"
	"github.com/dalemusser/twindash/internal/app/system/webjson"
	"go.uber.org/zap"
)

// Handler serves the member ID list.
type Handler struct {
	Source     sheet.Source
	HeaderRows int // rows at the top of the sheet that are not members
	KeyColumn  int // zero-based column holding MEMBER_ID
	Log        *zap.Logger
}

// NewHandler constructs a members Handler.
func NewHandler(src sheet.Source, headerRows, keyColumn int, logger *zap.Logger) *Handler {
	return &Handler{
		Source:     src,
		HeaderRows: headerRows,
		KeyColumn:  keyColumn,
		Log:        logger,
	}
}

// ServeList handles GET /members.
//
// On success: 200 and
//
//	{ "members": ["A1", "A2", "A1"] }
//
// IDs come back in sheet order without de-duplication.
// On source failure: 500 and { "error": "…" }.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "sheet fetch")
	defer cancel()

	table, err := h.Source.Fetch(ctx)
	if err != nil {
		h.Log.Error("members: sheet fetch failed", zap.String("source", h.Source.Describe()), zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "Member sheet is unavailable.")
		return
	}

	webjson.Write(w, http.StatusOK, listResponse{
		Members: rowlookup.ListColumn(table, h.HeaderRows, h.KeyColumn),
	})
}
