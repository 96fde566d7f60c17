// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/twindash/internal/app/store/sheet"
	"github.com/dalemusser/twindash/internal/app/system/extract"
	"github.com/dalemusser/twindash/internal/app/system/narrative"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Options describes where member data lives in the sheet.
type Options struct {
	HeaderRows int             // rows skipped before member data
	KeyColumn  int             // zero-based MEMBER_ID column
	Mapping    extract.Mapping // metric field -> column(s)
	Default    string          // text for missing cells
}

// Handler serves member dashboards: metrics plus the narrative summary.
type Handler struct {
	Source   sheet.Source
	Opts     Options
	Renderer *narrative.Renderer
	Log      *zap.Logger
}

// NewHandler constructs a dashboard Handler.
func NewHandler(src sheet.Source, opts Options, renderer *narrative.Renderer, logger *zap.Logger) *Handler {
	return &Handler{
		Source:   src,
		Opts:     opts,
		Renderer: renderer,
		Log:      logger,
	}
}

// memberIDParam returns the decoded {member_id} segment. chi hands back the
// escaped form when the request carried one (A%2B2, DT%2F01), so it is
// unescaped here before it is compared with sheet cells. ok is false when
// the escape is malformed; raw is returned for messages.
func memberIDParam(r *http.Request) (id string, ok bool) {
	raw := chi.URLParam(r, "member_id")
	id, err := url.PathUnescape(raw)
	if err != nil {
		return raw, false
	}
	return id, true
}
