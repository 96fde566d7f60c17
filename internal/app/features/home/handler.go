package home

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the landing page. The page itself is static; it calls
// /members and /dashboard/{id} from the browser.
type Handler struct {
	Title string
	Log   *zap.Logger
}

func NewHandler(title string, logger *zap.Logger) *Handler {
	return &Handler{Title: title, Log: logger}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Title string
	}{
		Title: h.Title,
	}

	templates.Render(w, r, "home", data)
}
