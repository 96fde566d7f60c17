// internal/app/features/dashboard/routes.go
package dashboard

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted at /dashboard.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{member_id}", h.ServeDashboard)
	r.Get("/{member_id}/report", h.ServeReport)
	return r
}
