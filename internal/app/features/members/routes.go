// internal/app/features/members/routes.go
package members

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted at /members.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	return r
}
