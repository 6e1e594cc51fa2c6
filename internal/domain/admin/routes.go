package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/artik0811/vkr-photostudio/internal/middleware"
	"github.com/artik0811/vkr-photostudio/internal/pkg/response"
)

// Routes returns the admin router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(h.jwtService))
		r.Use(middleware.RequireAdmin())

		r.Route("/photographers", func(r chi.Router) {
			r.Get("/", h.ListPhotographers)
			r.Post("/", h.CreatePhotographer)
			r.Post("/{id}/services", h.AssignService)
			r.Delete("/{id}/services/{serviceID}", h.UnassignService)
			r.Put("/{id}/working-hours", h.SetWorkingHours)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", h.ListServices)
			r.Post("/", h.CreateService)
		})
	})

	return r
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return pathInt64(w, r, "id")
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid id")
		return 0, false
	}
	return id, true
}
