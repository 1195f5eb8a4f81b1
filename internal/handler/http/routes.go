package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/guanggu/icollege/internal/utils"
)

// APIPrefix is the mount point of the admin API.
const APIPrefix = "/ghost/api/v0.1"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route(APIPrefix, func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/authentication/token/", h.token)
			r.Get("/version/", h.version)
		})

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/users/", h.listUsers)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	return router
}

// notFound answers unknown routes and unsupported methods alike.
func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, http.StatusNotFound, errorTypeNotFound, "Resource not found")
}
