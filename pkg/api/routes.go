package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// HealthPath is the route of the subscription health resource.
const HealthPath = "/api/resources/v1/subscriptions/health"

// NewRouter registers the API routes and wraps them in the standard middleware.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc(HealthPath, h.ListSubscriptionHealth).Methods(http.MethodGet).Name("subscription-health")
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeProblem(w, http.StatusMethodNotAllowed, "")
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeProblem(w, http.StatusNotFound, "")
	})

	r.Use(
		recoveryMiddleware,
		instrumentationMiddleware,
	)
	return r
}
