package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter wires all routes. authmw guards every endpoint that needs a
// caller identity; tests can pass a middleware that injects a fixed user.
func NewRouter(a *API, authmw func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Health check (for Railway, k8s, etc.)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	protected := func(h http.HandlerFunc) http.Handler {
		return authmw(h)
	}

	// Search & ranking
	mux.Handle("POST /search/search", protected(a.SearchHandler))
	mux.Handle("POST /search/cancel", protected(a.CancelSearchHandler))

	// Upload & parse
	mux.Handle("POST /upload/jd", protected(a.UploadJDHandler))
	mux.Handle("POST /upload/resumes/{jd_id}", protected(a.UploadResumesHandler))

	// Roles (JDs)
	mux.Handle("GET /roles", protected(a.ListRolesHandler))

	// Favorites
	mux.Handle("POST /favorites", protected(a.CreateFavoriteHandler))
	mux.Handle("GET /favorites/{job_id}", protected(a.ListFavoritesHandler))
	mux.Handle("DELETE /favorites/{favorite_id}", protected(a.DeleteFavoriteHandler))

	return mux
}
