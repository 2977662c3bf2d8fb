package api

import (
	"net/http"
	"time"

	"github.com/danomnoms/server/internal/metrics"
	logx "github.com/danomnoms/server/pkg/logger"
	"github.com/gorilla/mux"
)

// Router mounts the REST surface under /api plus /health and /metrics.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger)
	r.Use(metrics.InstrumentHandler)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	restaurants := api.PathPrefix("/restaurants").Subrouter()
	restaurants.HandleFunc("", s.handleListRestaurants).Methods(http.MethodGet)
	restaurants.HandleFunc("/", s.handleListRestaurants).Methods(http.MethodGet)
	restaurants.HandleFunc("/by-store/{store_id}", s.handleRestaurantByStore).Methods(http.MethodGet)
	restaurants.HandleFunc("/items/{item_id}", s.handleMenuItem).Methods(http.MethodGet)
	restaurants.HandleFunc("/cart", s.handleCart).Methods(http.MethodPost)
	restaurants.HandleFunc("/cost-estimate", s.handleCostEstimate).Methods(http.MethodPost)
	restaurants.HandleFunc("/receipt", s.handleReceipt).Methods(http.MethodPost)
	restaurants.HandleFunc("/{restaurant_id}/menu", s.handleMenu).Methods(http.MethodGet)

	api.HandleFunc("/agent/chat", s.handleChat).Methods(http.MethodPost)

	api.HandleFunc("/doordash/deliveries", s.handleCreateDelivery).Methods(http.MethodPost)
	api.HandleFunc("/doordash/deliveries/{external_delivery_id}", s.handleTrackDelivery).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorBody{Detail: "Not Found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorBody{Detail: "Method Not Allowed"})
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := metrics.NewStatusRecorder(w)
		start := time.Now()
		next.ServeHTTP(rec, r)
		logx.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
