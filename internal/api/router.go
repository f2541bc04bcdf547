package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the handler and the metrics endpoint.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/location", h.Location).Methods(http.MethodGet)
	router.HandleFunc("/reminders", h.ListReminders).Methods(http.MethodGet)
	router.HandleFunc("/reminders", h.AddReminder).Methods(http.MethodPost)
	router.HandleFunc("/reminders/check", h.CheckReminders).Methods(http.MethodPost)
	router.HandleFunc("/reminders/reset", h.ResetAlerts).Methods(http.MethodPost)
	router.HandleFunc("/monitoring", h.Route).Methods(http.MethodGet)
	router.HandleFunc("/monitoring", h.StartMonitoring).Methods(http.MethodPost)
	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return router
}
