package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/beacon/internal/geolocation"
	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/UnknownOlympus/beacon/internal/service"
)

// Reminders is the reminder use-case surface served over HTTP.
type Reminders interface {
	AddReminder(ctx context.Context, address string) (models.Reminder, error)
	ListReminders(ctx context.Context) ([]models.Reminder, error)
	CheckReminders(ctx context.Context) (service.CheckReport, error)
	ResetAlerts(ctx context.Context) error
	StartMonitoring(ctx context.Context, start, destination string) (models.Route, error)
	Route() (models.Route, bool)
}

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log       *slog.Logger
	locator   service.Locator
	reminders Reminders
	db        Pinger
}

func NewHandler(log *slog.Logger, locator service.Locator, reminders Reminders, db Pinger) *Handler {
	return &Handler{log: log, locator: locator, reminders: reminders, db: db}
}

type addReminderRequest struct {
	Address string `json:"address"`
}

type startMonitoringRequest struct {
	Start       string `json:"start"`
	Destination string `json:"destination"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Location performs one lookup and replies with the flat result shape.
func (h *Handler) Location(w http.ResponseWriter, r *http.Request) {
	res := h.locator.Locate(r.Context())

	status := http.StatusOK
	if msg, failed := res.Err(); failed {
		status = http.StatusBadGateway
		if msg == geolocation.NotSupportedMessage {
			status = http.StatusServiceUnavailable
		}
	}

	h.writeJSON(r.Context(), w, status, res)
}

func (h *Handler) ListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminders.ListReminders(r.Context())
	if err != nil {
		h.writeError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(r.Context(), w, http.StatusOK, reminders)
}

func (h *Handler) AddReminder(w http.ResponseWriter, r *http.Request) {
	var req addReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(r.Context(), w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	rem, err := h.reminders.AddReminder(r.Context(), req.Address)
	switch {
	case errors.Is(err, service.ErrEmptyAddress):
		h.writeError(r.Context(), w, http.StatusBadRequest, err)
	case err != nil:
		h.writeError(r.Context(), w, http.StatusUnprocessableEntity, err)
	default:
		h.writeJSON(r.Context(), w, http.StatusCreated, rem)
	}
}

func (h *Handler) CheckReminders(w http.ResponseWriter, r *http.Request) {
	report, err := h.reminders.CheckReminders(r.Context())
	if err != nil {
		h.writeError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(r.Context(), w, http.StatusOK, report)
}

func (h *Handler) ResetAlerts(w http.ResponseWriter, r *http.Request) {
	if err := h.reminders.ResetAlerts(r.Context()); err != nil {
		h.writeError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) StartMonitoring(w http.ResponseWriter, r *http.Request) {
	var req startMonitoringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(r.Context(), w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	route, err := h.reminders.StartMonitoring(r.Context(), req.Start, req.Destination)
	switch {
	case errors.Is(err, service.ErrEmptyAddress):
		h.writeError(r.Context(), w, http.StatusBadRequest, err)
	case errors.Is(err, service.ErrNoReminders):
		h.writeError(r.Context(), w, http.StatusConflict, err)
	case err != nil:
		h.writeError(r.Context(), w, http.StatusUnprocessableEntity, err)
	default:
		h.writeJSON(r.Context(), w, http.StatusCreated, route)
	}
}

func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	route, ok := h.reminders.Route()
	if !ok {
		h.writeError(r.Context(), w, http.StatusNotFound, errors.New("monitoring is not started"))
		return
	}

	h.writeJSON(r.Context(), w, http.StatusOK, route)
}

// Health reports OK while the database answers pings.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.log.DebugContext(r.Context(), "Performing health checks...")
	status, body := http.StatusOK, "OK"
	if err := h.db.Ping(r.Context()); err != nil {
		status, body = http.StatusServiceUnavailable, "DB ping failed"
	}

	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(ctx, "Request failed", "status", status, "error", err)
	}
	h.writeJSON(ctx, w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.ErrorContext(ctx, "failed to encode reply", "error", err)
	}
}
