package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	dutymodels "stargate/internal/duty/models"
	"stargate/internal/duty/service"
	personmodels "stargate/internal/person/models"
	"stargate/internal/platform/middleware"
	"stargate/internal/transport/http/shared"
	dErrors "stargate/pkg/domain-errors"
)

// Service defines the timeline operations the handler needs.
type Service interface {
	Create(ctx context.Context, p dutymodels.Proposed) (dutymodels.DutyID, error)
	HistoryByName(ctx context.Context, name string) (*service.History, error)
	StatusByName(ctx context.Context, name string) (*personmodels.Person, *dutymodels.CurrentStatus, error)
}

// Handler wires HTTP endpoints to the duty timeline core.
type Handler struct {
	duties Service
	logger *slog.Logger
}

func New(duties Service, logger *slog.Logger) *Handler {
	return &Handler{duties: duties, logger: logger}
}

// Register mounts the duty routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/astronaut-duty/{name}", h.handleHistory)
	r.Get("/astronaut-status/{name}", h.handleStatus)
	r.Post("/astronaut-duty", h.handleCreate)
}

// createRequest carries a proposed assignment. The start date is a plain
// calendar date; RFC 3339 timestamps are accepted and truncated.
type createRequest struct {
	Name      string `json:"name"`
	Rank      string `json:"rank"`
	DutyTitle string `json:"duty_title"`
	StartDate string `json:"duty_start_date"`
}

type createResponse struct {
	ID dutymodels.DutyID `json:"id"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "duty start date must be a valid date (YYYY-MM-DD)"))
		return
	}

	id, err := h.duties.Create(ctx, dutymodels.Proposed{
		PersonName: req.Name,
		Rank:       req.Rank,
		Title:      req.DutyTitle,
		StartDate:  start,
	})
	if err != nil {
		h.logOutcome(ctx, "create duty", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, createResponse{ID: id})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	history, err := h.duties.HistoryByName(ctx, chi.URLParam(r, "name"))
	if err != nil {
		h.logOutcome(ctx, "get duty history", err)
		shared.WriteError(w, err)
		return
	}
	if history.Duties == nil {
		history.Duties = []*dutymodels.Duty{}
	}
	shared.WriteJSON(w, http.StatusOK, history)
}

// statusResponse pairs a person with their derived status. Status is null
// for people who have never held a duty.
type statusResponse struct {
	Person *personmodels.Person      `json:"person"`
	Status *dutymodels.CurrentStatus `json:"current_status"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	person, status, err := h.duties.StatusByName(ctx, chi.URLParam(r, "name"))
	if err != nil {
		h.logOutcome(ctx, "get duty status", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, statusResponse{Person: person, Status: status})
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (h *Handler) logOutcome(ctx context.Context, op string, err error) {
	attrs := []any{
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	}
	switch dErrors.GetCode(err) {
	case dErrors.CodeValidation, dErrors.CodeNotFound, dErrors.CodeConflict:
		h.logger.WarnContext(ctx, op+" rejected", attrs...)
	default:
		h.logger.ErrorContext(ctx, op+" failed", attrs...)
	}
}
