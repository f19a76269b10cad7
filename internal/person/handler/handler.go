package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stargate/internal/person/models"
	"stargate/internal/platform/middleware"
	"stargate/internal/transport/http/shared"
	dErrors "stargate/pkg/domain-errors"
)

// Service defines the person registry operations the handler needs.
type Service interface {
	Create(ctx context.Context, name string) (*models.Person, error)
	Rename(ctx context.Context, currentName, newName string) (*models.Person, error)
	GetByName(ctx context.Context, name string) (*models.Person, error)
	List(ctx context.Context) ([]*models.Person, error)
}

// Handler wires HTTP endpoints to the person registry.
type Handler struct {
	people Service
	logger *slog.Logger
}

func New(people Service, logger *slog.Logger) *Handler {
	return &Handler{people: people, logger: logger}
}

// Register mounts the person routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/person", h.handleList)
	r.Get("/person/{name}", h.handleGetByName)
	r.Post("/person", h.handleCreate)
	r.Put("/person/{name}", h.handleRename)
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	p, err := h.people.Create(ctx, req.Name)
	if err != nil {
		h.logOutcome(ctx, "create person", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	currentName := chi.URLParam(r, "name")

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	p, err := h.people.Rename(ctx, currentName, req.Name)
	if err != nil {
		h.logOutcome(ctx, "rename person", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleGetByName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.people.GetByName(ctx, chi.URLParam(r, "name"))
	if err != nil {
		h.logOutcome(ctx, "get person", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	people, err := h.people.List(ctx)
	if err != nil {
		h.logOutcome(ctx, "list people", err)
		shared.WriteError(w, err)
		return
	}
	if people == nil {
		people = []*models.Person{}
	}
	shared.WriteJSON(w, http.StatusOK, people)
}

// logOutcome keeps expected outcomes quiet and unexpected ones loud.
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
