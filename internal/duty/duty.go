package duty

import (
	"log/slog"

	"stargate/internal/audit"
	"stargate/internal/duty/handler"
	"stargate/internal/duty/service"
	"stargate/internal/platform/metrics"
)

// Service exposes the duty timeline core.
type Service = service.Service

// Handler wires HTTP endpoints to the timeline core.
type Handler = handler.Handler

// NewService constructs the timeline core with explicit collaborators.
func NewService(people service.PersonDirectory, store service.Store, tx service.StoreTx, auditor audit.Recorder, m *metrics.Metrics) *Service {
	return service.New(people, store, tx, auditor, m)
}

// NewHandler constructs an HTTP handler for the duty routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
