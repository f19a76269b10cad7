package person

import (
	"log/slog"

	"stargate/internal/audit"
	"stargate/internal/person/handler"
	"stargate/internal/person/service"
	"stargate/internal/platform/metrics"
)

// Service exposes the person registry.
type Service = service.Service

// Handler wires HTTP endpoints to the person registry.
type Handler = handler.Handler

// NewService constructs the person registry with required dependencies.
func NewService(store service.Store, auditor audit.Recorder, m *metrics.Metrics) *Service {
	return service.New(store, auditor, m)
}

// NewHandler constructs an HTTP handler for the person routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
