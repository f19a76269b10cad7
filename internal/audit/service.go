package audit

import (
	"context"
	"log/slog"

	"stargate/pkg/requestcontext"
)

// Store persists process log entries. It is append-only.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context, personName string) ([]Entry, error)
}

// Recorder is the sink domain services notify after an operation resolves,
// whatever the outcome. Implementations must never gate the operation's
// result.
type Recorder interface {
	RecordSuccess(ctx context.Context, action, message, personName string)
	RecordFailure(ctx context.Context, action, message, personName string)
	RecordException(ctx context.Context, action, message, personName string)
}

// Service records structured process log entries through the storage layer.
// Sink failures are logged and swallowed; a broken audit trail must not
// roll back or fail the operation it describes.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) RecordSuccess(ctx context.Context, action, message, personName string) {
	s.append(ctx, Entry{Level: LevelInfo, Action: action, Message: message, PersonName: personName})
}

func (s *Service) RecordFailure(ctx context.Context, action, message, personName string) {
	s.append(ctx, Entry{Level: LevelError, Action: action, Message: message, PersonName: personName})
}

// RecordException captures infrastructure faults with their full error
// chain; unlike RecordFailure the message is diagnostic, not caller-safe.
func (s *Service) RecordException(ctx context.Context, action, message, personName string) {
	s.append(ctx, Entry{Level: LevelException, Action: action, Message: message, PersonName: personName})
}

func (s *Service) append(ctx context.Context, entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = requestcontext.Now(ctx)
	}
	if err := s.store.Append(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "audit append failed",
			"action", entry.Action,
			"level", string(entry.Level),
			"error", err.Error(),
		)
	}
}

// List returns entries for a person, or all entries when personName is empty.
func (s *Service) List(ctx context.Context, personName string) ([]Entry, error) {
	return s.store.List(ctx, personName)
}
