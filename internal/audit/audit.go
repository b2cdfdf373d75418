// Package audit keeps the significant events of a session and mirrors them to the log
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/alexbotov/slots/internal/domain"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Event types
const (
	EventSessionStart     = "session_start"
	EventSessionEnd       = "session_end"
	EventDeposit          = "deposit"
	EventBetRejected      = "bet_rejected"
	EventRoundComplete    = "round_complete"
	EventLargeWin         = "large_win"
	EventSystemError      = "system_error"
	EventRNGHealthCheck   = "rng_health_check"
	EventSimulationFinish = "simulation_finished"
)

const defaultComponent = "slots"

// Service records audit events in memory for the life of the process
type Service struct {
	logger *zap.Logger

	mu     sync.Mutex
	events []*domain.AuditEvent
}

// New creates a new audit service writing through logger.
// A nil logger disables the mirror.
func New(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger.Named("audit")}
}

// LogEvent records a significant event
func (s *Service) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Component == "" {
		event.Component = defaultComponent
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()

	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("type", event.Type),
		zap.String("component", event.Component),
	}
	if event.SessionID != nil {
		fields = append(fields, zap.String("session_id", *event.SessionID))
	}
	if event.RoundID != nil {
		fields = append(fields, zap.String("round_id", *event.RoundID))
	}
	if len(event.Data) > 0 {
		fields = append(fields, zap.ByteString("data", event.Data))
	}

	if ce := s.logger.Check(levelFor(event.Severity), event.Description); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

// Log is a convenience method for logging events
func (s *Service) Log(ctx context.Context, eventType string, severity domain.EventSeverity, description string, data interface{}, opts ...EventOption) error {
	event := &domain.AuditEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		Severity:    severity,
		Timestamp:   time.Now().UTC(),
		Description: description,
		Component:   defaultComponent,
	}

	if data != nil {
		jsonData, err := jsoniter.Marshal(data)
		if err == nil {
			event.Data = jsonData
		}
	}

	for _, opt := range opts {
		opt(event)
	}

	return s.LogEvent(ctx, event)
}

func levelFor(severity domain.EventSeverity) zapcore.Level {
	switch severity {
	case domain.SeverityWarning:
		return zapcore.WarnLevel
	case domain.SeverityError, domain.SeverityCritical:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// EventOption is a functional option for configuring audit events
type EventOption func(*domain.AuditEvent)

// WithSession sets the session ID for the event
func WithSession(sessionID string) EventOption {
	return func(e *domain.AuditEvent) {
		e.SessionID = &sessionID
	}
}

// WithRound sets the round ID for the event
func WithRound(roundID string) EventOption {
	return func(e *domain.AuditEvent) {
		e.RoundID = &roundID
	}
}

// WithComponent sets the component for the event
func WithComponent(component string) EventOption {
	return func(e *domain.AuditEvent) {
		e.Component = component
	}
}

// GetEvents returns matching events, newest first
func (s *Service) GetEvents(filter *EventFilter) []*domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := 100
	if filter != nil && filter.Limit > 0 {
		limit = filter.Limit
	}

	var events []*domain.AuditEvent
	for i := len(s.events) - 1; i >= 0 && len(events) < limit; i-- {
		event := s.events[i]
		if filter != nil {
			if filter.Type != "" && event.Type != filter.Type {
				continue
			}
			if filter.SessionID != "" && (event.SessionID == nil || *event.SessionID != filter.SessionID) {
				continue
			}
			if !filter.From.IsZero() && event.Timestamp.Before(filter.From) {
				continue
			}
		}
		events = append(events, event)
	}
	return events
}

// EventFilter defines criteria for filtering audit events
type EventFilter struct {
	Type      string
	SessionID string
	From      time.Time
	Limit     int
}
