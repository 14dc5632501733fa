package ports

import (
	"context"

	"github.com/broday/transportes/internal/core/domain"
)

// EventRepository persists the frete audit trail.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.FreteEvent) error
	// ListByFrete returns the events of one frete, oldest first.
	ListByFrete(ctx context.Context, freteID string) ([]*domain.FreteEvent, error)
}

// EventRecorder accepts audit events without blocking the caller on storage.
type EventRecorder interface {
	Record(event domain.FreteEvent)
}
