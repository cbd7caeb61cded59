package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/rac_reservation/internal/core/domain"
)

type EventJournal interface {
	AppendEvents(ctx context.Context, events []domain.ReservationEvent) error
}

type AvailabilityCache interface {
	Get(ctx context.Context, runID uuid.UUID) (*domain.Availability, error)
	Set(ctx context.Context, runID uuid.UUID, availability *domain.Availability) error
	Invalidate(ctx context.Context, runID uuid.UUID) error
}
