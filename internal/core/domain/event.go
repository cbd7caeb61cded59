package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventPassengerCreated EventKind = "PASSENGER_CREATED"
	EventBookedBerth      EventKind = "BOOKED_BERTH"
	EventBookedRAC        EventKind = "BOOKED_RAC"
	EventWaitlisted       EventKind = "WAITLISTED"
	EventCancelled        EventKind = "CANCELLED"
	EventPromotedToBerth  EventKind = "PROMOTED_TO_BERTH"
	EventPromotedToRAC    EventKind = "PROMOTED_TO_RAC"
)

// ReservationEvent is one entry of the audit journal.
type ReservationEvent struct {
	ID          uuid.UUID
	RunID       uuid.UUID
	Kind        EventKind
	PassengerID PassengerID
	Class       BerthClass
	SeatLabel   string
	OccurredAt  time.Time
}
