package domain

type BookingKind string

const (
	BookingBerth      BookingKind = "BERTH"
	BookingRAC        BookingKind = "RAC"
	BookingWaitlisted BookingKind = "WAITLISTED"
)

type BookingOutcome struct {
	Kind      BookingKind
	Passenger Passenger
	Class     BerthClass
	SeatLabel string
}

type CancellationKind string

const (
	CancellationCancelled CancellationKind = "CANCELLED"
	CancellationNotFound  CancellationKind = "NOT_FOUND"
)

// Promotion records a single automatic upgrade performed after a
// cancellation.
type Promotion struct {
	Passenger Passenger
	From      PassengerStatus
	To        PassengerStatus
	Class     BerthClass
	SeatLabel string
}

type CancellationOutcome struct {
	Kind       CancellationKind
	Ticket     Ticket
	Promotions []Promotion
}
