package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/rac_reservation/internal/core/allocation"
	"github.com/srgjo27/rac_reservation/internal/core/domain"
	"github.com/srgjo27/rac_reservation/internal/core/ports"
)

type CreatePassengerRequest struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type PassengerResponse struct {
	ID     int64  `json:"passenger_id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Status string `json:"status,omitempty"`
}

type CreateBookingRequest struct {
	PassengerID    int64  `json:"passenger_id"`
	PreferredBerth string `json:"preferred_berth"`
}

type BookingResponse struct {
	PassengerID int64  `json:"passenger_id"`
	Kind        string `json:"kind"`
	Class       string `json:"class,omitempty"`
	SeatLabel   string `json:"seat_label,omitempty"`
}

type PromotionResponse struct {
	PassengerID int64  `json:"passenger_id"`
	From        string `json:"from"`
	To          string `json:"to"`
	Class       string `json:"class"`
	SeatLabel   string `json:"seat_label"`
}

type CancellationResponse struct {
	PassengerID int64               `json:"passenger_id"`
	Kind        string              `json:"kind"`
	SeatLabel   string              `json:"seat_label,omitempty"`
	Promotions  []PromotionResponse `json:"promotions"`
}

type TicketResponse struct {
	Passenger PassengerResponse `json:"passenger"`
	Class     string            `json:"class"`
	SeatLabel string            `json:"seat_label"`
}

// ReservationService serializes every request to the allocation engine and
// handles the side effects of a mutation: the availability cache is
// invalidated and journal events are buffered until the next flush.
type ReservationService struct {
	mu      sync.Mutex
	engine  *allocation.Engine
	cache   ports.AvailabilityCache
	journal ports.EventJournal
	runID   uuid.UUID
	pending []domain.ReservationEvent
	now     func() time.Time
}

func NewReservationService(engine *allocation.Engine, cache ports.AvailabilityCache, journal ports.EventJournal, runID uuid.UUID) *ReservationService {
	return &ReservationService{
		engine:  engine,
		cache:   cache,
		journal: journal,
		runID:   runID,
		now:     time.Now,
	}
}

func (s *ReservationService) RunID() uuid.UUID {
	return s.runID
}

func (s *ReservationService) CreatePassenger(ctx context.Context, req CreatePassengerRequest) (*PassengerResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.engine.CreatePassenger(req.Name, req.Age)
	if err != nil {
		return nil, err
	}

	s.record(domain.EventPassengerCreated, p.ID, "", "")

	return &PassengerResponse{
		ID:     int64(p.ID),
		Name:   p.Name,
		Age:    p.Age,
		Status: string(domain.PassengerUnbooked),
	}, nil
}

func (s *ReservationService) RequestBooking(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error) {
	class, ok, err := domain.ParseBerthSelector(req.PreferredBerth)
	if err != nil {
		return nil, err
	}

	var preferred *domain.BerthClass
	if ok {
		preferred = &class
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.engine.Book(domain.PassengerID(req.PassengerID), preferred)
	if err != nil {
		return nil, err
	}

	switch out.Kind {
	case domain.BookingBerth:
		s.record(domain.EventBookedBerth, out.Passenger.ID, out.Class, out.SeatLabel)
	case domain.BookingRAC:
		s.record(domain.EventBookedRAC, out.Passenger.ID, out.Class, out.SeatLabel)
	case domain.BookingWaitlisted:
		s.record(domain.EventWaitlisted, out.Passenger.ID, "", "")
	}
	s.invalidate(ctx)

	return &BookingResponse{
		PassengerID: int64(out.Passenger.ID),
		Kind:        string(out.Kind),
		Class:       string(out.Class),
		SeatLabel:   out.SeatLabel,
	}, nil
}

// RequestCancellation returns a NOT_FOUND response together with
// domain.ErrPassengerNotFound when the passenger holds no ticket.
func (s *ReservationService) RequestCancellation(ctx context.Context, passengerID int64) (*CancellationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.engine.Cancel(domain.PassengerID(passengerID))
	if err != nil {
		if errors.Is(err, domain.ErrPassengerNotFound) {
			return &CancellationResponse{
				PassengerID: passengerID,
				Kind:        string(domain.CancellationNotFound),
				Promotions:  []PromotionResponse{},
			}, err
		}
		return nil, fmt.Errorf("cancellation of passenger %d: %w", passengerID, err)
	}

	s.record(domain.EventCancelled, out.Ticket.Passenger.ID, out.Ticket.Class, out.Ticket.SeatLabel)

	resp := &CancellationResponse{
		PassengerID: passengerID,
		Kind:        string(out.Kind),
		SeatLabel:   out.Ticket.SeatLabel,
		Promotions:  make([]PromotionResponse, 0, len(out.Promotions)),
	}

	for _, p := range out.Promotions {
		kind := domain.EventPromotedToRAC
		if p.To == domain.PassengerBerthHeld {
			kind = domain.EventPromotedToBerth
		}
		s.record(kind, p.Passenger.ID, p.Class, p.SeatLabel)
		log.Printf("Passenger %d promoted from %s to %s (%s)", p.Passenger.ID, p.From, p.To, p.SeatLabel)

		resp.Promotions = append(resp.Promotions, PromotionResponse{
			PassengerID: int64(p.Passenger.ID),
			From:        string(p.From),
			To:          string(p.To),
			Class:       string(p.Class),
			SeatLabel:   p.SeatLabel,
		})
	}
	s.invalidate(ctx)

	return resp, nil
}

func (s *ReservationService) ListTickets(ctx context.Context) []TicketResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return toTicketResponses(s.engine.Tickets())
}

func (s *ReservationService) ListBerthTickets(ctx context.Context) []TicketResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return toTicketResponses(s.engine.BerthTickets())
}

func (s *ReservationService) ListWaitlist(ctx context.Context) []PassengerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return toPassengerResponses(s.engine.Waitlist())
}

func (s *ReservationService) ListRAC(ctx context.Context) []PassengerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return toPassengerResponses(s.engine.RACQueue())
}

// Availability reads through the cache. Cache failures fall back to the
// engine's own counters.
func (s *ReservationService) Availability(ctx context.Context) domain.Availability {
	cached, err := s.cache.Get(ctx, s.runID)
	if err != nil {
		log.Printf("Failed to read availability cache: %v", err)
	}
	if cached != nil {
		return *cached
	}

	// Snapshot and fill under the lock so a concurrent mutation cannot
	// invalidate between the two and leave a stale entry behind.
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.engine.Availability()
	if err := s.cache.Set(ctx, s.runID, &a); err != nil {
		log.Printf("Failed to write availability cache: %v", err)
	}

	return a
}

func (s *ReservationService) record(kind domain.EventKind, id domain.PassengerID, class domain.BerthClass, label string) {
	s.pending = append(s.pending, domain.ReservationEvent{
		ID:          uuid.New(),
		RunID:       s.runID,
		Kind:        kind,
		PassengerID: id,
		Class:       class,
		SeatLabel:   label,
		OccurredAt:  s.now(),
	})
}

func (s *ReservationService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, s.runID); err != nil {
		log.Printf("Failed to invalidate availability cache: %v", err)
	}
}

func (s *ReservationService) RunBackgroundFlush(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Background Worker started: Flushing reservation journal every %s...", interval)

	for {
		select {
		case <-ctx.Done():
			if err := s.FlushEvents(context.WithoutCancel(ctx)); err != nil {
				log.Printf("Final journal flush failed: %v", err)
			}
			log.Println("Background Worker stopped.")
			return
		case <-ticker.C:
			if err := s.FlushEvents(ctx); err != nil {
				log.Printf("Error flushing reservation journal: %v", err)
			}
		}
	}
}

// FlushEvents writes buffered events to the journal. On failure the events
// stay buffered and are retried on the next flush.
func (s *ReservationService) FlushEvents(ctx context.Context) error {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	if err := s.journal.AppendEvents(ctx, batch); err != nil {
		s.mu.Lock()
		s.pending = append(batch, s.pending...)
		s.mu.Unlock()
		return err
	}

	log.Printf("Flushed %d reservation events.", len(batch))

	return nil
}

func toPassengerResponses(ps []domain.Passenger) []PassengerResponse {
	out := make([]PassengerResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, PassengerResponse{ID: int64(p.ID), Name: p.Name, Age: p.Age})
	}
	return out
}

func toTicketResponses(ts []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, TicketResponse{
			Passenger: PassengerResponse{ID: int64(t.Passenger.ID), Name: t.Passenger.Name, Age: t.Passenger.Age},
			Class:     string(t.Class),
			SeatLabel: t.SeatLabel,
		})
	}
	return out
}
