// Package allocation implements the seat allocation state machine for a
// single train: berth booking, RAC overflow, the waitlist and the promotion
// cascade run after a cancellation.
//
// Engine is not safe for concurrent use. Callers that share it must
// serialize every call.
package allocation

import (
	"fmt"

	"github.com/srgjo27/rac_reservation/internal/core/domain"
)

type Engine struct {
	registry  *domain.Registry
	inventory *domain.SeatInventory
	ledger    *domain.Ledger
	waitlist  domain.PassengerQueue
	racQueue  domain.PassengerQueue
}

func NewEngine(capacity domain.Capacity) (*Engine, error) {
	if err := capacity.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		registry:  domain.NewRegistry(),
		inventory: domain.NewSeatInventory(capacity),
		ledger:    domain.NewLedger(),
	}, nil
}

func (e *Engine) CreatePassenger(name string, age int) (domain.Passenger, error) {
	return e.registry.Create(name, age)
}

// Book routes a registered, unbooked passenger to a berth, an RAC seat or the
// waitlist. A nil preferred class means no preference.
func (e *Engine) Book(id domain.PassengerID, preferred *domain.BerthClass) (domain.BookingOutcome, error) {
	p, ok := e.registry.Get(id)
	if !ok {
		return domain.BookingOutcome{}, fmt.Errorf("%w: id %d", domain.ErrPassengerNotFound, id)
	}

	if status := e.registry.Status(id); status != domain.PassengerUnbooked {
		return domain.BookingOutcome{}, fmt.Errorf("%w: passenger %d is %s", domain.ErrPassengerNotBookable, id, status)
	}

	if preferred != nil && !preferred.IsBerth() {
		return domain.BookingOutcome{}, fmt.Errorf("%w: %q", domain.ErrInvalidClassSelector, *preferred)
	}

	return e.bookBerth(p, preferred), nil
}

func (e *Engine) bookBerth(p domain.Passenger, preferred *domain.BerthClass) domain.BookingOutcome {
	if preferred != nil {
		if out, ok := e.grantBerth(p, *preferred); ok {
			return out
		}
	}

	for _, class := range domain.BerthScanOrder {
		if out, ok := e.grantBerth(p, class); ok {
			return out
		}
	}

	return e.bookRAC(p)
}

func (e *Engine) grantBerth(p domain.Passenger, class domain.BerthClass) (domain.BookingOutcome, bool) {
	slot, ok := e.inventory.Grant(class)
	if !ok {
		return domain.BookingOutcome{}, false
	}

	t := domain.Ticket{Passenger: p, Class: class, SeatLabel: class.Label(slot), Slot: slot}
	e.ledger.Add(t)
	e.registry.SetStatus(p.ID, domain.PassengerBerthHeld)

	return domain.BookingOutcome{
		Kind:      domain.BookingBerth,
		Passenger: p,
		Class:     class,
		SeatLabel: t.SeatLabel,
	}, true
}

func (e *Engine) bookRAC(p domain.Passenger) domain.BookingOutcome {
	slot, ok := e.inventory.Grant(domain.BerthRAC)
	if !ok {
		e.waitlist.Push(p)
		e.registry.SetStatus(p.ID, domain.PassengerWaitlisted)
		return domain.BookingOutcome{Kind: domain.BookingWaitlisted, Passenger: p}
	}

	t := domain.Ticket{Passenger: p, Class: domain.BerthRAC, SeatLabel: domain.BerthRAC.Label(slot), Slot: slot}
	e.ledger.Add(t)
	e.racQueue.Push(p)
	e.registry.SetStatus(p.ID, domain.PassengerRACHeld)

	return domain.BookingOutcome{
		Kind:      domain.BookingRAC,
		Passenger: p,
		Class:     domain.BerthRAC,
		SeatLabel: t.SeatLabel,
	}
}

// Cancel removes the passenger's ticket and runs the promotion cascade. Only
// ticket holders can be cancelled; a waitlisted passenger yields NotFound.
func (e *Engine) Cancel(id domain.PassengerID) (domain.CancellationOutcome, error) {
	t, ok := e.ledger.Remove(id)
	if !ok {
		return domain.CancellationOutcome{Kind: domain.CancellationNotFound},
			fmt.Errorf("%w: no ticket for id %d", domain.ErrPassengerNotFound, id)
	}

	if err := e.inventory.Release(t.Class, t.Slot); err != nil {
		return domain.CancellationOutcome{}, fmt.Errorf("release %s: %w", t.SeatLabel, err)
	}

	if t.Class == domain.BerthRAC {
		e.racQueue.Remove(id)
	}
	e.registry.SetStatus(id, domain.PassengerCancelled)

	out := domain.CancellationOutcome{Kind: domain.CancellationCancelled, Ticket: t}

	if t.Class.IsBerth() {
		promo, ok, err := e.promoteRACToBerth(t.Class)
		if err != nil {
			return out, err
		}
		if ok {
			out.Promotions = append(out.Promotions, promo)
		}
	}

	if promo, ok := e.promoteWaitlistToRAC(); ok {
		out.Promotions = append(out.Promotions, promo)
	}

	return out, nil
}

// promoteRACToBerth moves the head of the RAC queue into the freed berth
// class, vacating its RAC seat.
func (e *Engine) promoteRACToBerth(class domain.BerthClass) (domain.Promotion, bool, error) {
	p, ok := e.racQueue.Pop()
	if !ok {
		return domain.Promotion{}, false, nil
	}

	rac, ok := e.ledger.Remove(p.ID)
	if !ok {
		return domain.Promotion{}, false, fmt.Errorf("rac passenger %d has no ticket", p.ID)
	}

	if err := e.inventory.Release(domain.BerthRAC, rac.Slot); err != nil {
		return domain.Promotion{}, false, fmt.Errorf("release %s: %w", rac.SeatLabel, err)
	}

	out := e.bookBerth(p, &class)

	return domain.Promotion{
		Passenger: p,
		From:      domain.PassengerRACHeld,
		To:        e.registry.Status(p.ID),
		Class:     out.Class,
		SeatLabel: out.SeatLabel,
	}, true, nil
}

func (e *Engine) promoteWaitlistToRAC() (domain.Promotion, bool) {
	if e.waitlist.Len() == 0 || e.inventory.Available(domain.BerthRAC) == 0 {
		return domain.Promotion{}, false
	}

	p, _ := e.waitlist.Pop()
	out := e.bookRAC(p)

	return domain.Promotion{
		Passenger: p,
		From:      domain.PassengerWaitlisted,
		To:        domain.PassengerRACHeld,
		Class:     out.Class,
		SeatLabel: out.SeatLabel,
	}, true
}

func (e *Engine) Tickets() []domain.Ticket {
	return e.ledger.Tickets()
}

func (e *Engine) BerthTickets() []domain.Ticket {
	var out []domain.Ticket
	for _, t := range e.ledger.Tickets() {
		if t.Class.IsBerth() {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) Waitlist() []domain.Passenger {
	return e.waitlist.Passengers()
}

func (e *Engine) RACQueue() []domain.Passenger {
	return e.racQueue.Passengers()
}

func (e *Engine) Passenger(id domain.PassengerID) (domain.Passenger, domain.PassengerStatus, bool) {
	p, ok := e.registry.Get(id)
	if !ok {
		return domain.Passenger{}, "", false
	}
	return p, e.registry.Status(id), true
}

func (e *Engine) Availability() domain.Availability {
	return domain.Availability{
		Classes:       e.inventory.Snapshot(),
		WaitlistCount: e.waitlist.Len(),
	}
}
