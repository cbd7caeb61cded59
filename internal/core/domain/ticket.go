package domain

type Ticket struct {
	Passenger Passenger
	Class     BerthClass
	SeatLabel string
	Slot      int
}

// Ledger holds the currently issued tickets in insertion order, indexed by
// passenger id.
type Ledger struct {
	tickets []Ticket
	index   map[PassengerID]int
}

func NewLedger() *Ledger {
	return &Ledger{index: make(map[PassengerID]int)}
}

func (l *Ledger) Add(t Ticket) {
	l.index[t.Passenger.ID] = len(l.tickets)
	l.tickets = append(l.tickets, t)
}

func (l *Ledger) Find(id PassengerID) (Ticket, bool) {
	i, ok := l.index[id]
	if !ok {
		return Ticket{}, false
	}
	return l.tickets[i], true
}

func (l *Ledger) Remove(id PassengerID) (Ticket, bool) {
	i, ok := l.index[id]
	if !ok {
		return Ticket{}, false
	}

	t := l.tickets[i]
	l.tickets = append(l.tickets[:i], l.tickets[i+1:]...)
	delete(l.index, id)
	for j := i; j < len(l.tickets); j++ {
		l.index[l.tickets[j].Passenger.ID] = j
	}

	return t, true
}

func (l *Ledger) Len() int {
	return len(l.tickets)
}

// Tickets returns a copy of the ledger in insertion order.
func (l *Ledger) Tickets() []Ticket {
	out := make([]Ticket, len(l.tickets))
	copy(out, l.tickets)
	return out
}

func (l *Ledger) CountClass(class BerthClass) int {
	n := 0
	for _, t := range l.tickets {
		if t.Class == class {
			n++
		}
	}
	return n
}
