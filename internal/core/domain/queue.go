package domain

// PassengerQueue is a FIFO of passengers. The zero value is an empty queue.
type PassengerQueue struct {
	items []Passenger
}

func (q *PassengerQueue) Push(p Passenger) {
	q.items = append(q.items, p)
}

func (q *PassengerQueue) Pop() (Passenger, bool) {
	if len(q.items) == 0 {
		return Passenger{}, false
	}

	p := q.items[0]
	q.items[0] = Passenger{}
	q.items = q.items[1:]

	return p, true
}

// Remove drops the passenger with the given id, preserving the order of the
// rest.
func (q *PassengerQueue) Remove(id PassengerID) bool {
	for i, p := range q.items {
		if p.ID == id {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

func (q *PassengerQueue) Contains(id PassengerID) bool {
	for _, p := range q.items {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (q *PassengerQueue) Len() int {
	return len(q.items)
}

func (q *PassengerQueue) Passengers() []Passenger {
	out := make([]Passenger, len(q.items))
	copy(out, q.items)
	return out
}
