package domain

import (
	"fmt"
	"strings"
)

type PassengerID int64

type Passenger struct {
	ID   PassengerID
	Name string
	Age  int
}

type PassengerStatus string

const (
	PassengerUnbooked   PassengerStatus = "UNBOOKED"
	PassengerBerthHeld  PassengerStatus = "BERTH_HELD"
	PassengerRACHeld    PassengerStatus = "RAC_HELD"
	PassengerWaitlisted PassengerStatus = "WAITLISTED"
	PassengerCancelled  PassengerStatus = "CANCELLED"
)

// Registry hands out passenger ids and remembers every passenger it created
// along with their current status. Ids start at 1 and are never reused.
type Registry struct {
	lastID     PassengerID
	passengers map[PassengerID]Passenger
	status     map[PassengerID]PassengerStatus
}

func NewRegistry() *Registry {
	return &Registry{
		passengers: make(map[PassengerID]Passenger),
		status:     make(map[PassengerID]PassengerStatus),
	}
}

func (r *Registry) Create(name string, age int) (Passenger, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Passenger{}, fmt.Errorf("%w: name is required", ErrInvalidPassenger)
	}

	if age <= 0 {
		return Passenger{}, fmt.Errorf("%w: age must be positive, got %d", ErrInvalidPassenger, age)
	}

	r.lastID++
	p := Passenger{ID: r.lastID, Name: name, Age: age}
	r.passengers[p.ID] = p
	r.status[p.ID] = PassengerUnbooked

	return p, nil
}

func (r *Registry) Get(id PassengerID) (Passenger, bool) {
	p, ok := r.passengers[id]
	return p, ok
}

func (r *Registry) Status(id PassengerID) PassengerStatus {
	return r.status[id]
}

func (r *Registry) SetStatus(id PassengerID, status PassengerStatus) {
	if _, ok := r.passengers[id]; ok {
		r.status[id] = status
	}
}

func (r *Registry) Len() int {
	return len(r.passengers)
}
