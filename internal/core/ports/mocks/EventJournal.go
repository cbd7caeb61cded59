package mocks

import (
	context "context"

	domain "github.com/srgjo27/rac_reservation/internal/core/domain"
	mock "github.com/stretchr/testify/mock"
)

// EventJournal is a mock type for the EventJournal type
type EventJournal struct {
	mock.Mock
}

// AppendEvents provides a mock function with given fields: ctx, events
func (_m *EventJournal) AppendEvents(ctx context.Context, events []domain.ReservationEvent) error {
	ret := _m.Called(ctx, events)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []domain.ReservationEvent) error); ok {
		r0 = rf(ctx, events)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewEventJournal creates a new instance of EventJournal. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewEventJournal(t interface {
	mock.TestingT
	Cleanup(func())
}) *EventJournal {
	m := &EventJournal{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
