package mocks

import (
	context "context"

	domain "github.com/srgjo27/rac_reservation/internal/core/domain"
	mock "github.com/stretchr/testify/mock"

	uuid "github.com/google/uuid"
)

// AvailabilityCache is a mock type for the AvailabilityCache type
type AvailabilityCache struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, runID
func (_m *AvailabilityCache) Get(ctx context.Context, runID uuid.UUID) (*domain.Availability, error) {
	ret := _m.Called(ctx, runID)

	var r0 *domain.Availability
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*domain.Availability, error)); ok {
		return rf(ctx, runID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *domain.Availability); ok {
		r0 = rf(ctx, runID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Availability)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, runID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Set provides a mock function with given fields: ctx, runID, availability
func (_m *AvailabilityCache) Set(ctx context.Context, runID uuid.UUID, availability *domain.Availability) error {
	ret := _m.Called(ctx, runID, availability)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, *domain.Availability) error); ok {
		r0 = rf(ctx, runID, availability)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Invalidate provides a mock function with given fields: ctx, runID
func (_m *AvailabilityCache) Invalidate(ctx context.Context, runID uuid.UUID) error {
	ret := _m.Called(ctx, runID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, runID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewAvailabilityCache creates a new instance of AvailabilityCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewAvailabilityCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *AvailabilityCache {
	m := &AvailabilityCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
