package domain

import "errors"

var (
	ErrInvalidClassSelector = errors.New("invalid berth class selector")
	ErrPassengerNotFound    = errors.New("passenger not found")
	ErrInvalidPassenger     = errors.New("invalid passenger")
	ErrPassengerNotBookable = errors.New("passenger is not bookable")
)
