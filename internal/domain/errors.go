package domain

import "errors"

// ErrInvalidInput is returned when a park request fails input validation
// (empty or whitespace-only license plate).
// Handlers should map this to HTTP 422.
var ErrInvalidInput = errors.New("invalid input")

// ErrDuplicateVehicle is returned when the license plate of a park request
// matches a currently-active vehicle (case-insensitive).
// Handlers should map this to HTTP 409.
var ErrDuplicateVehicle = errors.New("vehicle already parked")

// ErrLotFull is returned when no free spot exists for a park request.
// Handlers should map this to HTTP 409.
var ErrLotFull = errors.New("parking lot is full")

// ErrNotFound is returned when an exit is requested for an unknown or
// already-departed vehicle id.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("vehicle not found")

// ErrPersistence is returned when a state write to the underlying store
// fails. The in-memory mutation is kept; only durability is lost.
var ErrPersistence = errors.New("persistence error")

// ErrCorruptState is returned by Load when stored data cannot be parsed
// into a valid ParkingState. Load still hands back a usable default state.
var ErrCorruptState = errors.New("corrupt stored state")
