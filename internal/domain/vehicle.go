// Package domain contains the core data types for the parking management
// application. This package has zero external dependencies beyond uuid and is
// imported by every other internal package (parking, store, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle is a single parking record. Records are append-only: a vehicle is
// created by a successful park, updated exactly once by a successful exit,
// and never deleted — departed vehicles remain as history.
// ExitTime is nil while the vehicle is still parked; its presence is the sole
// discriminator between active and departed.
type Vehicle struct {
	ID           uuid.UUID  `json:"id"`
	LicensePlate string     `json:"license_plate"`
	EntryTime    time.Time  `json:"entry_time"`
	ExitTime     *time.Time `json:"exit_time,omitempty"`
	Spot         int        `json:"spot"` // in [1, TotalSpots], retained after exit
}

// Active reports whether the vehicle is currently occupying its spot.
func (v Vehicle) Active() bool {
	return v.ExitTime == nil
}

// ParkingState is the aggregate root: the full lot configuration plus every
// vehicle record ever created, in insertion order.
type ParkingState struct {
	TotalSpots int       `json:"total_spots"`
	HourlyRate float64   `json:"hourly_rate"`
	Vehicles   []Vehicle `json:"vehicles"`
}

// NewParkingState returns an empty state for a lot with the given capacity
// and hourly rate.
func NewParkingState(totalSpots int, hourlyRate float64) ParkingState {
	return ParkingState{
		TotalSpots: totalSpots,
		HourlyRate: hourlyRate,
		Vehicles:   []Vehicle{},
	}
}

// ExitReceipt is the result of a successful exit: the departed vehicle record
// plus the billed duration and fee.
type ExitReceipt struct {
	Vehicle       Vehicle `json:"vehicle"`
	DurationHours int     `json:"duration_hours"`
	Fee           float64 `json:"fee"`
}
