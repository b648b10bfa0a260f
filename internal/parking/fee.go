package parking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ahmedmasbah72/gestion-parking/internal/domain"
)

// Duration returns the billable duration in whole hours between entry and
// exit: elapsed time rounded up to the next hour, with a minimum of one.
// A stay of exactly N hours bills N; one minute over bills N+1. Integer
// arithmetic avoids float rounding at the hour boundaries.
func Duration(entry, exit time.Time) int {
	elapsed := exit.Sub(entry)
	hours := int((elapsed + time.Hour - 1) / time.Hour)
	if hours < 1 {
		hours = 1
	}
	return hours
}

// Fee returns the amount owed for the stay: billable hours times the hourly
// rate. No discounts, no caps.
func Fee(entry, exit time.Time, hourlyRate float64) float64 {
	return float64(Duration(entry, exit)) * hourlyRate
}

// Exit computes the departure of the active vehicle with the given id.
// It returns a receipt holding a copy of the vehicle with ExitTime set to
// now (the spot number is retained on the historical record), the billed
// duration, and the fee. The caller replaces the record by id and persists.
//
// Returns domain.ErrNotFound when no active vehicle has that id — an already
// departed vehicle cannot exit twice.
func Exit(vehicleID uuid.UUID, vehicles []domain.Vehicle, hourlyRate float64, now time.Time) (domain.ExitReceipt, error) {
	for _, v := range vehicles {
		if v.ID != vehicleID || !v.Active() {
			continue
		}
		exitTime := now.UTC().Truncate(time.Second)
		v.ExitTime = &exitTime
		return domain.ExitReceipt{
			Vehicle:       v,
			DurationHours: Duration(v.EntryTime, exitTime),
			Fee:           Fee(v.EntryTime, exitTime, hourlyRate),
		}, nil
	}
	return domain.ExitReceipt{}, fmt.Errorf("parking.Exit: %w", domain.ErrNotFound)
}
