// Package parking implements the parking lot rules engine: spot allocation
// and time-based fee calculation. Every function here is pure — it operates
// on the vehicle snapshot it is given, takes the current time as a parameter,
// and never mutates shared state. The service layer owns merging results back
// into the authoritative ParkingState and persisting it.
package parking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahmedmasbah72/gestion-parking/internal/domain"
)

// FindAvailableSpot scans spot numbers 1..totalSpots in ascending order and
// returns the first one not occupied by an active vehicle, or 0 when the lot
// is full. The ascending scan makes assignment deterministic: freed spots are
// reused lowest-first.
func FindAvailableSpot(vehicles []domain.Vehicle, totalSpots int) int {
	occupied := make(map[int]bool, len(vehicles))
	for _, v := range vehicles {
		if v.Active() {
			occupied[v.Spot] = true
		}
	}
	for spot := 1; spot <= totalSpots; spot++ {
		if !occupied[spot] {
			return spot
		}
	}
	return 0
}

// ActiveByPlate returns the active vehicle whose plate matches plate
// case-insensitively, and whether one exists. Departed vehicles never match,
// so a plate can reappear in history after its vehicle has left.
func ActiveByPlate(vehicles []domain.Vehicle, plate string) (domain.Vehicle, bool) {
	for _, v := range vehicles {
		if v.Active() && strings.EqualFold(v.LicensePlate, plate) {
			return v, true
		}
	}
	return domain.Vehicle{}, false
}

// Park validates a park request against the current vehicle snapshot and,
// on success, returns the new vehicle record to append. Validation order:
// blank plate, duplicate active plate, then capacity. The first failing
// check wins.
//
// The returned vehicle has a fresh id, EntryTime = now truncated to whole
// seconds in UTC (stored timestamps round-trip at second precision), the
// lowest free spot, and no ExitTime. The plate is stored with its original
// casing; only the duplicate check is case-insensitive.
func Park(plate string, vehicles []domain.Vehicle, totalSpots int, now time.Time) (domain.Vehicle, error) {
	if strings.TrimSpace(plate) == "" {
		return domain.Vehicle{}, fmt.Errorf("%w: license plate is required", domain.ErrInvalidInput)
	}
	if existing, ok := ActiveByPlate(vehicles, plate); ok {
		return domain.Vehicle{}, fmt.Errorf("%w: a vehicle with plate %s is already in the lot (spot %d)",
			domain.ErrDuplicateVehicle, plate, existing.Spot)
	}
	spot := FindAvailableSpot(vehicles, totalSpots)
	if spot == 0 {
		return domain.Vehicle{}, domain.ErrLotFull
	}

	return domain.Vehicle{
		ID:           uuid.New(),
		LicensePlate: plate,
		EntryTime:    now.UTC().Truncate(time.Second),
		Spot:         spot,
	}, nil
}
