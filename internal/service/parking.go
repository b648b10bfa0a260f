// Package service contains the stateful orchestration layer for the parking
// application. The service owns the authoritative in-memory ParkingState,
// delegates every business decision to the pure functions in
// internal/parking, merges their results, and persists after each successful
// mutation. No allocation or fee rules live here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ahmedmasbah72/gestion-parking/internal/domain"
	"github.com/ahmedmasbah72/gestion-parking/internal/parking"
)

// Store is the persistence capability the service depends on: write the full
// state after a mutation. Defined here (in the consumer package) so service
// tests can inject a failing or recording fake without touching bbolt.
type Store interface {
	Save(ctx context.Context, state domain.ParkingState) error
}

// ParkingService applies park and exit operations to the lot state.
// A mutex serializes mutations: the design has exactly one logical writer,
// and the lock extends that guarantee across HTTP handler goroutines.
type ParkingService struct {
	mu    sync.Mutex
	state domain.ParkingState
	store Store
	now   func() time.Time
	log   *slog.Logger
}

// NewParkingService constructs a ParkingService over the given initial state.
// clock supplies the current time for entry and exit stamps; pass nil for
// time.Now. Tests pass a fixed clock so duration assertions are exact.
func NewParkingService(store Store, state domain.ParkingState, log *slog.Logger, clock func() time.Time) *ParkingService {
	if clock == nil {
		clock = time.Now
	}
	return &ParkingService{state: state, store: store, now: clock, log: log}
}

// Park registers an arriving vehicle: validates the plate, assigns the lowest
// free spot, appends the record, and persists.
//
// When persistence fails the vehicle is still returned — the spot is assigned
// and the in-memory state updated — together with an error wrapping
// domain.ErrPersistence so the caller can warn that durability was lost.
func (s *ParkingService) Park(ctx context.Context, plate string) (domain.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := parking.Park(plate, s.state.Vehicles, s.state.TotalSpots, s.now())
	if err != nil {
		return domain.Vehicle{}, err
	}
	s.state.Vehicles = append(s.state.Vehicles, v)

	if err := s.store.Save(ctx, s.state); err != nil {
		return v, fmt.Errorf("service.ParkingService.Park: %w", err)
	}
	return v, nil
}

// Exit records the departure of the active vehicle with the given id,
// replaces its record in place, persists, and returns the receipt.
// Exiting twice fails with domain.ErrNotFound: after the first exit the
// vehicle is no longer active.
//
// The same persistence contract as Park applies: on save failure the receipt
// is returned alongside an error wrapping domain.ErrPersistence.
func (s *ParkingService) Exit(ctx context.Context, vehicleID uuid.UUID) (domain.ExitReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	receipt, err := parking.Exit(vehicleID, s.state.Vehicles, s.state.HourlyRate, s.now())
	if err != nil {
		return domain.ExitReceipt{}, err
	}
	for i := range s.state.Vehicles {
		if s.state.Vehicles[i].ID == vehicleID {
			s.state.Vehicles[i] = receipt.Vehicle
			break
		}
	}

	if err := s.store.Save(ctx, s.state); err != nil {
		return receipt, fmt.Errorf("service.ParkingService.Exit: %w", err)
	}
	return receipt, nil
}

// Vehicles returns a snapshot of the vehicle history in insertion order.
// With activeOnly set, departed vehicles are filtered out.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ParkingService) Vehicles(ctx context.Context, activeOnly bool) ([]domain.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []domain.Vehicle{}
	for _, v := range s.state.Vehicles {
		if activeOnly && !v.Active() {
			continue
		}
		result = append(result, v)
	}
	return result, nil
}

// Status returns the current occupancy summary: counts plus the per-spot
// view the dashboard renders.
func (s *ParkingService) Status(ctx context.Context) (domain.LotStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plateBySpot := make(map[int]string)
	for _, v := range s.state.Vehicles {
		if v.Active() {
			plateBySpot[v.Spot] = v.LicensePlate
		}
	}

	status := domain.LotStatus{
		TotalSpots: s.state.TotalSpots,
		Occupied:   len(plateBySpot),
		Available:  s.state.TotalSpots - len(plateBySpot),
		HourlyRate: s.state.HourlyRate,
		Spots:      make([]domain.SpotStatus, s.state.TotalSpots),
	}
	for i := range status.Spots {
		number := i + 1
		plate, occupied := plateBySpot[number]
		status.Spots[i] = domain.SpotStatus{
			Number:       number,
			Occupied:     occupied,
			LicensePlate: plate,
		}
	}
	return status, nil
}
