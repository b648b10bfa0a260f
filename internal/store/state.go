package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahmedmasbah72/gestion-parking/internal/domain"
)

// StateKey is the single key under which the whole application state lives.
const StateKey = "parkingState"

// persistedVehicle is the storage shape of a vehicle. Timestamps are RFC 3339
// strings because the medium only holds text; ExitTime is a null/absent field
// while the vehicle is parked.
type persistedVehicle struct {
	ID           string  `json:"id"`
	LicensePlate string  `json:"license_plate"`
	EntryTime    string  `json:"entry_time"`
	ExitTime     *string `json:"exit_time,omitempty"`
	Spot         int     `json:"spot"`
}

// persistedState is the storage shape of the aggregate.
type persistedState struct {
	TotalSpots int                `json:"total_spots"`
	HourlyRate float64            `json:"hourly_rate"`
	Vehicles   []persistedVehicle `json:"vehicles"`
}

// StateStore serializes ParkingState to and from the KV medium.
// Load never fails without handing back a usable state: corrupted or missing
// data falls back to the configured defaults.
type StateStore struct {
	kv       KV
	defaults domain.ParkingState
	log      *slog.Logger
}

// NewStateStore constructs a StateStore over kv. defaults is the fresh state
// returned by Load when nothing is stored yet or stored data is corrupt.
func NewStateStore(kv KV, defaults domain.ParkingState, log *slog.Logger) *StateStore {
	return &StateStore{kv: kv, defaults: defaults, log: log}
}

// Save writes the full state under StateKey.
// A write failure is logged and returned wrapped in domain.ErrPersistence;
// the caller's in-memory state remains authoritative either way.
func (s *StateStore) Save(ctx context.Context, state domain.ParkingState) error {
	p := persistedState{
		TotalSpots: state.TotalSpots,
		HourlyRate: state.HourlyRate,
		Vehicles:   make([]persistedVehicle, len(state.Vehicles)),
	}
	for i, v := range state.Vehicles {
		pv := persistedVehicle{
			ID:           v.ID.String(),
			LicensePlate: v.LicensePlate,
			EntryTime:    v.EntryTime.UTC().Format(time.RFC3339),
			Spot:         v.Spot,
		}
		if v.ExitTime != nil {
			exit := v.ExitTime.UTC().Format(time.RFC3339)
			pv.ExitTime = &exit
		}
		p.Vehicles[i] = pv
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("store.StateStore.Save: encode: %w", err)
	}
	if err := s.kv.Set(ctx, StateKey, data); err != nil {
		s.log.Error("could not save parking state", "error", err)
		return fmt.Errorf("store.StateStore.Save: %w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// Load reads and validates the stored state.
//
// Absent key: returns the default state and a nil error — first run.
// Read failure: returns the default state and the wrapped store error.
// Parse or shape failure: returns the default state and domain.ErrCorruptState.
//
// In every case the returned state is usable; callers decide whether to
// surface the error as a notification.
func (s *StateStore) Load(ctx context.Context) (domain.ParkingState, error) {
	data, ok, err := s.kv.Get(ctx, StateKey)
	if err != nil {
		s.log.Error("could not read parking state", "error", err)
		return s.freshState(), fmt.Errorf("store.StateStore.Load: %w: %w", domain.ErrPersistence, err)
	}
	if !ok {
		return s.freshState(), nil
	}

	state, err := decodeState(data)
	if err != nil {
		s.log.Error("stored parking state is corrupt, starting fresh", "error", err)
		return s.freshState(), fmt.Errorf("store.StateStore.Load: %w: %w", domain.ErrCorruptState, err)
	}
	return state, nil
}

// freshState returns an independent copy of the default state so callers can
// append to Vehicles without sharing a backing array.
func (s *StateStore) freshState() domain.ParkingState {
	return domain.NewParkingState(s.defaults.TotalSpots, s.defaults.HourlyRate)
}

// decodeState parses and validates a stored state blob. It fails closed:
// unknown fields, missing timestamps, out-of-range spots, or invariant
// violations among active vehicles all reject the blob instead of trusting
// its shape.
func decodeState(data []byte) (domain.ParkingState, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var p persistedState
	if err := dec.Decode(&p); err != nil {
		return domain.ParkingState{}, fmt.Errorf("decode: %w", err)
	}
	if p.TotalSpots < 1 {
		return domain.ParkingState{}, fmt.Errorf("total_spots %d out of range", p.TotalSpots)
	}
	if p.HourlyRate <= 0 {
		return domain.ParkingState{}, fmt.Errorf("hourly_rate %v out of range", p.HourlyRate)
	}

	state := domain.NewParkingState(p.TotalSpots, p.HourlyRate)
	activeSpots := make(map[int]bool)
	activePlates := make(map[string]bool)
	for i, pv := range p.Vehicles {
		v, err := decodeVehicle(pv, p.TotalSpots)
		if err != nil {
			return domain.ParkingState{}, fmt.Errorf("vehicle %d: %w", i, err)
		}
		if v.Active() {
			if activeSpots[v.Spot] {
				return domain.ParkingState{}, fmt.Errorf("vehicle %d: spot %d occupied twice", i, v.Spot)
			}
			plate := strings.ToLower(v.LicensePlate)
			if activePlates[plate] {
				return domain.ParkingState{}, fmt.Errorf("vehicle %d: plate %s active twice", i, v.LicensePlate)
			}
			activeSpots[v.Spot] = true
			activePlates[plate] = true
		}
		state.Vehicles = append(state.Vehicles, v)
	}
	return state, nil
}

// decodeVehicle reconstructs one vehicle record, parsing its textual
// timestamps back into time.Time values.
func decodeVehicle(pv persistedVehicle, totalSpots int) (domain.Vehicle, error) {
	id, err := uuid.Parse(pv.ID)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("id: %w", err)
	}
	if strings.TrimSpace(pv.LicensePlate) == "" {
		return domain.Vehicle{}, fmt.Errorf("license_plate is empty")
	}
	if pv.Spot < 1 || pv.Spot > totalSpots {
		return domain.Vehicle{}, fmt.Errorf("spot %d out of range [1, %d]", pv.Spot, totalSpots)
	}
	entry, err := time.Parse(time.RFC3339, pv.EntryTime)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("entry_time: %w", err)
	}

	v := domain.Vehicle{
		ID:           id,
		LicensePlate: pv.LicensePlate,
		EntryTime:    entry.UTC(),
		Spot:         pv.Spot,
	}
	if pv.ExitTime != nil {
		exit, err := time.Parse(time.RFC3339, *pv.ExitTime)
		if err != nil {
			return domain.Vehicle{}, fmt.Errorf("exit_time: %w", err)
		}
		utc := exit.UTC()
		v.ExitTime = &utc
	}
	return v, nil
}
