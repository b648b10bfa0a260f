package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedmasbah72/gestion-parking/internal/domain"
	"github.com/ahmedmasbah72/gestion-parking/internal/service"
	"github.com/ahmedmasbah72/gestion-parking/testutil"
)

// mockStore is a hand-written test double for service.Store. It records every
// saved state and can be told to fail.
type mockStore struct {
	saved  []domain.ParkingState
	setErr error
}

func (m *mockStore) Save(_ context.Context, state domain.ParkingState) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.saved = append(m.saved, state)
	return nil
}

// compile-time check: mockStore must satisfy service.Store.
var _ service.Store = (*mockStore)(nil)

// ---- helpers ---------------------------------------------------------------

var baseTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// fixedClock returns a clock stuck at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newService(st service.Store, totalSpots int, rate float64, clock func() time.Time) *service.ParkingService {
	state := domain.NewParkingState(totalSpots, rate)
	return service.NewParkingService(st, state, testutil.DiscardLogger(), clock)
}

// ---- Park ------------------------------------------------------------------

func TestParkingService_Park_AppendsAndSaves(t *testing.T) {
	st := &mockStore{}
	svc := newService(st, 20, 2, fixedClock(baseTime))

	v, err := svc.Park(context.Background(), "AA-111-AA")

	require.NoError(t, err)
	assert.Equal(t, 1, v.Spot)
	assert.Equal(t, baseTime, v.EntryTime)

	require.Len(t, st.saved, 1, "every successful mutation persists")
	require.Len(t, st.saved[0].Vehicles, 1)
	assert.Equal(t, v, st.saved[0].Vehicles[0])
}

func TestParkingService_Park_SequentialSpots(t *testing.T) {
	svc := newService(&mockStore{}, 20, 2, fixedClock(baseTime))

	for want := 1; want <= 5; want++ {
		v, err := svc.Park(context.Background(), "PLATE-"+string(rune('A'+want)))
		require.NoError(t, err)
		assert.Equal(t, want, v.Spot)
	}
}

func TestParkingService_Park_FailureLeavesStateUnchanged(t *testing.T) {
	st := &mockStore{}
	svc := newService(st, 20, 2, fixedClock(baseTime))

	_, err := svc.Park(context.Background(), "AA-111-AA")
	require.NoError(t, err)

	_, err = svc.Park(context.Background(), "aa-111-aa")
	assert.ErrorIs(t, err, domain.ErrDuplicateVehicle)

	vehicles, err := svc.Vehicles(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, vehicles, 1, "failed park must not touch state")
	assert.Len(t, st.saved, 1, "failed park must not persist")
}

func TestParkingService_Park_CapacityThenReuseAfterExit(t *testing.T) {
	svc := newService(&mockStore{}, 2, 2, fixedClock(baseTime))

	first, err := svc.Park(context.Background(), "AA-1")
	require.NoError(t, err)
	_, err = svc.Park(context.Background(), "BB-2")
	require.NoError(t, err)

	_, err = svc.Park(context.Background(), "CC-3")
	require.ErrorIs(t, err, domain.ErrLotFull)

	_, err = svc.Exit(context.Background(), first.ID)
	require.NoError(t, err)

	v, err := svc.Park(context.Background(), "CC-3")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Spot, "freed lowest spot is reused")
}

func TestParkingService_Park_PersistenceFailureKeepsVehicle(t *testing.T) {
	st := &mockStore{setErr: errors.New("disk full")}
	svc := newService(st, 20, 2, fixedClock(baseTime))

	v, err := svc.Park(context.Background(), "AA-111-AA")

	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 1, v.Spot, "the vehicle is parked despite the failed save")

	active, listErr := svc.Vehicles(context.Background(), true)
	require.NoError(t, listErr)
	assert.Len(t, active, 1, "in-memory state keeps the mutation")
}

// ---- Exit ------------------------------------------------------------------

func TestParkingService_Exit_ComputesFeeAndSaves(t *testing.T) {
	st := &mockStore{}
	now := baseTime
	clock := func() time.Time { return now }
	svc := newService(st, 20, 2, clock)

	v, err := svc.Park(context.Background(), "AA-111-AA")
	require.NoError(t, err)

	now = baseTime.Add(61 * time.Minute)
	receipt, err := svc.Exit(context.Background(), v.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, receipt.DurationHours)
	assert.Equal(t, 4.0, receipt.Fee)
	assert.Equal(t, v.Spot, receipt.Vehicle.Spot)

	require.Len(t, st.saved, 2)
	persisted := st.saved[1].Vehicles[0]
	require.NotNil(t, persisted.ExitTime, "the record is replaced in place")
	assert.Equal(t, v.ID, persisted.ID)
}

func TestParkingService_Exit_TwiceFails(t *testing.T) {
	svc := newService(&mockStore{}, 20, 2, fixedClock(baseTime))

	v, err := svc.Park(context.Background(), "AA-111-AA")
	require.NoError(t, err)

	_, err = svc.Exit(context.Background(), v.ID)
	require.NoError(t, err)

	_, err = svc.Exit(context.Background(), v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "a departed vehicle cannot exit again")
}

func TestParkingService_Exit_UnknownID(t *testing.T) {
	svc := newService(&mockStore{}, 20, 2, fixedClock(baseTime))

	_, err := svc.Exit(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParkingService_Exit_KeepsHistory(t *testing.T) {
	svc := newService(&mockStore{}, 20, 2, fixedClock(baseTime))

	v, err := svc.Park(context.Background(), "AA-111-AA")
	require.NoError(t, err)
	_, err = svc.Exit(context.Background(), v.ID)
	require.NoError(t, err)

	all, err := svc.Vehicles(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 1, "departed vehicles stay in history")

	active, err := svc.Vehicles(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, active)
}

// ---- Status ----------------------------------------------------------------

func TestParkingService_Status(t *testing.T) {
	svc := newService(&mockStore{}, 3, 2.5, fixedClock(baseTime))

	_, err := svc.Park(context.Background(), "AA-1")
	require.NoError(t, err)
	second, err := svc.Park(context.Background(), "BB-2")
	require.NoError(t, err)
	_, err = svc.Exit(context.Background(), second.ID)
	require.NoError(t, err)

	status, err := svc.Status(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalSpots)
	assert.Equal(t, 1, status.Occupied)
	assert.Equal(t, 2, status.Available)
	assert.Equal(t, 2.5, status.HourlyRate)
	require.Len(t, status.Spots, 3)
	assert.Equal(t, domain.SpotStatus{Number: 1, Occupied: true, LicensePlate: "AA-1"}, status.Spots[0])
	assert.Equal(t, domain.SpotStatus{Number: 2, Occupied: false}, status.Spots[1])
	assert.Equal(t, domain.SpotStatus{Number: 3, Occupied: false}, status.Spots[2])
}
