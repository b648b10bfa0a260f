package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahmedmasbah72/gestion-parking/internal/domain"
)

// InstrumentedParkingService wraps a ParkingService with Prometheus metrics:
// operation counters labelled by outcome, an occupancy gauge, and a running
// total of fees collected. Read operations pass through uninstrumented.
type InstrumentedParkingService struct {
	*ParkingService

	parkOperations *prometheus.CounterVec
	exitOperations *prometheus.CounterVec
	occupancy      prometheus.Gauge
	totalSpots     prometheus.Gauge
	feesCollected  prometheus.Counter
}

// NewInstrumentedParkingService decorates svc, registering its metrics with
// reg. The occupancy gauge is primed from the loaded state so restarts report
// the correct value immediately.
func NewInstrumentedParkingService(svc *ParkingService, reg prometheus.Registerer) *InstrumentedParkingService {
	factory := promauto.With(reg)

	i := &InstrumentedParkingService{
		ParkingService: svc,
		parkOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_park_operations_total",
			Help: "Park attempts by outcome.",
		}, []string{"status"}),
		exitOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_exit_operations_total",
			Help: "Exit attempts by outcome.",
		}, []string{"status"}),
		occupancy: factory.NewGauge(prometheus.GaugeOpts{
			Name: "parking_lot_occupancy",
			Help: "Current number of occupied spots.",
		}),
		totalSpots: factory.NewGauge(prometheus.GaugeOpts{
			Name: "parking_lot_total_spots",
			Help: "Configured lot capacity.",
		}),
		feesCollected: factory.NewCounter(prometheus.CounterOpts{
			Name: "parking_fees_collected_total",
			Help: "Sum of all fees charged at exit, in currency units.",
		}),
	}

	svc.mu.Lock()
	i.totalSpots.Set(float64(svc.state.TotalSpots))
	active := 0
	for _, v := range svc.state.Vehicles {
		if v.Active() {
			active++
		}
	}
	i.occupancy.Set(float64(active))
	svc.mu.Unlock()

	return i
}

// Park delegates to the wrapped service and records the outcome.
func (i *InstrumentedParkingService) Park(ctx context.Context, plate string) (domain.Vehicle, error) {
	v, err := i.ParkingService.Park(ctx, plate)
	i.parkOperations.WithLabelValues(outcomeLabel(err)).Inc()
	if parked(err) {
		i.occupancy.Inc()
	}
	return v, err
}

// Exit delegates to the wrapped service and records the outcome and fee.
func (i *InstrumentedParkingService) Exit(ctx context.Context, vehicleID uuid.UUID) (domain.ExitReceipt, error) {
	receipt, err := i.ParkingService.Exit(ctx, vehicleID)
	i.exitOperations.WithLabelValues(outcomeLabel(err)).Inc()
	if parked(err) {
		i.occupancy.Dec()
		i.feesCollected.Add(receipt.Fee)
	}
	return receipt, err
}

// parked reports whether the mutation was applied to the lot state.
// A persistence failure still counts: the spot was assigned or released,
// only the write to disk was lost.
func parked(err error) bool {
	return err == nil || errors.Is(err, domain.ErrPersistence)
}

// outcomeLabel maps an operation error to its metric label.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrDuplicateVehicle):
		return "duplicate"
	case errors.Is(err, domain.ErrLotFull):
		return "lot_full"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence_error"
	default:
		return "error"
	}
}
