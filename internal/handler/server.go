// Package handler implements the HTTP handlers for the parking API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, vehicle.go, status.go) but share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ahmedmasbah72/gestion-parking/internal/domain"
)

// ParkingServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type ParkingServicer interface {
	Park(ctx context.Context, plate string) (domain.Vehicle, error)
	Exit(ctx context.Context, vehicleID uuid.UUID) (domain.ExitReceipt, error)
	Vehicles(ctx context.Context, activeOnly bool) ([]domain.Vehicle, error)
	Status(ctx context.Context) (domain.LotStatus, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	parking ParkingServicer
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(parking ParkingServicer, log *slog.Logger) *Server {
	return &Server{parking: parking, log: log}
}

// Routes registers every API endpoint on a fresh chi router.
// Mount it under the middleware stack in main.go.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/lot", s.GetLotStatus)
	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", s.ListVehicles)
		r.Post("/", s.ParkVehicle)
		r.Post("/{vehicleID}/exit", s.ExitVehicle)
	})
	return r
}

// writeJSON encodes v as the response body with the given status code.
// Encoding failures are logged; at that point the status line is already
// written, so there is nothing better to send the client.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}
