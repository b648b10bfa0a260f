package handler

import "net/http"

// GetLotStatus handles GET /lot.
// It returns the occupancy summary rendered by the dashboard: counts, the
// hourly rate, and the per-spot occupancy grid.
func (s *Server) GetLotStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.parking.Status(r.Context())
	if err != nil {
		code, body := errorBody(err)
		s.writeJSON(w, code, body)
		return
	}
	s.writeJSON(w, http.StatusOK, status)
}
