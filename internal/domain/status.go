package domain

// SpotStatus describes one physical spot for the occupancy view.
// LicensePlate is empty when the spot is free.
type SpotStatus struct {
	Number       int    `json:"number"`
	Occupied     bool   `json:"occupied"`
	LicensePlate string `json:"license_plate,omitempty"`
}

// LotStatus is a point-in-time occupancy summary of the whole lot,
// rendered by the dashboard.
type LotStatus struct {
	TotalSpots int          `json:"total_spots"`
	Occupied   int          `json:"occupied"`
	Available  int          `json:"available"`
	HourlyRate float64      `json:"hourly_rate"`
	Spots      []SpotStatus `json:"spots"`
}
