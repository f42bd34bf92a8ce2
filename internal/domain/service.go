package domain

import "time"

// BarberService represents an item of the service catalog (haircut, beard trim, ...)
type BarberService struct {
	ID              int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration returns the service length in minutes, defaulting to 30 when missing
func (s *BarberService) Duration() int {
	if s.DurationMinutes <= 0 {
		return DefaultServiceDurationMinutes
	}
	return s.DurationMinutes
}
