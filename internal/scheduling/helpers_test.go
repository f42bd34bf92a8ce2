package scheduling

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

var testDay = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func newAppointment(id int64, t types.TimeString, duration int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		ClientID:        id * 10,
		ClientName:      "client",
		Date:            testDay,
		Time:            t,
		ServiceDuration: duration,
		Status:          status,
	}
}

func onDay(apt *domain.Appointment, day time.Time) *domain.Appointment {
	apt.Date = day
	return apt
}

func times(apts []*domain.Appointment) []types.TimeString {
	result := make([]types.TimeString, 0, len(apts))
	for _, apt := range apts {
		result = append(result, apt.Time)
	}
	return result
}
