package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusInProgress AppointmentStatus = "in-progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// IsValid returns true for known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Appointment represents a booked visit to the barber chair
type Appointment struct {
	ID       int64
	ClientID int64
	Date     time.Time // only year, month and day are meaningful
	Time     types.TimeString
	Status   AppointmentStatus

	// Denormalized data for history
	ClientName      string
	ClientPhone     *string
	ServiceID       int64
	ServiceName     string
	ServiceDuration int
	ServicePrice    float64
	Notes           *string

	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Duration returns the occupancy length in minutes, defaulting to 30 when missing
func (a *Appointment) Duration() int {
	if a.ServiceDuration <= 0 {
		return DefaultServiceDurationMinutes
	}
	return a.ServiceDuration
}

// IsCancelled returns true if the appointment no longer occupies the chair
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsPending returns true for scheduled or in-progress appointments
func (a *Appointment) IsPending() bool {
	return a.Status == StatusScheduled || a.Status == StatusInProgress
}

// IsFinal returns true if no further transitions are allowed
func (a *Appointment) IsFinal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving to next
// scheduled -> in-progress -> completed, scheduled -> cancelled
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusScheduled:
		return next == StatusInProgress || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted
	default:
		return false
	}
}

// IsOnDate returns true if the appointment occupies the given calendar day
func (a *Appointment) IsOnDate(date time.Time) bool {
	return SameDay(a.Date, date)
}

// StartAt returns the scheduled start as an instant in loc
func (a *Appointment) StartAt(loc *time.Location) (time.Time, error) {
	return a.Time.OnDate(a.Date, loc)
}

// ExpectedEnd returns the scheduled start plus the service duration
func (a *Appointment) ExpectedEnd(loc *time.Location) (time.Time, error) {
	start, err := a.StartAt(loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(a.Duration()) * time.Minute), nil
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	ClientID         *int64             // Только записи клиента (опционально)
	StartDate        *time.Time         // Начало периода (опционально)
	EndDate          *time.Time         // Конец периода (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые записи
}

// IsSingleDay returns true when the filter targets exactly one calendar day
func (f AppointmentsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && SameDay(*f.StartDate, *f.EndDate)
}

// SameDay reports whether two instants fall on the same calendar day
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
