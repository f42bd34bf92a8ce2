package domain

// Default values
const (
	DefaultServiceDurationMinutes = 30
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxServiceNameLength      = 100
	MaxNotesLength            = 500
	MinPhoneLength            = 7
	MaxPhoneLength            = 20
	MaxNameLength             = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// PendingStatuses статусы, занимающие кресло в очереди
var PendingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusInProgress,
}
