package domain

import "time"

// NotificationSettings controls which threshold alerts the scheduler emits
type NotificationSettings struct {
	Enabled bool

	// ClientAlertMinutes lists the "minutes before start" thresholds for client alerts
	ClientAlertMinutes []int

	// AdminAlertMinutes is the "client is near" threshold for the administrator
	AdminAlertMinutes int

	// LongRunningGraceMinutes is how long an in-progress appointment may overrun before alerts start
	LongRunningGraceMinutes int

	// LongRunningStepMinutes is the repeat period of overrun alerts
	LongRunningStepMinutes int
}

// DefaultNotificationSettings returns 20/10/5 minute client alerts and a 5 minute admin alert
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:                 true,
		ClientAlertMinutes:      []int{20, 10, 5},
		AdminAlertMinutes:       5,
		LongRunningGraceMinutes: 5,
		LongRunningStepMinutes:  5,
	}
}

// IsEnabledFor returns true if client alerts are enabled for the given threshold
func (s NotificationSettings) IsEnabledFor(minutes int) bool {
	if !s.Enabled {
		return false
	}
	for _, m := range s.ClientAlertMinutes {
		if m == minutes {
			return true
		}
	}
	return false
}

// Audience is the recipient group of an alert
type Audience string

const (
	AudienceClient Audience = "client"
	AudienceAdmin  Audience = "admin"
)

// AlertKind classifies the reason an alert was raised
type AlertKind string

const (
	AlertNewAppointment AlertKind = "new_appointment"
	AlertUpcoming       AlertKind = "upcoming"
	AlertClientNear     AlertKind = "client_near"
	AlertScheduleShift  AlertKind = "schedule_shift"
	AlertScheduleUpdate AlertKind = "schedule_updated"
	AlertRunningLate    AlertKind = "running_late"
	AlertOverrun        AlertKind = "overrun"
)

// Alert is a threshold-crossing event handed to the alert sink
type Alert struct {
	Audience         Audience
	Kind             AlertKind
	AppointmentID    int64
	ClientID         int64
	ThresholdMinutes int
	Title            string
	Message          string
	CreatedAt        time.Time
}
