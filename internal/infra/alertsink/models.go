package alertsink

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// AlertEvent payload сообщения об уведомлении
type AlertEvent struct {
	EventID          string    `json:"eventId"`
	Audience         string    `json:"audience"`
	Kind             string    `json:"kind"`
	AppointmentID    int64     `json:"appointmentId"`
	ClientID         int64     `json:"clientId,omitempty"`
	ThresholdMinutes int       `json:"thresholdMinutes,omitempty"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	CreatedAt        time.Time `json:"createdAt"`
}

func newAlertEvent(eventID string, alert domain.Alert) AlertEvent {
	return AlertEvent{
		EventID:          eventID,
		Audience:         string(alert.Audience),
		Kind:             string(alert.Kind),
		AppointmentID:    alert.AppointmentID,
		ClientID:         alert.ClientID,
		ThresholdMinutes: alert.ThresholdMinutes,
		Title:            alert.Title,
		Message:          alert.Message,
		CreatedAt:        alert.CreatedAt,
	}
}
