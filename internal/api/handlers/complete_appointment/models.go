package complete_appointment

import (
	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
	completeAppointment "github.com/m04kA/SMC-BarberService/internal/usecase/complete_appointment"
)

// DeviationResponse отклонение фактического завершения от ожидаемого
type DeviationResponse struct {
	Type    string `json:"type"`    // "early" | "late" | "on-time"
	Minutes int    `json:"minutes"` // модуль отклонения
}

// AffectedAppointmentResponse последующая запись с ориентировочным временем
type AffectedAppointmentResponse struct {
	AppointmentID int64  `json:"appointmentId"`
	ClientName    string `json:"clientName"`
	OriginalTime  string `json:"originalTime"`
	AdjustedTime  string `json:"adjustedTime"`
}

// CompleteAppointmentResponse HTTP response model
type CompleteAppointmentResponse struct {
	Appointment *models.AppointmentResponse   `json:"appointment"`
	Deviation   DeviationResponse             `json:"deviation"`
	Affected    []AffectedAppointmentResponse `json:"affectedAppointments"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completeAppointment.Response) *CompleteAppointmentResponse {
	affected := make([]AffectedAppointmentResponse, 0, len(resp.Impact.Affected))
	for _, adj := range resp.Impact.Affected {
		affected = append(affected, AffectedAppointmentResponse{
			AppointmentID: adj.Appointment.ID,
			ClientName:    adj.Appointment.ClientName,
			OriginalTime:  adj.Appointment.Time.String(),
			AdjustedTime:  adj.AdjustedTime.String(),
		})
	}

	return &CompleteAppointmentResponse{
		Appointment: models.FromDomainAppointment(resp.Appointment),
		Deviation: DeviationResponse{
			Type:    string(resp.Impact.Deviation.Type),
			Minutes: resp.Impact.Deviation.Minutes,
		},
		Affected: affected,
	}
}
