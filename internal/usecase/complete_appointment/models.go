package complete_appointment

import (
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/scheduling"
)

// Request модель запроса на завершение записи
type Request struct {
	UserID        int64
	AppointmentID int64
}

// Response завершённая запись и её влияние на оставшееся расписание дня
type Response struct {
	Appointment *domain.Appointment
	Impact      scheduling.Impact
}
