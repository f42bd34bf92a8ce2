package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID    int64            // ID пользователя, создающего запись
	ClientID  *int64           // Клиент, на которого создается запись (только для администратора)
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи (без времени)
	Time      types.TimeString // Время начала (например, "10:00")
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	ClientID        int64
	ClientName      string
	ClientPhone     *string
	Date            time.Time
	Time            types.TimeString
	ServiceID       int64
	ServiceName     string
	ServiceDuration int
	ServicePrice    float64
	Notes           *string
	Status          string

	CreatedAt time.Time
	UpdatedAt time.Time
}
