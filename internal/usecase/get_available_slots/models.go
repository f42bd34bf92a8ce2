package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID int64     // ID пользователя (для логирования, не влияет на результат)
	Date   time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  time.Time          // Дата, на которую запрашивались слоты
	Slots []types.TimeString // Свободные слоты каталога по возрастанию

	// Ориентировочное время, когда клиента реально примут
	NextAvailableTime types.TimeString
	NextBusinessDay   bool // NextAvailableTime относится к следующему рабочему дню

	OccupiedCount int // Количество записей scheduled и in-progress на дату
}
