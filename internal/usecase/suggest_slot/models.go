package suggest_slot

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модель запроса на подбор окна для клиента без записи
// Длительность берется из услуги, если указан ServiceID, иначе из DurationMinutes
type Request struct {
	Date            time.Time
	ServiceID       *int64
	DurationMinutes int
	From            types.TimeString // Пусто - с текущего момента (сегодня) или с открытия
}

// Response модель ответа с подобранным окном
type Response struct {
	Date            time.Time
	Time            types.TimeString // Пусто, если окна до закрытия нет
	Found           bool
	DurationMinutes int
}
