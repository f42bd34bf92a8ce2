package scheduling

import "github.com/m04kA/SMC-BarberService/pkg/types"

const (
	// SlotStepMinutes шаг сетки слотов
	SlotStepMinutes = 30

	// OpeningTime начало рабочего дня
	OpeningTime types.TimeString = "09:00"

	// BookingCutoff последний слот каталога; начиная с этого времени самозапись на сегодня закрыта
	BookingCutoff types.TimeString = "18:30"

	// WalkInClosingTime к этому времени должна закончиться запись без предварительной брони
	// Отличается от BookingCutoff намеренно: подбор окна для администратора ограничен 18:00
	WalkInClosingTime types.TimeString = "18:00"
)

// catalog фиксированные слоты рабочего дня: 09:00-12:30 и 14:00-18:30 с шагом 30 минут
// Обед 12:30-14:00 исключён
var catalog = []types.TimeString{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"12:00", "12:30", "14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30", "18:00", "18:30",
}

// Catalog возвращает копию каталога слотов в порядке возрастания
func Catalog() []types.TimeString {
	slots := make([]types.TimeString, len(catalog))
	copy(slots, catalog)
	return slots
}

// IsCatalogSlot проверяет, что время совпадает с одним из слотов каталога
func IsCatalogSlot(t types.TimeString) bool {
	normalized, err := types.NewTimeStringFromString(t.String())
	if err != nil {
		return false
	}
	for _, slot := range catalog {
		if slot == normalized {
			return true
		}
	}
	return false
}

// mustMinutes переводит константы пакета в минуты
func mustMinutes(t types.TimeString) int {
	m, err := t.Minutes()
	if err != nil {
		panic("scheduling: invalid constant " + t.String())
	}
	return m
}

var (
	openingMinutes     = mustMinutes(OpeningTime)
	cutoffMinutes      = mustMinutes(BookingCutoff)
	walkInCloseMinutes = mustMinutes(WalkInClosingTime)
)
