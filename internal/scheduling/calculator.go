package scheduling

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// NextAvailable оценка ближайшего времени, когда клиента реально примут
// NextBusinessDay = true означает, что на дату свободного времени нет и Time относится к следующему рабочему дню
// (сама дата не сдвигается, это делает вызывающий код)
type NextAvailable struct {
	Time            types.TimeString
	NextBusinessDay bool
}

// GetAvailableTimeSlots возвращает слоты каталога на дату date за вычетом:
// - прошедших слотов, если date - сегодня (слот должен быть строго позже now);
// - слотов, время которых совпадает со временем ожидающей или идущей записи на эту дату.
// Порядок каталога сохраняется
func GetAvailableTimeSlots(appointments []*domain.Appointment, date time.Time, now time.Time) []types.TimeString {
	slots := Catalog()

	// Шаг 1: Отсекаем прошедшие слоты, если дата - сегодня
	if domain.SameDay(date, now) {
		nowMinutes := now.Hour()*60 + now.Minute()
		upcoming := make([]types.TimeString, 0, len(slots))
		for _, slot := range slots {
			if mustMinutes(slot) > nowMinutes {
				upcoming = append(upcoming, slot)
			}
		}
		slots = upcoming
	}

	// Шаг 2: Собираем занятые стартовые времена
	occupied := make(map[types.TimeString]struct{})
	for _, apt := range sameDayPending(appointments, date) {
		normalized, err := types.NewTimeStringFromString(apt.Time.String())
		if err != nil {
			continue
		}
		occupied[normalized] = struct{}{}
	}

	// Шаг 3: Убираем занятые слоты
	available := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if _, busy := occupied[slot]; !busy {
			available = append(available, slot)
		}
	}

	return available
}

// IsTimeSlotAvailable проверяет, что интервал [start, start+duration) не пересекается
// ни с одной неотменённой записью на дату date, кроме excludeID (0 - не исключать)
// Интервалы полуоткрытые: записи, граничащие концом и началом, не конфликтуют
//
// Примеры для записи 10:00-10:30:
// - новая 10:15-10:45 → конфликт
// - новая 10:30-11:00 → нет конфликта (граничат)
// - новая 09:30-10:00 → нет конфликта (граничат)
func IsTimeSlotAvailable(
	appointments []*domain.Appointment,
	date time.Time,
	start types.TimeString,
	duration int,
	excludeID int64,
) (bool, error) {
	newStart, err := start.Minutes()
	if err != nil {
		return false, err
	}
	if duration <= 0 {
		duration = domain.DefaultServiceDurationMinutes
	}
	newEnd := newStart + duration

	for _, apt := range sameDayActive(appointments, date) {
		if excludeID != 0 && apt.ID == excludeID {
			continue
		}

		existingStart, err := apt.Time.Minutes()
		if err != nil {
			// Запись с повреждённым временем не участвует в проверке
			continue
		}
		existingEnd := existingStart + apt.Duration()

		if newStart < existingEnd && newEnd > existingStart {
			return false, nil
		}
	}

	return true, nil
}

// FindNextAvailableSlot жадно ищет первое окно длительностью duration, начиная с startFrom
// (пустое значение - с начала рабочего дня). Записи обходятся по возрастанию времени начала:
// если окно помещается до очередной записи - возвращается курсор, иначе курсор сдвигается на конец записи.
// Результат не выравнивается по сетке слотов. Если окно заканчивается позже WalkInClosingTime,
// возвращается пустое время
func FindNextAvailableSlot(
	appointments []*domain.Appointment,
	date time.Time,
	duration int,
	startFrom types.TimeString,
) (types.TimeString, error) {
	if startFrom.IsZero() {
		startFrom = OpeningTime
	}
	cursor, err := startFrom.Minutes()
	if err != nil {
		return "", err
	}
	if duration <= 0 {
		duration = domain.DefaultServiceDurationMinutes
	}

	for _, item := range sortedByStart(sameDayActive(appointments, date)) {
		// Окно помещается до начала записи
		if cursor+duration <= item.start {
			break
		}

		if end := item.start + item.apt.Duration(); end > cursor {
			cursor = end
		}
	}

	if cursor+duration > walkInCloseMinutes {
		return "", nil
	}

	return types.FromMinutes(cursor)
}

// CalculateNextAvailableTime оценивает, когда клиент, записывающийся сам, будет реально обслужен
// Это не поиск окна, а оценка "конца оставшейся на сегодня работы":
//  1. База: для сегодняшней даты - now (не раньше 09:00, после 18:30 - перенос на следующий день),
//     для другой даты - 09:00;
//  2. Нет записей на дату → база, округлённая до слота;
//  3. Кандидат = max(база + длительность записей, начинающихся не раньше базы; самый поздний конец записи);
//     учитываются только scheduled и in-progress, завершённые записи время уже не занимают;
//  4. Кандидат не раньше 18:30 → перенос на следующий день;
//  5. Иначе кандидат, округлённый до слота.
func CalculateNextAvailableTime(appointments []*domain.Appointment, date time.Time, now time.Time) NextAvailable {
	rollover := NextAvailable{Time: OpeningTime, NextBusinessDay: true}

	// 1. Определяем базовое время
	base := openingMinutes
	if domain.SameDay(date, now) {
		base = now.Hour()*60 + now.Minute()
		if base < openingMinutes {
			base = openingMinutes
		} else if base >= cutoffMinutes {
			return rollover
		}
	}

	// 2. Записи на дату
	dayAppointments := sortedByStart(sameDayPending(appointments, date))
	if len(dayAppointments) == 0 {
		return NextAvailable{Time: roundUpToSlot(base)}
	}

	// 3. Оцениваем конец оставшейся работы
	latestEnd := base
	totalDuration := 0
	for _, item := range dayAppointments {
		duration := item.apt.Duration()
		if end := item.start + duration; end > latestEnd {
			latestEnd = end
		}
		if item.start >= base {
			totalDuration += duration
		}
	}

	candidate := base + totalDuration
	if latestEnd > candidate {
		candidate = latestEnd
	}

	// 4. Слишком поздно для сегодняшнего дня
	if candidate >= cutoffMinutes {
		return rollover
	}

	// 5. Выравниваем по сетке
	return NextAvailable{Time: roundUpToSlot(candidate)}
}

// sameDayActive возвращает неотменённые записи на дату
func sameDayActive(appointments []*domain.Appointment, date time.Time) []*domain.Appointment {
	result := make([]*domain.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if apt == nil || apt.IsCancelled() || !apt.IsOnDate(date) {
			continue
		}
		result = append(result, apt)
	}
	return result
}

// sameDayPending возвращает записи на дату в статусах scheduled и in-progress
func sameDayPending(appointments []*domain.Appointment, date time.Time) []*domain.Appointment {
	result := make([]*domain.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if apt == nil || !apt.IsPending() || !apt.IsOnDate(date) {
			continue
		}
		result = append(result, apt)
	}
	return result
}

type startItem struct {
	apt   *domain.Appointment
	start int
}

// sortedByStart сортирует записи по времени начала (стабильно), пропуская записи с некорректным временем
func sortedByStart(appointments []*domain.Appointment) []startItem {
	items := make([]startItem, 0, len(appointments))
	for _, apt := range appointments {
		start, err := apt.Time.Minutes()
		if err != nil {
			continue
		}
		items = append(items, startItem{apt: apt, start: start})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].start < items[j].start
	})

	return items
}

// roundUpToSlot округляет минуты вверх до границы SlotStepMinutes
// Вызывается только для значений раньше BookingCutoff, поэтому результат остаётся внутри суток
func roundUpToSlot(minutes int) types.TimeString {
	rounded, err := formatMinutes(minutes).RoundToNextSlot(SlotStepMinutes)
	if err != nil {
		return ""
	}
	return rounded
}

// formatMinutes форматирует минуты, заведомо лежащие внутри суток
func formatMinutes(minutes int) types.TimeString {
	t, err := types.FromMinutes(minutes)
	if err != nil {
		return ""
	}
	return t
}
