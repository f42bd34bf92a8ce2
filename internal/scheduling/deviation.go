package scheduling

import (
	"math"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// OnTimeToleranceMinutes отклонение в пределах ±2 минут считается вовремя
const OnTimeToleranceMinutes = 2

// DeviationType классификация завершения записи относительно ожидаемого конца
type DeviationType string

const (
	DeviationEarly  DeviationType = "early"
	DeviationLate   DeviationType = "late"
	DeviationOnTime DeviationType = "on-time"
)

// Deviation отклонение фактического завершения от ожидаемого
// Minutes - модуль отклонения (0 для on-time)
type Deviation struct {
	Type    DeviationType
	Minutes int
}

// SignedMinutes возвращает сдвиг со знаком: отрицательный для раннего завершения
func (d Deviation) SignedMinutes() int {
	switch d.Type {
	case DeviationEarly:
		return -d.Minutes
	case DeviationLate:
		return d.Minutes
	default:
		return 0
	}
}

// IsOnTime возвращает true, если сдвигать расписание не нужно
func (d Deviation) IsOnTime() bool {
	return d.Type == DeviationOnTime
}

// AdjustedAppointment последующая запись с пересчитанным ориентировочным временем
type AdjustedAppointment struct {
	Appointment  *domain.Appointment
	AdjustedTime types.TimeString
}

// Impact влияние завершённой записи на оставшееся расписание дня
type Impact struct {
	Deviation Deviation
	Affected  []AdjustedAppointment
}

// CalculateTimeDeviation сравнивает фактическое завершение с ожидаемым (начало + длительность)
// Фактическое время берётся из apt.CompletedAt, затем из completedAt, затем now
// Разница округляется до целых минут: < -2 → early, > 2 → late, иначе on-time
// Никогда не возвращает ошибку: при некорректном времени записи отклонение считается нулевым
func CalculateTimeDeviation(apt *domain.Appointment, completedAt *time.Time, now time.Time) Deviation {
	onTime := Deviation{Type: DeviationOnTime}
	if apt == nil {
		return onTime
	}

	expectedEnd, err := apt.ExpectedEnd(now.Location())
	if err != nil {
		return onTime
	}

	actual := now
	switch {
	case apt.CompletedAt != nil:
		actual = *apt.CompletedAt
	case completedAt != nil:
		actual = *completedAt
	}

	diff := roundMinutes(actual.Sub(expectedEnd))

	switch {
	case diff < -OnTimeToleranceMinutes:
		return Deviation{Type: DeviationEarly, Minutes: -diff}
	case diff > OnTimeToleranceMinutes:
		return Deviation{Type: DeviationLate, Minutes: diff}
	default:
		return onTime
	}
}

// GetSubsequentAppointments возвращает записи того же дня в статусе scheduled,
// начинающиеся строго позже reference (сама reference исключается), по возрастанию времени
func GetSubsequentAppointments(appointments []*domain.Appointment, reference *domain.Appointment) []*domain.Appointment {
	result := make([]*domain.Appointment, 0)
	if reference == nil {
		return result
	}

	referenceStart, err := reference.Time.Minutes()
	if err != nil {
		return result
	}

	candidates := make([]*domain.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if apt == nil || apt.ID == reference.ID || apt.Status != domain.StatusScheduled {
			continue
		}
		if !domain.SameDay(apt.Date, reference.Date) {
			continue
		}
		candidates = append(candidates, apt)
	}

	for _, item := range sortedByStart(candidates) {
		if item.start > referenceStart {
			result = append(result, item.apt)
		}
	}

	return result
}

// CalculateAdjustedTime сдвигает время на adjustment минут (со знаком)
// Результат ограничивается пределами суток [00:00, 23:59] и никогда не переходит через полночь
// Некорректное исходное время возвращается без изменений
func CalculateAdjustedTime(original types.TimeString, adjustment int) types.TimeString {
	minutes, err := original.Minutes()
	if err != nil {
		return original
	}

	adjusted := minutes + adjustment
	if adjusted < 0 {
		adjusted = 0
	}
	if adjusted > types.MinutesPerDay-1 {
		adjusted = types.MinutesPerDay - 1
	}

	return formatMinutes(adjusted)
}

// ScheduleImpact считает отклонение завершённой записи и новое ориентировочное время
// всех последующих записей дня. Все они сдвигаются на одно и то же отклонение
func ScheduleImpact(
	appointments []*domain.Appointment,
	completed *domain.Appointment,
	completedAt *time.Time,
	now time.Time,
) Impact {
	deviation := CalculateTimeDeviation(completed, completedAt, now)
	shift := deviation.SignedMinutes()

	subsequent := GetSubsequentAppointments(appointments, completed)
	affected := make([]AdjustedAppointment, 0, len(subsequent))
	for _, apt := range subsequent {
		affected = append(affected, AdjustedAppointment{
			Appointment:  apt,
			AdjustedTime: CalculateAdjustedTime(apt.Time, shift),
		})
	}

	return Impact{
		Deviation: deviation,
		Affected:  affected,
	}
}

// OverrunMinutes сколько минут прошло после ожидаемого окончания записи (округлено, может быть отрицательным)
// ok = false, если время записи некорректно
func OverrunMinutes(apt *domain.Appointment, now time.Time) (minutes int, ok bool) {
	if apt == nil {
		return 0, false
	}
	expectedEnd, err := apt.ExpectedEnd(now.Location())
	if err != nil {
		return 0, false
	}
	return roundMinutes(now.Sub(expectedEnd)), true
}

// roundMinutes округляет длительность до целых минут, половины - вверх
func roundMinutes(d time.Duration) int {
	return int(math.Floor(d.Minutes() + 0.5))
}
