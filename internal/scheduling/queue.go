package scheduling

import (
	"math"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// QueueStatus положение клиента в сегодняшней очереди
type QueueStatus struct {
	NextAppointment   *domain.Appointment // Ближайшая запись клиента на сегодня (nil, если нет)
	Position          int                 // Позиция в очереди, начиная с 1 (0, если записи нет)
	EstimatedWait     int                 // Суммарная длительность записей перед клиентом, мин
	TotalInQueue      int                 // Записей в очереди сегодня (scheduled + in-progress)
	CurrentlyServing  string              // Имя клиента в кресле (пусто, если никого)
	MinutesUntilStart int                 // Минут до начала записи клиента
}

// ClientsBeforeTime количество ожидающих записей (scheduled, in-progress) на дату, начинающихся раньше t
func ClientsBeforeTime(appointments []*domain.Appointment, date time.Time, t types.TimeString) int {
	return len(pendingBefore(appointments, date, t))
}

// WaitTimeBeforeTime суммарная длительность ожидающих записей на дату, начинающихся раньше t
func WaitTimeBeforeTime(appointments []*domain.Appointment, date time.Time, t types.TimeString) int {
	total := 0
	for _, apt := range pendingBefore(appointments, date, t) {
		total += apt.Duration()
	}
	return total
}

// MinutesUntil сколько полных минут осталось до начала записи (отрицательное - уже началась)
func MinutesUntil(apt *domain.Appointment, now time.Time) (int, error) {
	start, err := apt.StartAt(now.Location())
	if err != nil {
		return 0, err
	}
	return int(math.Floor(start.Sub(now).Minutes())), nil
}

// TodayForClient записи клиента на сегодня в статусе scheduled по возрастанию времени
func TodayForClient(appointments []*domain.Appointment, clientID int64, now time.Time) []*domain.Appointment {
	own := make([]*domain.Appointment, 0)
	for _, apt := range appointments {
		if apt != nil && apt.ClientID == clientID {
			own = append(own, apt)
		}
	}
	return TodayScheduled(own, now)
}

// TodayScheduled все сегодняшние записи в статусе scheduled по возрастанию времени
func TodayScheduled(appointments []*domain.Appointment, now time.Time) []*domain.Appointment {
	scheduled := make([]*domain.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if apt == nil || apt.Status != domain.StatusScheduled || !apt.IsOnDate(now) {
			continue
		}
		scheduled = append(scheduled, apt)
	}

	items := sortedByStart(scheduled)
	result := make([]*domain.Appointment, 0, len(items))
	for _, item := range items {
		result = append(result, item.apt)
	}
	return result
}

// QueueFor строит состояние очереди для клиента на сегодня
func QueueFor(appointments []*domain.Appointment, clientID int64, now time.Time) QueueStatus {
	status := QueueStatus{}

	for _, apt := range appointments {
		if apt == nil || !apt.IsPending() || !apt.IsOnDate(now) {
			continue
		}
		if apt.Time.Validate() != nil {
			continue
		}
		status.TotalInQueue++
		if apt.Status == domain.StatusInProgress && status.CurrentlyServing == "" {
			status.CurrentlyServing = apt.ClientName
		}
	}

	own := TodayForClient(appointments, clientID, now)
	if len(own) == 0 {
		return status
	}

	next := own[0]
	status.NextAppointment = next
	status.Position = ClientsBeforeTime(appointments, now, next.Time) + 1
	status.EstimatedWait = WaitTimeBeforeTime(appointments, now, next.Time)
	if minutes, err := MinutesUntil(next, now); err == nil {
		status.MinutesUntilStart = minutes
	}

	return status
}

func pendingBefore(appointments []*domain.Appointment, date time.Time, t types.TimeString) []*domain.Appointment {
	target, err := t.Minutes()
	if err != nil {
		return nil
	}

	result := make([]*domain.Appointment, 0)
	for _, apt := range appointments {
		if apt == nil || !apt.IsPending() || !apt.IsOnDate(date) {
			continue
		}
		start, err := apt.Time.Minutes()
		if err != nil {
			continue
		}
		if start < target {
			result = append(result, apt)
		}
	}
	return result
}
