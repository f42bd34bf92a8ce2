package alerts

import (
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/scheduling"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

func serviceName(apt *domain.Appointment) string {
	if apt.ServiceName == "" {
		return "Услуга"
	}
	return apt.ServiceName
}

func clientName(apt *domain.Appointment) string {
	if apt.ClientName == "" {
		return "Клиент"
	}
	return apt.ClientName
}

func newAppointmentText(apt *domain.Appointment) (string, string) {
	return "Новая запись!",
		fmt.Sprintf("%s - %s, %s в %s", clientName(apt), serviceName(apt), apt.Date.Format(domain.DateFormat), apt.Time)
}

func upcomingText(apt *domain.Appointment, threshold, minutesUntil int) (string, string) {
	switch threshold {
	case 20:
		return "Ваша запись приближается",
			fmt.Sprintf("%s через %d мин.", serviceName(apt), minutesUntil)
	case 10:
		return "Приготовьтесь!",
			fmt.Sprintf("Ваша запись через %d мин. Пора выходить в барбершоп.", minutesUntil)
	case 5:
		return "Ваша очередь совсем скоро!",
			fmt.Sprintf("%s через %d мин. Вы уже должны быть на месте!", serviceName(apt), minutesUntil)
	default:
		return "Напоминание о записи",
			fmt.Sprintf("%s через %d мин.", serviceName(apt), minutesUntil)
	}
}

func clientNearText(apt *domain.Appointment, minutesUntil int) (string, string) {
	return "Клиент скоро придёт",
		fmt.Sprintf("%s записан через %d мин. - %s", clientName(apt), minutesUntil, serviceName(apt))
}

func shiftText(apt *domain.Appointment, deviation scheduling.Deviation, adjusted types.TimeString) (string, string) {
	if deviation.Type == scheduling.DeviationEarly {
		return "Хорошие новости! Ваша запись сдвинулась раньше",
			fmt.Sprintf("Запись на %s теперь примерно в %s. Раньше на %d мин.", serviceName(apt), adjusted, deviation.Minutes)
	}
	return "Небольшая задержка",
		fmt.Sprintf("Запись на %s задержится примерно на %d мин. Новое ориентировочное время: %s", serviceName(apt), deviation.Minutes, adjusted)
}

func scheduleUpdateText(completed *domain.Appointment, deviation scheduling.Deviation, affected int) (string, string) {
	direction := "позже"
	if deviation.Type == scheduling.DeviationEarly {
		direction = "раньше"
	}
	return "Расписание обновлено",
		fmt.Sprintf("Записей сдвинуто %s: %d, на %d мин. после завершения записи %s", direction, affected, deviation.Minutes, clientName(completed))
}

func runningLateText(delay int, adjusted types.TimeString) (string, string) {
	return "Задержка в работе",
		fmt.Sprintf("Ваша запись может задержаться примерно на %d мин. Ориентировочное время: %s", delay, adjusted)
}

func overrunText(apt *domain.Appointment, delay, affected int) (string, string) {
	return "Запись затягивается",
		fmt.Sprintf("%s: +%d мин. сверх плана. Затронуто последующих записей: %d", clientName(apt), delay, affected)
}
