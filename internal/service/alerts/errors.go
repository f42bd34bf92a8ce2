package alerts

import "errors"

var (
	// ErrLoadAppointments возвращается, когда не удалось получить записи дня
	ErrLoadAppointments = errors.New("alerts: failed to load appointments")
)
