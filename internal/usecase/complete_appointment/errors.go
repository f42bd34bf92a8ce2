package complete_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("complete_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда запись завершает не администратор
	ErrAccessDenied = errors.New("complete_appointment: access denied")

	// ErrInvalidTransition возвращается, когда запись не в статусе in-progress
	ErrInvalidTransition = errors.New("complete_appointment: appointment is not in progress")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_appointment: internal error")
)
