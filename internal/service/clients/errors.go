package clients

import "errors"

var (
	// ErrClientNotFound возвращается, когда пользователь не найден
	ErrClientNotFound = errors.New("clients: client not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("clients: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("clients: internal error")
)
