package client

import "errors"

var (
	// ErrClientNotFound возвращается, когда пользователь не найден
	ErrClientNotFound = errors.New("client.repository: client not found")

	// ErrPhoneTaken возвращается при попытке зарегистрировать занятый номер
	ErrPhoneTaken = errors.New("client.repository: phone already registered")

	ErrBuildQuery = errors.New("client.repository: failed to build query")
	ErrExecQuery  = errors.New("client.repository: failed to execute query")
	ErrScanRow    = errors.New("client.repository: failed to scan row")
)
