package clients

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// ClientRepository интерфейс репозитория пользователей
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Client, error)
	List(ctx context.Context, userType *domain.UserType) ([]*domain.Client, error)
	UpdateType(ctx context.Context, id int64, userType domain.UserType) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
