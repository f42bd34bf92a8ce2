package catalog

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.BarberService) (*domain.BarberService, error)
	GetByID(ctx context.Context, id int64) (*domain.BarberService, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.BarberService, error)
	Update(ctx context.Context, id int64, service *domain.BarberService) (*domain.BarberService, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
