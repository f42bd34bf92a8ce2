package find_client

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/clients/models"
)

type ClientService interface {
	FindByPhone(ctx context.Context, phone string) (*models.ClientResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
