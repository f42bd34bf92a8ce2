package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/client"
	"github.com/m04kA/SMC-BarberService/internal/scheduling"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	clientRepo      ClientRepository
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		clientRepo:      clientRepo,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider устанавливает кастомный провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи
// Проверка пересечений и вставка выполняются в сериализуемой транзакции,
// записи дня читаются с блокировкой FOR UPDATE
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, service=%d, date=%s, time=%s",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем пользователя, создающего запись
	caller, err := uc.getClient(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// 4. Определяем клиента записи: администратор может записать другого клиента
	client := caller
	if req.ClientID != nil && *req.ClientID != caller.ID {
		if !caller.IsAdmin() {
			uc.logger.Warn("CreateAppointment: user id=%d is not allowed to book for client id=%d", caller.ID, *req.ClientID)
			return nil, ErrAccessDenied
		}
		client, err = uc.getClient(ctx, *req.ClientID)
		if err != nil {
			return nil, err
		}
	}

	// 5. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", service.ID)
		return nil, ErrServiceInactive
	}

	// 6. Проверяем время: клиенты - только слоты каталога, администратор - любое время
	date := domain.DateOnly(req.Date)
	if caller.IsAdmin() {
		err = validateAdminSlot(date, req.Time, service.Duration(), now)
	} else {
		err = validateClientSlot(date, req.Time, now)
	}
	if err != nil {
		uc.logger.Warn("CreateAppointment: time validation failed: %v", err)
		return nil, err
	}

	// 7. Проверяем пересечения и создаем запись в транзакции
	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем неотменённые записи дня с блокировкой
		appointments, err := uc.appointmentRepo.List(txCtx, domain.AppointmentsFilter{
			StartDate: &date,
			EndDate:   &date,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 7.2. Проверяем, что кресло свободно
		available, err := scheduling.IsTimeSlotAvailable(appointments, date, req.Time, service.Duration(), 0)
		if err != nil {
			return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
		}
		if !available {
			uc.logger.Warn("CreateAppointment: slot %s on %s overlaps an existing appointment",
				req.Time, date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 7.3. Создаем запись с денормализацией данных клиента и услуги
		phone := client.Phone
		appointment := &domain.Appointment{
			ClientID:        client.ID,
			ClientName:      client.FullName(),
			ClientPhone:     &phone,
			Date:            date,
			Time:            req.Time,
			ServiceID:       service.ID,
			ServiceName:     service.Name,
			ServiceDuration: service.Duration(),
			ServicePrice:    service.Price,
			Notes:           req.Notes,
			Status:          domain.StatusScheduled,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.ObserveAppointment(string(result.Status))
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return toResponse(result), nil
}

func (uc *UseCase) getClient(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", id)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}
	return client, nil
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		ClientID:        a.ClientID,
		ClientName:      a.ClientName,
		ClientPhone:     a.ClientPhone,
		Date:            a.Date,
		Time:            a.Time,
		ServiceID:       a.ServiceID,
		ServiceName:     a.ServiceName,
		ServiceDuration: a.ServiceDuration,
		ServicePrice:    a.ServicePrice,
		Notes:           a.Notes,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
