package complete_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/client"
	"github.com/m04kA/SMC-BarberService/internal/scheduling"
)

// UseCase use case завершения записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	clientRepo      ClientRepository
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
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

// Execute переводит запись in-progress в completed, фиксирует время завершения
// и считает сдвиг последующих записей дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteAppointment: user=%d, appointment=%d", req.UserID, req.AppointmentID)

	if req.UserID <= 0 || req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: userID and appointmentID must be positive", ErrInvalidInput)
	}

	// 1. Завершать записи может только администратор
	caller, err := uc.clientRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CompleteAppointment: user id=%d not found", req.UserID)
			return nil, ErrAccessDenied
		}
		uc.logger.Error("CompleteAppointment: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if !caller.IsAdmin() {
		uc.logger.Warn("CompleteAppointment: user id=%d is not an admin", req.UserID)
		return nil, ErrAccessDenied
	}

	now := uc.timeProvider.Now()
	var result *Response

	// 2. Обновляем статус и читаем расписание дня в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		apt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CompleteAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CompleteAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if !apt.CanTransitionTo(domain.StatusCompleted) {
			uc.logger.Warn("CompleteAppointment: appointment id=%d has status %s", apt.ID, apt.Status)
			return fmt.Errorf("%w: current status is %s", ErrInvalidTransition, apt.Status)
		}

		completedAt := now
		if err := uc.appointmentRepo.UpdateStatus(txCtx, apt.ID, apt.Status, domain.StatusCompleted, &completedAt); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusConflict) {
				uc.logger.Warn("CompleteAppointment: appointment id=%d changed status concurrently", apt.ID)
				return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
			}
			uc.logger.Error("CompleteAppointment: failed to update appointment id=%d: %v", apt.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}
		apt.Status = domain.StatusCompleted
		apt.CompletedAt = &completedAt

		date := domain.DateOnly(apt.Date)
		appointments, err := uc.appointmentRepo.List(txCtx, domain.AppointmentsFilter{
			StartDate: &date,
			EndDate:   &date,
		})
		if err != nil {
			uc.logger.Error("CompleteAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		result = &Response{
			Appointment: apt,
			Impact:      scheduling.ScheduleImpact(appointments, apt, &completedAt, now),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.ObserveAppointment(string(domain.StatusCompleted))
	uc.logger.Info("CompleteAppointment: appointment id=%d completed, deviation %s %d min, %d appointments affected",
		result.Appointment.ID, result.Impact.Deviation.Type, result.Impact.Deviation.Minutes, len(result.Impact.Affected))

	return result, nil
}
