package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/scheduling"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider устанавливает кастомный провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, date=%s", req.UserID, req.Date.Format(domain.DateFormat))

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем неотменённые записи на дату
	date := domain.DateOnly(req.Date)
	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 4. Считаем свободные слоты и ориентировочное время приёма
	slots := scheduling.GetAvailableTimeSlots(appointments, date, now)
	next := scheduling.CalculateNextAvailableTime(appointments, date, now)

	uc.logger.Info("GetAvailableSlots: %d slots available on %s, next available %s (next day: %t)",
		len(slots), date.Format(domain.DateFormat), next.Time, next.NextBusinessDay)

	return &Response{
		Date:              date,
		Slots:             slots,
		NextAvailableTime: next.Time,
		NextBusinessDay:   next.NextBusinessDay,
		OccupiedCount:     countPending(appointments),
	}, nil
}

func countPending(appointments []*domain.Appointment) int {
	count := 0
	for _, apt := range appointments {
		if apt != nil && apt.IsPending() {
			count++
		}
	}
	return count
}
