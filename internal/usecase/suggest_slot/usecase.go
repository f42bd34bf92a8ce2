package suggest_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberService/internal/scheduling"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// UseCase use case подбора ближайшего свободного окна (для администратора)
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, serviceRepo ServiceRepository, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider устанавливает кастомный провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет подбор окна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SuggestSlot: date=%s, duration=%d, from=%s",
		req.Date.Format(domain.DateFormat), req.DurationMinutes, req.From)

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !req.From.IsZero() {
		if err := req.From.Validate(); err != nil {
			return nil, fmt.Errorf("%w: invalid from time: %v", ErrInvalidInput, err)
		}
	}

	// 2. Определяем длительность
	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Получаем записи на дату
	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)

	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		uc.logger.Error("SuggestSlot: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 4. Ищем окно
	from := req.From
	if from.IsZero() {
		from = startFrom(date, now)
	}

	slot, err := scheduling.FindNextAvailableSlot(appointments, date, duration, from)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	uc.logger.Info("SuggestSlot: found=%t, time=%s", !slot.IsZero(), slot)

	return &Response{
		Date:            date,
		Time:            slot,
		Found:           !slot.IsZero(),
		DurationMinutes: duration,
	}, nil
}

func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.ServiceID == nil {
		if req.DurationMinutes < 0 || req.DurationMinutes > domain.MaxServiceDurationMinutes {
			return 0, fmt.Errorf("%w: duration must be between 0 and %d", ErrInvalidInput, domain.MaxServiceDurationMinutes)
		}
		if req.DurationMinutes == 0 {
			return domain.DefaultServiceDurationMinutes, nil
		}
		return req.DurationMinutes, nil
	}

	service, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("SuggestSlot: service id=%d not found", *req.ServiceID)
			return 0, ErrServiceNotFound
		}
		uc.logger.Error("SuggestSlot: failed to get service id=%d: %v", *req.ServiceID, err)
		return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	return service.Duration(), nil
}

// startFrom для сегодняшней даты - текущее время (не раньше открытия), иначе открытие
func startFrom(date, now time.Time) types.TimeString {
	if !domain.SameDay(date, now) {
		return scheduling.OpeningTime
	}

	current := types.NewTimeString(now)
	if current.IsBefore(scheduling.OpeningTime) {
		return scheduling.OpeningTime
	}
	return current
}
