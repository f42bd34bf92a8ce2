package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/client"
	"github.com/m04kA/SMC-BarberService/internal/scheduling"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	clientRepo      ClientRepository
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	clientRepo ClientRepository,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает запись по ID
// Клиент видит только свои записи, администратор - любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	apt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, apt, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainAppointment(apt), nil
}

// List получает записи с фильтрацией
// Для клиента фильтр по clientId принудительно равен его ID
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for user=%d, date=%v, includeCancelled=%t",
		req.UserID, req.Date, req.IncludeCancelled)

	isAdmin, err := s.isAdmin(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	filter := domain.AppointmentsFilter{
		IncludeCancelled: req.IncludeCancelled,
	}

	if isAdmin {
		filter.ClientID = req.ClientID
	} else {
		filter.ClientID = &req.UserID
	}

	if req.Date != nil {
		day := domain.DateOnly(*req.Date)
		filter.StartDate = &day
		filter.EndDate = &day
	}

	if req.Status != nil {
		status, ok := models.ToDomainStatus(*req.Status)
		if !ok {
			s.logger.Warn("List: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Start переводит запись в статус in-progress (только администратор)
func (s *Service) Start(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	return s.UpdateStatus(ctx, id, &models.UpdateStatusRequest{UserID: userID, Status: string(domain.StatusInProgress)})
}

// Cancel отменяет запись (владелец или администратор)
func (s *Service) Cancel(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	return s.UpdateStatus(ctx, id, &models.UpdateStatusRequest{UserID: userID, Status: string(domain.StatusCancelled)})
}

// UpdateStatus обновляет статус записи
// Допустимы переходы scheduled -> in-progress и scheduled -> cancelled
// Завершение записи выполняется отдельным use case, так как рассчитывает сдвиг расписания
// Повторная установка текущего статуса ничего не меняет
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d", id, req.Status, req.UserID)

	// 1. Валидируем статус
	newStatus, ok := models.ToDomainStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}
	if newStatus == domain.StatusCompleted || newStatus == domain.StatusScheduled {
		s.logger.Warn("UpdateStatus: status=%s cannot be set directly for appointment id=%d", newStatus, id)
		return nil, ErrInvalidTransition
	}

	// 2. Получаем запись
	apt, err := s.getAppointment(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем права доступа
	isAdmin, err := s.isAdmin(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && (newStatus != domain.StatusCancelled || apt.ClientID != req.UserID) {
		s.logger.Warn("UpdateStatus: access denied for user=%d to appointment id=%d", req.UserID, id)
		return nil, ErrAccessDenied
	}

	// 4. Проверяем переход
	if apt.Status == newStatus {
		s.logger.Info("UpdateStatus: appointment id=%d already has status=%s", id, newStatus)
		return models.FromDomainAppointment(apt), nil
	}
	if !apt.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s rejected for appointment id=%d", apt.Status, newStatus, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, apt.Status, newStatus)
	}

	// 5. Сохраняем при условии, что статус не изменился с момента чтения
	if err := s.appointmentRepo.UpdateStatus(ctx, id, apt.Status, newStatus, nil); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			s.logger.Warn("UpdateStatus: appointment id=%d changed status concurrently, expected %s", id, apt.Status)
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	apt.Status = newStatus
	s.metrics.ObserveAppointment(string(newStatus))

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", id, newStatus)
	return models.FromDomainAppointment(apt), nil
}

// GetQueueStatus возвращает положение клиента в сегодняшней очереди
func (s *Service) GetQueueStatus(ctx context.Context, userID int64) (*models.QueueStatusResponse, error) {
	now := s.timeProvider.Now()
	today := domain.DateOnly(now)

	s.logger.Info("GetQueueStatus: user=%d, date=%s", userID, today.Format(domain.DateFormat))

	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		StartDate: &today,
		EndDate:   &today,
	})
	if err != nil {
		s.logger.Error("GetQueueStatus: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetQueueStatus - repository error: %v", ErrInternal, err)
	}

	return models.FromQueueStatus(scheduling.QueueFor(appointments, userID, now)), nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return apt, nil
}

// checkAccess владелец записи или администратор
func (s *Service) checkAccess(ctx context.Context, apt *domain.Appointment, userID int64) error {
	if apt.ClientID == userID {
		return nil
	}

	isAdmin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) isAdmin(ctx context.Context, userID int64) (bool, error) {
	client, err := s.clientRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("isAdmin: user id=%d not found", userID)
			return false, ErrClientNotFound
		}
		s.logger.Error("isAdmin: failed to get user id=%d: %v", userID, err)
		return false, fmt.Errorf("%w: isAdmin - failed to get user: %v", ErrInternal, err)
	}
	return client.IsAdmin(), nil
}
