package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/infra/markers"
	"github.com/m04kA/SMC-BarberService/internal/scheduling"
)

// Report итог одного прохода планировщика
type Report struct {
	Sent   int
	Failed int
	Purged int
}

// Scheduler проверяет записи дня и рассылает уведомления
// Каждый вызов Tick заменяет снимок записей целиком; по разнице со снимком
// предыдущего вызова определяются новые и только что завершённые записи
// Снимок другого дня не сравнивается: первый проход нового дня ведёт себя как первый запуск
type Scheduler struct {
	source   AppointmentSource
	sink     Sink
	markers  MarkerStore
	settings domain.NotificationSettings
	metrics  Metrics
	logger   Logger

	mu          sync.Mutex
	previous    map[int64]domain.AppointmentStatus
	previousDay time.Time
	initialized bool
}

// NewScheduler создает планировщик уведомлений
func NewScheduler(
	source AppointmentSource,
	sink Sink,
	markerStore MarkerStore,
	settings domain.NotificationSettings,
	metrics Metrics,
	logger Logger,
) *Scheduler {
	return &Scheduler{
		source:   source,
		sink:     sink,
		markers:  markerStore,
		settings: settings,
		metrics:  metrics,
		logger:   logger,
		previous: make(map[int64]domain.AppointmentStatus),
	}
}

// Tick выполняет один проход на момент now
// Ошибки отправки отдельных уведомлений не прерывают проход
func (s *Scheduler) Tick(ctx context.Context, now time.Time) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report Report
	today := domain.DateOnly(now)

	// 1. Удаляем отметки прошлых дней
	purged, err := markers.PurgeOtherDays(ctx, s.markers, today)
	if err != nil {
		s.logger.Warn("Tick: failed to purge old markers: %v", err)
	}
	report.Purged = purged

	// 2. Загружаем записи на сегодня
	appointments, err := s.source.List(ctx, domain.AppointmentsFilter{
		StartDate: &today,
		EndDate:   &today,
	})
	if err != nil {
		s.logger.Error("Tick: failed to load appointments: %v", err)
		return report, fmt.Errorf("%w: %v", ErrLoadAppointments, err)
	}

	if s.settings.Enabled {
		// 3. Сравнение со снимком возможно только со второго прохода за тот же день
		comparable := s.initialized && s.previousDay.Equal(today)
		if comparable {
			s.notifyNewAppointments(ctx, appointments, now, &report)
			s.notifyScheduleShifts(ctx, appointments, now, &report)
		}

		// 4. Пороговые уведомления клиентам и администратору
		s.notifyUpcoming(ctx, appointments, now, &report)
		s.notifyClientNear(ctx, appointments, now, &report)

		// 5. Записи, которые идут дольше плана
		if comparable {
			s.notifyOverruns(ctx, appointments, now, &report)
		}
	}

	// 6. Сохраняем снимок
	s.previous = make(map[int64]domain.AppointmentStatus, len(appointments))
	for _, apt := range appointments {
		s.previous[apt.ID] = apt.Status
	}
	s.previousDay = today
	s.initialized = true

	if report.Sent > 0 || report.Failed > 0 {
		s.logger.Info("Tick: sent=%d, failed=%d, purged=%d", report.Sent, report.Failed, report.Purged)
	}

	return report, nil
}

// notifyNewAppointments уведомляет администратора о новых записях в статусе scheduled
func (s *Scheduler) notifyNewAppointments(ctx context.Context, appointments []*domain.Appointment, now time.Time, report *Report) {
	for _, apt := range appointments {
		if _, seen := s.previous[apt.ID]; seen || apt.Status != domain.StatusScheduled {
			continue
		}
		title, message := newAppointmentText(apt)
		s.send(ctx, report, domain.Alert{
			Audience:      domain.AudienceAdmin,
			Kind:          domain.AlertNewAppointment,
			AppointmentID: apt.ID,
			ClientID:      apt.ClientID,
			Title:         title,
			Message:       message,
			CreatedAt:     now,
		})
	}
}

// notifyUpcoming уведомляет клиента за N минут до начала (по умолчанию 20, 10 и 5)
func (s *Scheduler) notifyUpcoming(ctx context.Context, appointments []*domain.Appointment, now time.Time, report *Report) {
	for _, apt := range scheduling.TodayScheduled(appointments, now) {
		minutesUntil, err := scheduling.MinutesUntil(apt, now)
		if err != nil || !s.settings.IsEnabledFor(minutesUntil) {
			continue
		}

		key := markers.Key(domain.AudienceClient, apt.ID, minutesUntil, now)
		title, message := upcomingText(apt, minutesUntil, minutesUntil)
		s.sendOnce(ctx, report, key, domain.Alert{
			Audience:         domain.AudienceClient,
			Kind:             domain.AlertUpcoming,
			AppointmentID:    apt.ID,
			ClientID:         apt.ClientID,
			ThresholdMinutes: minutesUntil,
			Title:            title,
			Message:          message,
			CreatedAt:        now,
		})
	}
}

// notifyClientNear уведомляет администратора, что клиент придёт через AdminAlertMinutes
func (s *Scheduler) notifyClientNear(ctx context.Context, appointments []*domain.Appointment, now time.Time, report *Report) {
	threshold := s.settings.AdminAlertMinutes
	if threshold <= 0 {
		return
	}

	for _, apt := range scheduling.TodayScheduled(appointments, now) {
		minutesUntil, err := scheduling.MinutesUntil(apt, now)
		if err != nil || minutesUntil != threshold {
			continue
		}

		key := markers.Key(domain.AudienceAdmin, apt.ID, threshold, now)
		title, message := clientNearText(apt, minutesUntil)
		s.sendOnce(ctx, report, key, domain.Alert{
			Audience:         domain.AudienceAdmin,
			Kind:             domain.AlertClientNear,
			AppointmentID:    apt.ID,
			ClientID:         apt.ClientID,
			ThresholdMinutes: threshold,
			Title:            title,
			Message:          message,
			CreatedAt:        now,
		})
	}
}

// notifyScheduleShifts рассылает новое ориентировочное время после завершения записи
// раньше или позже плана. Срабатывает один раз: при переходе статуса в completed
func (s *Scheduler) notifyScheduleShifts(ctx context.Context, appointments []*domain.Appointment, now time.Time, report *Report) {
	for _, apt := range appointments {
		prev, seen := s.previous[apt.ID]
		if !seen || apt.Status != domain.StatusCompleted || prev == domain.StatusCompleted {
			continue
		}

		impact := scheduling.ScheduleImpact(appointments, apt, nil, now)
		if impact.Deviation.IsOnTime() || len(impact.Affected) == 0 {
			continue
		}

		for _, affected := range impact.Affected {
			title, message := shiftText(affected.Appointment, impact.Deviation, affected.AdjustedTime)
			s.send(ctx, report, domain.Alert{
				Audience:         domain.AudienceClient,
				Kind:             domain.AlertScheduleShift,
				AppointmentID:    affected.Appointment.ID,
				ClientID:         affected.Appointment.ClientID,
				ThresholdMinutes: impact.Deviation.SignedMinutes(),
				Title:            title,
				Message:          message,
				CreatedAt:        now,
			})
		}

		title, message := scheduleUpdateText(apt, impact.Deviation, len(impact.Affected))
		s.send(ctx, report, domain.Alert{
			Audience:         domain.AudienceAdmin,
			Kind:             domain.AlertScheduleUpdate,
			AppointmentID:    apt.ID,
			ClientID:         apt.ClientID,
			ThresholdMinutes: impact.Deviation.SignedMinutes(),
			Title:            title,
			Message:          message,
			CreatedAt:        now,
		})
	}
}

// notifyOverruns предупреждает о записях in-progress, идущих дольше плана
// После периода ожидания уведомление повторяется каждые LongRunningStepMinutes минут задержки
func (s *Scheduler) notifyOverruns(ctx context.Context, appointments []*domain.Appointment, now time.Time, report *Report) {
	grace := s.settings.LongRunningGraceMinutes
	step := s.settings.LongRunningStepMinutes
	if step <= 0 {
		return
	}

	for _, apt := range appointments {
		if _, seen := s.previous[apt.ID]; !seen || apt.Status != domain.StatusInProgress {
			continue
		}

		delay, ok := scheduling.OverrunMinutes(apt, now)
		if !ok || delay <= grace || delay%step != 0 {
			continue
		}

		subsequent := scheduling.GetSubsequentAppointments(appointments, apt)
		if len(subsequent) == 0 {
			continue
		}

		for _, next := range subsequent {
			adjusted := scheduling.CalculateAdjustedTime(next.Time, delay)
			key := markers.KindKey(domain.AlertRunningLate, domain.AudienceClient, next.ID, delay, now)
			title, message := runningLateText(delay, adjusted)
			s.sendOnce(ctx, report, key, domain.Alert{
				Audience:         domain.AudienceClient,
				Kind:             domain.AlertRunningLate,
				AppointmentID:    next.ID,
				ClientID:         next.ClientID,
				ThresholdMinutes: delay,
				Title:            title,
				Message:          message,
				CreatedAt:        now,
			})
		}

		key := markers.KindKey(domain.AlertOverrun, domain.AudienceAdmin, apt.ID, delay, now)
		title, message := overrunText(apt, delay, len(subsequent))
		s.sendOnce(ctx, report, key, domain.Alert{
			Audience:         domain.AudienceAdmin,
			Kind:             domain.AlertOverrun,
			AppointmentID:    apt.ID,
			ClientID:         apt.ClientID,
			ThresholdMinutes: delay,
			Title:            title,
			Message:          message,
			CreatedAt:        now,
		})
	}
}

// sendOnce отправляет уведомление, если отметки key ещё нет, и ставит её после успешной отправки
func (s *Scheduler) sendOnce(ctx context.Context, report *Report, key string, alert domain.Alert) {
	exists, err := s.markers.Exists(ctx, key)
	if err != nil {
		s.logger.Warn("Tick: failed to check marker %s: %v", key, err)
		return
	}
	if exists {
		return
	}

	if !s.send(ctx, report, alert) {
		return
	}

	if err := s.markers.Set(ctx, key); err != nil {
		s.logger.Warn("Tick: failed to set marker %s: %v", key, err)
	}
}

func (s *Scheduler) send(ctx context.Context, report *Report, alert domain.Alert) bool {
	err := s.sink.Send(ctx, alert)
	s.metrics.ObserveAlert(string(alert.Audience), string(alert.Kind), err)

	if err != nil {
		report.Failed++
		s.logger.Error("Tick: failed to send %s alert for appointment id=%d: %v", alert.Kind, alert.AppointmentID, err)
		return false
	}

	report.Sent++
	return true
}
