package alertsink

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// LogSink пишет уведомления в лог, когда Kafka отключена
type LogSink struct {
	logger Logger
}

func NewLogSink(logger Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Send(_ context.Context, alert domain.Alert) error {
	s.logger.Info("Alert [%s/%s] appointment=%d client=%d: %s - %s",
		alert.Audience, alert.Kind, alert.AppointmentID, alert.ClientID, alert.Title, alert.Message)
	return nil
}

func (s *LogSink) Close() error {
	return nil
}
