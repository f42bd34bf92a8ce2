package alertsink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrNoWebhookURL возвращается, если адрес вебхука не задан
	ErrNoWebhookURL = errors.New("alertsink: webhook url not configured")

	// ErrWebhookRejected возвращается, когда получатель ответил не 2xx
	ErrWebhookRejected = errors.New("alertsink: webhook rejected alert")
)

// WebhookSink доставляет уведомления POST-запросом во внешний сервис (например, бота)
type WebhookSink struct {
	url        string
	httpClient *http.Client
	log        Logger
}

// NewWebhookSink создает sink с таймаутом на каждый запрос
func NewWebhookSink(url string, timeout time.Duration, log Logger) (*WebhookSink, error) {
	if url == "" {
		return nil, ErrNoWebhookURL
	}

	return &WebhookSink{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}, nil
}

// Send отправляет уведомление, заголовок X-Event-Id позволяет получателю отбрасывать повторы
func (s *WebhookSink) Send(ctx context.Context, alert domain.Alert) error {
	eventID := uuid.NewString()

	payload, err := json.Marshal(newAlertEvent(eventID, alert))
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrPublish, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Id", eventID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Warn("Webhook unavailable for appointment=%d kind=%s: %v", alert.AppointmentID, alert.Kind, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrPublish, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrWebhookRejected, resp.StatusCode, string(body))
	}

	return nil
}

// Close освобождает соединения keep-alive
func (s *WebhookSink) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}
