package models

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/scheduling"
)

// Request модели

// ListAppointmentsRequest запрос на получение списка записей
type ListAppointmentsRequest struct {
	UserID           int64      `json:"userId"`
	Date             *time.Time `json:"date,omitempty"`     // Конкретный день (опционально)
	ClientID         *int64     `json:"clientId,omitempty"` // Учитывается только для администратора
	Status           *string    `json:"status,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	ClientName      string  `json:"clientName"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	AppointmentDate string  `json:"appointmentDate"` // "2024-06-03"
	AppointmentTime string  `json:"appointmentTime"` // "10:00"
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	ServiceDuration int     `json:"serviceDuration"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	Status          string  `json:"status"`

	CompletedAt *string `json:"completedAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// QueueStatusResponse положение клиента в сегодняшней очереди
type QueueStatusResponse struct {
	HasAppointment    bool                 `json:"hasAppointment"`
	Appointment       *AppointmentResponse `json:"appointment,omitempty"`
	Position          int                  `json:"position"`
	EstimatedWait     int                  `json:"estimatedWaitMinutes"`
	MinutesUntilStart int                  `json:"minutesUntilStart"`
	TotalInQueue      int                  `json:"totalInQueue"`
	CurrentlyServing  string               `json:"currentlyServing,omitempty"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		ClientName:      a.ClientName,
		ClientPhone:     a.ClientPhone,
		AppointmentDate: a.Date.Format(domain.DateFormat),
		AppointmentTime: a.Time.String(),
		ServiceID:       a.ServiceID,
		ServiceName:     a.ServiceName,
		ServiceDuration: a.Duration(),
		ServicePrice:    a.ServicePrice,
		Notes:           a.Notes,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	if a.CompletedAt != nil {
		completedStr := a.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completedStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if dto := FromDomainAppointment(a); dto != nil {
			resp.Appointments = append(resp.Appointments, *dto)
		}
	}

	return resp
}

// FromQueueStatus конвертирует состояние очереди в DTO
func FromQueueStatus(q scheduling.QueueStatus) *QueueStatusResponse {
	return &QueueStatusResponse{
		HasAppointment:    q.NextAppointment != nil,
		Appointment:       FromDomainAppointment(q.NextAppointment),
		Position:          q.Position,
		EstimatedWait:     q.EstimatedWait,
		MinutesUntilStart: q.MinutesUntilStart,
		TotalInQueue:      q.TotalInQueue,
		CurrentlyServing:  q.CurrentlyServing,
	}
}

// ToDomainStatus конвертирует строку в статус записи
func ToDomainStatus(status string) (domain.AppointmentStatus, bool) {
	s := domain.AppointmentStatus(status)
	return s, s.IsValid()
}
