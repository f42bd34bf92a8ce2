package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// LoginRequest запрос на вход или регистрацию по номеру телефона
type LoginRequest struct {
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Normalize обрезает пробелы во всех полях
func (r *LoginRequest) Normalize() {
	r.Phone = strings.TrimSpace(r.Phone)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

// ClientResponse ответ с данными пользователя
type ClientResponse struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phone"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse ответ на вход
type LoginResponse struct {
	Client     ClientResponse `json:"user"`
	Registered bool           `json:"registered"` // true - пользователь создан этим запросом
}

// ClientListResponse ответ со списком пользователей
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// FromDomainClient конвертирует domain модель в DTO
func FromDomainClient(c *domain.Client) *ClientResponse {
	if c == nil {
		return nil
	}

	return &ClientResponse{
		ID:        c.ID,
		Phone:     c.Phone,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt,
	}
}

// FromDomainClientList конвертирует список domain моделей в DTO
func FromDomainClientList(clients []*domain.Client) *ClientListResponse {
	resp := &ClientListResponse{
		Clients: make([]ClientResponse, 0, len(clients)),
	}
	for _, c := range clients {
		if dto := FromDomainClient(c); dto != nil {
			resp.Clients = append(resp.Clients, *dto)
		}
	}
	return resp
}
