package get_available_slots

import (
	"github.com/m04kA/SMC-BarberService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date              string   `json:"date"`
	Slots             []string `json:"slots"`
	NextAvailableTime string   `json:"nextAvailableTime"`
	NextBusinessDay   bool     `json:"nextBusinessDay"`
	OccupiedCount     int      `json:"occupiedCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, slot.String())
	}

	return &AvailableSlotsResponse{
		Date:              resp.Date.Format(domain.DateFormat),
		Slots:             slots,
		NextAvailableTime: resp.NextAvailableTime.String(),
		NextBusinessDay:   resp.NextBusinessDay,
		OccupiedCount:     resp.OccupiedCount,
	}
}
