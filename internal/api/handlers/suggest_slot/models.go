package suggest_slot

import (
	"github.com/m04kA/SMC-BarberService/internal/domain"
	suggestSlot "github.com/m04kA/SMC-BarberService/internal/usecase/suggest_slot"
)

// SuggestSlotResponse HTTP response model
type SuggestSlotResponse struct {
	Date            string `json:"date"`
	Time            string `json:"time,omitempty"`
	Found           bool   `json:"found"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *suggestSlot.Response) *SuggestSlotResponse {
	return &SuggestSlotResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		Time:            resp.Time.String(),
		Found:           resp.Found,
		DurationMinutes: resp.DurationMinutes,
	}
}
