package create_appointment

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/scheduling"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ClientID != nil && *req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateClientSlot проверяет самостоятельную запись клиента:
// только слоты каталога и только в будущем
func validateClientSlot(date time.Time, t types.TimeString, now time.Time) error {
	if !scheduling.IsCatalogSlot(t) {
		return fmt.Errorf("%w: %s is not in the slot catalog", ErrInvalidTimeSlot, t)
	}

	return validateNotInPast(date, t, now)
}

// validateAdminSlot проверяет запись администратором: любое время, но не в прошедший день
// и с окончанием в пределах суток
func validateAdminSlot(date time.Time, t types.TimeString, duration int, now time.Time) error {
	if domain.DateOnly(date).Before(domain.DateOnly(now)) {
		return ErrSlotInPast
	}

	start, err := t.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}
	if start+duration > types.MinutesPerDay {
		return fmt.Errorf("%w: appointment must end before midnight", ErrInvalidTimeSlot)
	}

	return nil
}

func validateNotInPast(date time.Time, t types.TimeString, now time.Time) error {
	start, err := t.OnDate(date, now.Location())
	if err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if !start.After(now) {
		return ErrSlotInPast
	}

	return nil
}
