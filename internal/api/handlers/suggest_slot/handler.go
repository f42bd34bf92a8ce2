package suggest_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	suggestSlot "github.com/m04kA/SMC-BarberService/internal/usecase/suggest_slot"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration  = "некорректная длительность"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidFrom      = "некорректный формат времени, ожидается HH:MM"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase SuggestSlotUseCase
	logger  Logger
}

func NewHandler(useCase SuggestSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/next?date=&duration=&serviceId=&from=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := handlers.ParseDate(query.Get("date"), time.Local)
	if err != nil {
		h.logger.Warn("GET /slots/next - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &suggestSlot.Request{Date: date}

	if raw := query.Get("duration"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		req.DurationMinutes = duration
	}

	if raw := query.Get("serviceId"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || serviceID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		req.ServiceID = &serviceID
	}

	if raw := query.Get("from"); raw != "" {
		from, err := types.NewTimeStringFromString(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		req.From = from
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, suggestSlot.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, suggestSlot.ErrInvalidInput):
			h.logger.Warn("GET /slots/next - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /slots/next - Failed to suggest slot: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/next - Slot suggested: date=%s, time=%s, found=%t",
		query.Get("date"), result.Time, result.Found)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
