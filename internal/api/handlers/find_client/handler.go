package find_client

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/service/clients"
)

const (
	msgPhoneRequired = "укажите номер телефона"
	msgNotFound      = "клиент не найден"
)

type Handler struct {
	service ClientService
	logger  Logger
}

func NewHandler(service ClientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/by-phone?phone=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(r.URL.Query().Get("phone"))
	if phone == "" {
		handlers.RespondBadRequest(w, msgPhoneRequired)
		return
	}

	result, err := h.service.FindByPhone(r.Context(), phone)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("GET /clients/by-phone - Client not found: phone=%s", phone)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, clients.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgPhoneRequired)

		default:
			h.logger.Error("GET /clients/by-phone - Failed to find client: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/by-phone - Client found: client_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
