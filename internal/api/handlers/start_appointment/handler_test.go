package start_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Start(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id, userID)
	resp, _ := args.Get(0).(*models.AppointmentResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{appointmentId}/start", h.Handle).Methods(http.MethodPost)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/5/start", nil)
	r = r.WithContext(middleware.WithUserID(r.Context(), 1))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandler_Handle(t *testing.T) {
	svc := &mockService{}
	svc.On("Start", mock.Anything, int64(5), int64(1)).
		Return(&models.AppointmentResponse{ID: 5, Status: "in-progress"}, nil)

	w := serve(NewHandler(svc, nopLogger{}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"in-progress"`)
	svc.AssertExpectations(t)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "already started", svcErr: appointments.ErrInvalidTransition, wantStatus: http.StatusBadRequest},
		{name: "client cannot start", svcErr: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "missing", svcErr: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", svcErr: appointments.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Start", mock.Anything, int64(5), int64(1)).Return(nil, tt.svcErr)

			w := serve(NewHandler(svc, nopLogger{}))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
