package get_appointment

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

func (m *mockService) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id, userID)
	resp, _ := args.Get(0).(*models.AppointmentResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{appointmentId}", h.Handle)

	r := httptest.NewRequest(http.MethodGet, path, nil)
	r = r.WithContext(middleware.WithUserID(r.Context(), 7))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		svcErr     error
		wantStatus int
	}{
		{name: "found", path: "/api/v1/appointments/5", wantStatus: http.StatusOK},
		{name: "bad id", path: "/api/v1/appointments/abc", wantStatus: http.StatusBadRequest},
		{name: "not found", path: "/api/v1/appointments/5", svcErr: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign", path: "/api/v1/appointments/5", svcErr: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.svcErr != nil {
				svc.On("GetByID", mock.Anything, int64(5), int64(7)).Return(nil, tt.svcErr)
			} else {
				svc.On("GetByID", mock.Anything, int64(5), int64(7)).Return(&models.AppointmentResponse{ID: 5}, nil)
			}

			w := serve(NewHandler(svc, nopLogger{}), tt.path)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
