package complete_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/scheduling"
	completeAppointment "github.com/m04kA/SMC-BarberService/internal/usecase/complete_appointment"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *completeAppointment.Request) (*completeAppointment.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*completeAppointment.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{appointmentId}/complete", h.Handle).Methods(http.MethodPost)

	r := httptest.NewRequest(http.MethodPost, path, nil)
	r = r.WithContext(middleware.WithUserID(r.Context(), 1))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandler_Handle(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	next := &domain.Appointment{ID: 6, ClientName: "Анна", Date: day, Time: "10:30", Status: domain.StatusScheduled}

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &completeAppointment.Request{UserID: 1, AppointmentID: 5}).
		Return(&completeAppointment.Response{
			Appointment: &domain.Appointment{ID: 5, Date: day, Time: "10:00", Status: domain.StatusCompleted},
			Impact: scheduling.Impact{
				Deviation: scheduling.Deviation{Type: scheduling.DeviationLate, Minutes: 5},
				Affected:  []scheduling.AdjustedAppointment{{Appointment: next, AdjustedTime: "10:35"}},
			},
		}, nil)

	w := serve(NewHandler(uc, nopLogger{}), "/api/v1/appointments/5/complete")

	require.Equal(t, http.StatusOK, w.Code)
	var body CompleteAppointmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "completed", body.Appointment.Status)
	assert.Equal(t, DeviationResponse{Type: "late", Minutes: 5}, body.Deviation)
	assert.Equal(t, []AffectedAppointmentResponse{
		{AppointmentID: 6, ClientName: "Анна", OriginalTime: "10:30", AdjustedTime: "10:35"},
	}, body.Affected)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		ucErr      error
		wantStatus int
	}{
		{name: "not admin", ucErr: completeAppointment.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "missing", ucErr: completeAppointment.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "cancelled", ucErr: completeAppointment.ErrInvalidTransition, wantStatus: http.StatusBadRequest},
		{name: "internal", ucErr: completeAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)

			w := serve(NewHandler(uc, nopLogger{}), "/api/v1/appointments/5/complete")

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
