package update_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-BarberService/internal/service/catalog"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*models.ServiceResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	svc := &mockService{}
	svc.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(req *models.UpdateServiceRequest) bool {
		return req.Price != nil && *req.Price == 1800
	})).Return(&models.ServiceResponse{ID: 3, Price: 1800}, nil)
	svc.On("Update", mock.Anything, int64(4), mock.Anything).Return(nil, catalog.ErrServiceNotFound)
	svc.On("Update", mock.Anything, int64(5), mock.Anything).Return(nil, catalog.ErrInvalidInput)
	h := NewHandler(svc, nopLogger{})

	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
	}{
		{name: "updated", id: "3", body: `{"price":1800}`, wantStatus: http.StatusOK},
		{name: "not found", id: "4", body: `{"price":1800}`, wantStatus: http.StatusNotFound},
		{name: "invalid data", id: "5", body: `{"durationMinutes":1}`, wantStatus: http.StatusBadRequest},
		{name: "invalid id", id: "abc", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "invalid body", id: "3", body: `[`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPut, "/api/v1/services/"+tt.id, strings.NewReader(tt.body))
			r = mux.SetURLVars(r, map[string]string{"serviceId": tt.id})
			w := httptest.NewRecorder()

			h.Handle(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
