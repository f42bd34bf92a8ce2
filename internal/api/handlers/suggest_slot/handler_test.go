package suggest_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	suggestSlot "github.com/m04kA/SMC-BarberService/internal/usecase/suggest_slot"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *suggestSlot.Request) (*suggestSlot.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*suggestSlot.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *suggestSlot.Request) bool {
		return req.DurationMinutes == 45 && req.From == types.TimeString("10:15") && req.ServiceID == nil
	})).Return(&suggestSlot.Response{
		Date:            time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Time:            "11:00",
		Found:           true,
		DurationMinutes: 45,
	}, nil)

	w := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/slots/next?date=2024-06-03&duration=45&from=10:15", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body SuggestSlotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, SuggestSlotResponse{Date: "2024-06-03", Time: "11:00", Found: true, DurationMinutes: 45}, body)
}

func TestHandler_Handle_BadQuery(t *testing.T) {
	h := NewHandler(&mockUseCase{}, nopLogger{})

	for _, query := range []string{
		"?date=bad",
		"?date=2024-06-03&duration=long",
		"?date=2024-06-03&serviceId=0",
		"?date=2024-06-03&from=25:70",
	} {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/slots/next"+query, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}
