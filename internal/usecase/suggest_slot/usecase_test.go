package suggest_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

var day = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	apts, _ := args.Get(0).([]*domain.Appointment)
	return apts, args.Error(1)
}

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.BarberService, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.BarberService)
	return s, args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func dayAppointments() []*domain.Appointment {
	return []*domain.Appointment{
		{ID: 2, Date: day, Time: "10:00", ServiceDuration: 60, Status: domain.StatusScheduled},
		{ID: 1, Date: day, Time: "09:00", ServiceDuration: 30, Status: domain.StatusScheduled},
	}
}

func TestUseCase_Execute(t *testing.T) {
	yesterday := day.AddDate(0, 0, -1).Add(12 * time.Hour)

	tests := []struct {
		name     string
		now      time.Time
		req      *Request
		wantTime types.TimeString
		wantDur  int
	}{
		{name: "first gap of the day", now: yesterday, req: &Request{Date: day, DurationMinutes: 30}, wantTime: "09:30", wantDur: 30},
		{name: "default duration", now: yesterday, req: &Request{Date: day}, wantTime: "09:30", wantDur: 30},
		{name: "gap too small", now: yesterday, req: &Request{Date: day, DurationMinutes: 60}, wantTime: "11:00", wantDur: 60},
		{name: "explicit from", now: yesterday, req: &Request{Date: day, DurationMinutes: 30, From: "10:15"}, wantTime: "11:00", wantDur: 30},
		{name: "today starts from now", now: day.Add(9*time.Hour + 40*time.Minute), req: &Request{Date: day, DurationMinutes: 15}, wantTime: "09:40", wantDur: 15},
		{name: "today before opening", now: day.Add(7 * time.Hour), req: &Request{Date: day, DurationMinutes: 30}, wantTime: "09:30", wantDur: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAppointmentRepo{}
			repo.On("List", mock.Anything, mock.Anything).Return(dayAppointments(), nil)
			uc := NewUseCase(repo, &mockServiceRepo{}, nopLogger{}).WithTimeProvider(fixedTime{now: tt.now})

			resp, err := uc.Execute(context.Background(), tt.req)

			require.NoError(t, err)
			assert.True(t, resp.Found)
			assert.Equal(t, tt.wantTime, resp.Time)
			assert.Equal(t, tt.wantDur, resp.DurationMinutes)
		})
	}
}

func TestUseCase_Execute_DurationFromService(t *testing.T) {
	repo := &mockAppointmentRepo{}
	repo.On("List", mock.Anything, mock.Anything).Return(dayAppointments(), nil)
	services := &mockServiceRepo{}
	services.On("GetByID", mock.Anything, int64(3)).Return(&domain.BarberService{ID: 3, DurationMinutes: 45}, nil)

	resp, err := NewUseCase(repo, services, nopLogger{}).
		WithTimeProvider(fixedTime{now: day.AddDate(0, 0, -1)}).
		Execute(context.Background(), &Request{Date: day, ServiceID: ptr.Ptr(int64(3))})

	require.NoError(t, err)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, types.TimeString("11:00"), resp.Time)
}

func TestUseCase_Execute_DayIsFull(t *testing.T) {
	repo := &mockAppointmentRepo{}
	repo.On("List", mock.Anything, mock.Anything).Return([]*domain.Appointment{
		{ID: 1, Date: day, Time: "09:00", ServiceDuration: 540, Status: domain.StatusScheduled},
	}, nil)

	resp, err := NewUseCase(repo, &mockServiceRepo{}, nopLogger{}).
		WithTimeProvider(fixedTime{now: day.AddDate(0, 0, -1)}).
		Execute(context.Background(), &Request{Date: day, DurationMinutes: 30})

	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.True(t, resp.Time.IsZero())
}

func TestUseCase_Execute_Errors(t *testing.T) {
	services := &mockServiceRepo{}
	services.On("GetByID", mock.Anything, int64(9)).Return(nil, catalogRepo.ErrServiceNotFound)
	uc := NewUseCase(&mockAppointmentRepo{}, services, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: day, From: "9am"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: day, DurationMinutes: 1000})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: day, ServiceID: ptr.Ptr(int64(9))})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
