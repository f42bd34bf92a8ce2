package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
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

func newUseCase(repo *mockAppointmentRepo, now time.Time) *UseCase {
	return NewUseCase(repo, nopLogger{}).WithTimeProvider(fixedTime{now: now})
}

func TestUseCase_Execute_FutureEmptyDay(t *testing.T) {
	repo := &mockAppointmentRepo{}
	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.AppointmentsFilter) bool {
		return f.IsSingleDay() && domain.SameDay(*f.StartDate, day)
	})).Return([]*domain.Appointment{}, nil)

	resp, err := newUseCase(repo, day.AddDate(0, 0, -1).Add(15*time.Hour)).
		Execute(context.Background(), &Request{UserID: 7, Date: day})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 18)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("09:00"), resp.NextAvailableTime)
	assert.False(t, resp.NextBusinessDay)
	assert.Zero(t, resp.OccupiedCount)
}

func TestUseCase_Execute_TodayExcludesPastAndBooked(t *testing.T) {
	repo := &mockAppointmentRepo{}
	repo.On("List", mock.Anything, mock.Anything).Return([]*domain.Appointment{
		{ID: 1, Date: day, Time: "11:00", ServiceDuration: 30, Status: domain.StatusScheduled},
	}, nil)

	resp, err := newUseCase(repo, day.Add(10*time.Hour+15*time.Minute)).
		Execute(context.Background(), &Request{UserID: 7, Date: day})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 14)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[0])
	assert.NotContains(t, resp.Slots, types.TimeString("11:00"))
	assert.Equal(t, types.TimeString("11:30"), resp.NextAvailableTime)
	assert.Equal(t, 1, resp.OccupiedCount)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	repo := &mockAppointmentRepo{}

	_, err := newUseCase(repo, day.Add(12*time.Hour)).
		Execute(context.Background(), &Request{Date: day.AddDate(0, 0, -1)})

	assert.ErrorIs(t, err, ErrInvalidDate)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_MissingDate(t *testing.T) {
	_, err := newUseCase(&mockAppointmentRepo{}, day).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_RepositoryError(t *testing.T) {
	repo := &mockAppointmentRepo{}
	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := newUseCase(repo, day).Execute(context.Background(), &Request{Date: day})

	assert.ErrorIs(t, err, ErrInternal)
}
