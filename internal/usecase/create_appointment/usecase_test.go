package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/client"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

var day = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, apt)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Appointment) *domain.Appointment); ok {
		return fn(ctx, apt), args.Error(1)
	}
	created, _ := args.Get(0).(*domain.Appointment)
	return created, args.Error(1)
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

type mockClientRepo struct {
	mock.Mock
}

func (m *mockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Client)
	return c, args.Error(1)
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type countingMetrics struct {
	statuses []string
}

func (m *countingMetrics) ObserveAppointment(status string) {
	m.statuses = append(m.statuses, status)
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

var (
	petr  = &domain.Client{ID: 7, Phone: "+70000000001", FirstName: "Пётр", LastName: "Иванов", Type: domain.UserTypeClient}
	anna  = &domain.Client{ID: 8, Phone: "+70000000002", FirstName: "Анна", Type: domain.UserTypeClient}
	admin = &domain.Client{ID: 1, Phone: "+70000000000", FirstName: "Админ", Type: domain.UserTypeAdmin}

	haircut = &domain.BarberService{ID: 2, Name: "Стрижка", DurationMinutes: 30, Price: 1500, Active: true}
)

type fixture struct {
	appointments *mockAppointmentRepo
	services     *mockServiceRepo
	clients      *mockClientRepo
	metrics      *countingMetrics
	uc           *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		appointments: &mockAppointmentRepo{},
		services:     &mockServiceRepo{},
		clients:      &mockClientRepo{},
		metrics:      &countingMetrics{},
	}
	f.uc = NewUseCase(f.appointments, f.services, f.clients, inlineTx{}, f.metrics, nopLogger{}).
		WithTimeProvider(fixedTime{now: now})
	return f
}

func (f *fixture) expectDay(existing ...*domain.Appointment) {
	f.appointments.On("List", mock.Anything, mock.MatchedBy(func(filter domain.AppointmentsFilter) bool {
		return filter.IsSingleDay() && domain.SameDay(*filter.StartDate, day) && !filter.IncludeCancelled
	})).Return(existing, nil)
}

func (f *fixture) expectCreate() {
	f.appointments.On("Create", mock.Anything, mock.Anything).
		Return(func(_ context.Context, apt *domain.Appointment) *domain.Appointment {
			created := *apt
			created.ID = 42
			return &created
		}, nil)
}

func TestUseCase_Execute_ClientBooksCatalogSlot(t *testing.T) {
	f := newFixture(time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC))
	f.clients.On("GetByID", mock.Anything, int64(7)).Return(petr, nil)
	f.services.On("GetByID", mock.Anything, int64(2)).Return(haircut, nil)
	f.expectDay()
	f.appointments.On("Create", mock.Anything, mock.MatchedBy(func(apt *domain.Appointment) bool {
		return apt.ClientID == 7 &&
			apt.ClientName == "Пётр Иванов" &&
			apt.ClientPhone != nil && *apt.ClientPhone == "+70000000001" &&
			apt.ServiceName == "Стрижка" &&
			apt.ServiceDuration == 30 &&
			apt.Status == domain.StatusScheduled
	})).Return(&domain.Appointment{ID: 42, ClientID: 7, Date: day, Time: "10:00", Status: domain.StatusScheduled}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:    7,
		ServiceID: 2,
		Date:      day,
		Time:      "10:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.Time)
	assert.Equal(t, []string{"scheduled"}, f.metrics.statuses)
	f.appointments.AssertExpectations(t)
}

func TestUseCase_Execute_AdminBooksOffGridForClient(t *testing.T) {
	f := newFixture(time.Date(2024, 6, 3, 10, 5, 0, 0, time.UTC))
	f.clients.On("GetByID", mock.Anything, int64(1)).Return(admin, nil)
	f.clients.On("GetByID", mock.Anything, int64(8)).Return(anna, nil)
	f.services.On("GetByID", mock.Anything, int64(2)).Return(haircut, nil)
	f.expectDay(&domain.Appointment{ID: 1, Date: day, Time: "09:30", ServiceDuration: 45, Status: domain.StatusCompleted})
	f.expectCreate()

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:    1,
		ClientID:  ptr.Ptr(int64(8)),
		ServiceID: 2,
		Date:      day,
		Time:      "10:15",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(8), resp.ClientID)
	assert.Equal(t, "Анна", resp.ClientName)
	assert.Equal(t, types.TimeString("10:15"), resp.Time)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	morning := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		now     time.Time
		req     *Request
		setup   func(f *fixture)
		wantErr error
	}{
		{
			name:    "invalid time format",
			now:     morning,
			req:     &Request{UserID: 7, ServiceID: 2, Date: day, Time: "25:00"},
			setup:   func(f *fixture) {},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "notes too long",
			now:     morning,
			req:     &Request{UserID: 7, ServiceID: 2, Date: day, Time: "10:00", Notes: ptr.Ptr(string(make([]rune, 501)))},
			setup:   func(f *fixture) {},
			wantErr: ErrInvalidInput,
		},
		{
			name: "unknown client",
			now:  morning,
			req:  &Request{UserID: 99, ServiceID: 2, Date: day, Time: "10:00"},
			setup: func(f *fixture) {
				f.clients.On("GetByID", mock.Anything, int64(99)).Return(nil, clientRepo.ErrClientNotFound)
			},
			wantErr: ErrClientNotFound,
		},
		{
			name: "client books for another client",
			now:  morning,
			req:  &Request{UserID: 7, ClientID: ptr.Ptr(int64(8)), ServiceID: 2, Date: day, Time: "10:00"},
			setup: func(f *fixture) {
				f.clients.On("GetByID", mock.Anything, int64(7)).Return(petr, nil)
			},
			wantErr: ErrAccessDenied,
		},
		{
			name: "unknown service",
			now:  morning,
			req:  &Request{UserID: 7, ServiceID: 3, Date: day, Time: "10:00"},
			setup: func(f *fixture) {
				f.clients.On("GetByID", mock.Anything, int64(7)).Return(petr, nil)
				f.services.On("GetByID", mock.Anything, int64(3)).Return(nil, catalogRepo.ErrServiceNotFound)
			},
			wantErr: ErrServiceNotFound,
		},
		{
			name: "inactive service",
			now:  morning,
			req:  &Request{UserID: 7, ServiceID: 4, Date: day, Time: "10:00"},
			setup: func(f *fixture) {
				f.clients.On("GetByID", mock.Anything, int64(7)).Return(petr, nil)
				f.services.On("GetByID", mock.Anything, int64(4)).
					Return(&domain.BarberService{ID: 4, Name: "Окрашивание", DurationMinutes: 60}, nil)
			},
			wantErr: ErrServiceInactive,
		},
		{
			name: "client picks off-grid time",
			now:  morning,
			req:  &Request{UserID: 7, ServiceID: 2, Date: day, Time: "10:15"},
			setup: func(f *fixture) {
				f.clients.On("GetByID", mock.Anything, int64(7)).Return(petr, nil)
				f.services.On("GetByID", mock.Anything, int64(2)).Return(haircut, nil)
			},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name: "client picks a past slot",
			now:  time.Date(2024, 6, 3, 10, 20, 0, 0, time.UTC),
			req:  &Request{UserID: 7, ServiceID: 2, Date: day, Time: "10:00"},
			setup: func(f *fixture) {
				f.clients.On("GetByID", mock.Anything, int64(7)).Return(petr, nil)
				f.services.On("GetByID", mock.Anything, int64(2)).Return(haircut, nil)
			},
			wantErr: ErrSlotInPast,
		},
		{
			name: "admin books a past day",
			now:  morning,
			req:  &Request{UserID: 1, ServiceID: 2, Date: day.AddDate(0, 0, -1), Time: "10:00"},
			setup: func(f *fixture) {
				f.clients.On("GetByID", mock.Anything, int64(1)).Return(admin, nil)
				f.services.On("GetByID", mock.Anything, int64(2)).Return(haircut, nil)
			},
			wantErr: ErrSlotInPast,
		},
		{
			name: "overlapping appointment",
			now:  morning,
			req:  &Request{UserID: 7, ServiceID: 2, Date: day, Time: "10:30"},
			setup: func(f *fixture) {
				f.clients.On("GetByID", mock.Anything, int64(7)).Return(petr, nil)
				f.services.On("GetByID", mock.Anything, int64(2)).Return(haircut, nil)
				f.expectDay(&domain.Appointment{ID: 5, Date: day, Time: "10:00", ServiceDuration: 60, Status: domain.StatusScheduled})
			},
			wantErr: ErrSlotNotAvailable,
		},
		{
			name: "repository failure",
			now:  morning,
			req:  &Request{UserID: 7, ServiceID: 2, Date: day, Time: "10:00"},
			setup: func(f *fixture) {
				f.clients.On("GetByID", mock.Anything, int64(7)).Return(petr, nil)
				f.services.On("GetByID", mock.Anything, int64(2)).Return(haircut, nil)
				f.appointments.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
			},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.now)
			tt.setup(f)

			resp, err := f.uc.Execute(context.Background(), tt.req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			f.appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			assert.Empty(t, f.metrics.statuses)
		})
	}
}
