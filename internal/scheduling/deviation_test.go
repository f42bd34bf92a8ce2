package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

func TestCalculateTimeDeviation_DeadBand(t *testing.T) {
	// Ожидаемый конец 10:00
	apt := newAppointment(1, "09:30", 30, domain.StatusCompleted)

	tests := []struct {
		name        string
		completedAt time.Time
		want        Deviation
	}{
		{name: "exact", completedAt: at(testDay, 10, 0), want: Deviation{Type: DeviationOnTime}},
		{name: "two minutes late", completedAt: at(testDay, 10, 2), want: Deviation{Type: DeviationOnTime}},
		{name: "three minutes late", completedAt: at(testDay, 10, 3), want: Deviation{Type: DeviationLate, Minutes: 3}},
		{name: "two minutes early", completedAt: at(testDay, 9, 58), want: Deviation{Type: DeviationOnTime}},
		{name: "three minutes early", completedAt: at(testDay, 9, 57), want: Deviation{Type: DeviationEarly, Minutes: 3}},
		{name: "four minutes early", completedAt: at(testDay, 9, 56), want: Deviation{Type: DeviationEarly, Minutes: 4}},
		{name: "half minute rounds up", completedAt: at(testDay, 10, 2).Add(30 * time.Second), want: Deviation{Type: DeviationLate, Minutes: 3}},
		{name: "negative half rounds toward zero", completedAt: at(testDay, 9, 57).Add(30 * time.Second), want: Deviation{Type: DeviationOnTime}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTimeDeviation(apt, ptr.Ptr(tt.completedAt), at(testDay, 12, 0))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateTimeDeviation_CompletionSource(t *testing.T) {
	apt := newAppointment(1, "09:30", 30, domain.StatusCompleted)
	apt.CompletedAt = ptr.Ptr(at(testDay, 10, 10))

	// Время завершения из записи имеет приоритет над параметром
	got := CalculateTimeDeviation(apt, ptr.Ptr(at(testDay, 10, 0)), at(testDay, 12, 0))
	assert.Equal(t, Deviation{Type: DeviationLate, Minutes: 10}, got)

	// Без времени завершения используется now
	apt.CompletedAt = nil
	got = CalculateTimeDeviation(apt, nil, at(testDay, 9, 50))
	assert.Equal(t, Deviation{Type: DeviationEarly, Minutes: 10}, got)
}

func TestCalculateTimeDeviation_NeverFails(t *testing.T) {
	broken := newAppointment(1, "nonsense", 30, domain.StatusCompleted)
	assert.Equal(t, Deviation{Type: DeviationOnTime}, CalculateTimeDeviation(broken, nil, at(testDay, 12, 0)))
	assert.Equal(t, Deviation{Type: DeviationOnTime}, CalculateTimeDeviation(nil, nil, at(testDay, 12, 0)))
}

func TestDeviation_SignedMinutes(t *testing.T) {
	assert.Equal(t, -4, Deviation{Type: DeviationEarly, Minutes: 4}.SignedMinutes())
	assert.Equal(t, 7, Deviation{Type: DeviationLate, Minutes: 7}.SignedMinutes())
	assert.Equal(t, 0, Deviation{Type: DeviationOnTime}.SignedMinutes())
}

func TestGetSubsequentAppointments(t *testing.T) {
	reference := newAppointment(1, "10:00", 30, domain.StatusCompleted)
	apts := []*domain.Appointment{
		newAppointment(3, "11:00", 30, domain.StatusScheduled),
		reference,
		newAppointment(4, "09:30", 30, domain.StatusScheduled),
		newAppointment(2, "10:30", 30, domain.StatusScheduled),
		newAppointment(5, "11:30", 30, domain.StatusCancelled),
		newAppointment(6, "12:00", 30, domain.StatusInProgress),
		onDay(newAppointment(7, "12:00", 30, domain.StatusScheduled), testDay.AddDate(0, 0, 1)),
		newAppointment(8, "10:00", 30, domain.StatusScheduled),
	}

	got := GetSubsequentAppointments(apts, reference)

	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	assert.Empty(t, GetSubsequentAppointments(apts, nil))
}

func TestCalculateAdjustedTime(t *testing.T) {
	tests := []struct {
		original   types.TimeString
		adjustment int
		want       types.TimeString
	}{
		{"10:30", 5, "10:35"},
		{"11:00", 5, "11:05"},
		{"10:00", -15, "09:45"},
		{"10:00", 0, "10:00"},
		{"00:10", -30, "00:00"},
		{"23:50", 30, "23:59"},
		{"bad", 10, "bad"},
	}

	for _, tt := range tests {
		t.Run(string(tt.original), func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateAdjustedTime(tt.original, tt.adjustment))
		})
	}
}

func TestScheduleImpact_LatePropagation(t *testing.T) {
	completed := newAppointment(1, "10:00", 30, domain.StatusCompleted)
	apts := []*domain.Appointment{
		completed,
		newAppointment(2, "10:30", 30, domain.StatusScheduled),
		newAppointment(3, "11:00", 30, domain.StatusScheduled),
	}

	impact := ScheduleImpact(apts, completed, ptr.Ptr(at(testDay, 10, 35)), at(testDay, 10, 40))

	assert.Equal(t, Deviation{Type: DeviationLate, Minutes: 5}, impact.Deviation)
	require.Len(t, impact.Affected, 2)
	assert.Equal(t, types.TimeString("10:35"), impact.Affected[0].AdjustedTime)
	assert.Equal(t, types.TimeString("11:05"), impact.Affected[1].AdjustedTime)
	assert.Equal(t, []types.TimeString{"10:30", "11:00"}, times([]*domain.Appointment{
		impact.Affected[0].Appointment,
		impact.Affected[1].Appointment,
	}))
}

func TestScheduleImpact_EarlyPropagation(t *testing.T) {
	completed := newAppointment(1, "10:00", 30, domain.StatusCompleted)
	apts := []*domain.Appointment{
		completed,
		newAppointment(2, "10:30", 30, domain.StatusScheduled),
		newAppointment(3, "11:00", 30, domain.StatusCancelled),
	}

	impact := ScheduleImpact(apts, completed, ptr.Ptr(at(testDay, 10, 20)), at(testDay, 10, 20))

	assert.Equal(t, Deviation{Type: DeviationEarly, Minutes: 10}, impact.Deviation)
	require.Len(t, impact.Affected, 1)
	assert.Equal(t, types.TimeString("10:20"), impact.Affected[0].AdjustedTime)
}

func TestOverrunMinutes(t *testing.T) {
	apt := newAppointment(1, "10:00", 30, domain.StatusInProgress)

	minutes, ok := OverrunMinutes(apt, at(testDay, 10, 40))
	assert.True(t, ok)
	assert.Equal(t, 10, minutes)

	minutes, ok = OverrunMinutes(apt, at(testDay, 10, 20))
	assert.True(t, ok)
	assert.Equal(t, -10, minutes)

	_, ok = OverrunMinutes(newAppointment(2, "bad", 30, domain.StatusInProgress), at(testDay, 10, 0))
	assert.False(t, ok)
}
