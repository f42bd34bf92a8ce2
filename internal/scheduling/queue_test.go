package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

func queueFixture() []*domain.Appointment {
	serving := newAppointment(1, "09:30", 30, domain.StatusInProgress)
	serving.ClientName = "Иван"

	second := newAppointment(2, "10:00", 45, domain.StatusScheduled)

	third := newAppointment(3, "11:00", 30, domain.StatusScheduled)
	third.ClientID = 12
	fourth := newAppointment(4, "12:00", 30, domain.StatusScheduled)
	fourth.ClientID = 12

	cancelled := newAppointment(5, "10:30", 30, domain.StatusCancelled)
	tomorrow := onDay(newAppointment(6, "09:00", 30, domain.StatusScheduled), testDay.AddDate(0, 0, 1))
	tomorrow.ClientID = 12

	return []*domain.Appointment{fourth, serving, cancelled, third, second, tomorrow}
}

func TestClientsAndWaitBeforeTime(t *testing.T) {
	apts := queueFixture()

	assert.Equal(t, 2, ClientsBeforeTime(apts, testDay, "11:00"))
	assert.Equal(t, 75, WaitTimeBeforeTime(apts, testDay, "11:00"))
	assert.Equal(t, 0, ClientsBeforeTime(apts, testDay, "09:30"))
	assert.Equal(t, 0, ClientsBeforeTime(apts, testDay, "bad"))
}

func TestMinutesUntil(t *testing.T) {
	apt := newAppointment(1, "11:00", 30, domain.StatusScheduled)

	got, err := MinutesUntil(apt, at(testDay, 10, 0).Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 59, got)

	got, err = MinutesUntil(apt, at(testDay, 11, 30))
	require.NoError(t, err)
	assert.Equal(t, -30, got)

	_, err = MinutesUntil(newAppointment(2, "x", 30, domain.StatusScheduled), at(testDay, 10, 0))
	assert.Error(t, err)
}

func TestTodayScheduled(t *testing.T) {
	apts := queueFixture()
	now := at(testDay, 10, 0)

	got := TodayScheduled(apts, now)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{2, 3, 4}, []int64{got[0].ID, got[1].ID, got[2].ID})

	own := TodayForClient(apts, 12, now)
	require.Len(t, own, 2)
	assert.Equal(t, int64(3), own[0].ID)
}

func TestQueueFor(t *testing.T) {
	apts := queueFixture()
	now := at(testDay, 10, 0)

	status := QueueFor(apts, 12, now)

	require.NotNil(t, status.NextAppointment)
	assert.Equal(t, int64(3), status.NextAppointment.ID)
	assert.Equal(t, 3, status.Position)
	assert.Equal(t, 75, status.EstimatedWait)
	assert.Equal(t, 4, status.TotalInQueue)
	assert.Equal(t, "Иван", status.CurrentlyServing)
	assert.Equal(t, 60, status.MinutesUntilStart)
}

func TestQueueFor_NoAppointment(t *testing.T) {
	status := QueueFor(queueFixture(), 999, at(testDay, 10, 0))

	assert.Nil(t, status.NextAppointment)
	assert.Zero(t, status.Position)
	assert.Equal(t, 4, status.TotalInQueue)
}
