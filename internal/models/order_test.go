package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusPreparing, true},
		{StatusPreparing, StatusDelivered, true},
		{StatusPending, StatusCancelled, true},
		{StatusPreparing, StatusCancelled, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusPending, StatusPreparing, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTerminalStatusesAdmitNoTransition(t *testing.T) {
	all := []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusDelivered, StatusCancelled}
	for _, terminal := range []OrderStatus{StatusDelivered, StatusCancelled} {
		for _, next := range all {
			assert.False(t, terminal.CanTransitionTo(next), "%s -> %s", terminal, next)
		}
	}
}

func TestDeliveryCostFor(t *testing.T) {
	s := Settings{DeliveryCost: 800}
	assert.EqualValues(t, 800, s.DeliveryCostFor(DeliveryModeDelivery))
	assert.EqualValues(t, 0, s.DeliveryCostFor(DeliveryModePickup))

	s.IsDeliveryFree = true
	assert.EqualValues(t, 0, s.DeliveryCostFor(DeliveryModeDelivery))
}

func TestIsOpenAt(t *testing.T) {
	s := Settings{OpeningHours: WeekSchedule{
		Friday:   DaySchedule{IsOpen: true, OpenTime: "20:00", CloseTime: "23:30"},
		Saturday: DaySchedule{IsOpen: true, OpenTime: "20:00", CloseTime: "02:00"},
	}}

	friday := time.Date(2025, 7, 4, 21, 0, 0, 0, time.UTC) // a Friday
	assert.True(t, s.IsOpenAt(friday))
	assert.False(t, s.IsOpenAt(friday.Add(2*time.Hour+45*time.Minute)), "past close, 23:45")

	saturdayNight := time.Date(2025, 7, 5, 1, 0, 0, 0, time.UTC)
	assert.True(t, s.IsOpenAt(saturdayNight), "overnight window, 01:00")

	thursday := friday.Add(-24 * time.Hour)
	assert.False(t, s.IsOpenAt(thursday), "closed day")
}
