package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusCompleted, false},
		{StatusAssigned, StatusConfirmed, true},
		{StatusAssigned, StatusCancelled, true},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestServiceKindRequiresRoute(t *testing.T) {
	assert.True(t, KindScheduledSeat.RequiresRoute())
	assert.True(t, KindPrivate.RequiresRoute())
	assert.False(t, KindParcel.RequiresRoute())
	assert.False(t, KindPointToPoint.RequiresRoute())
	assert.False(t, KindAirportTransfer.RequiresRoute())
	assert.False(t, ServiceKind("BOGUS").Valid())
}

func TestCouponDiscountOn(t *testing.T) {
	maxDiscount := 3.0
	percent := Coupon{DiscountType: DiscountPercent, DiscountValue: 50, MaxDiscount: &maxDiscount, Active: true}
	assert.Equal(t, 3.0, percent.DiscountOn(20))
	assert.Equal(t, 2.0, percent.DiscountOn(4))

	flat := Coupon{DiscountType: DiscountFlat, DiscountValue: 10, Active: true}
	assert.Equal(t, 10.0, flat.DiscountOn(25))
	assert.Equal(t, 5.0, flat.DiscountOn(5), "discount never exceeds the total")

	inactive := Coupon{DiscountType: DiscountFlat, DiscountValue: 10}
	assert.Equal(t, 0.0, inactive.DiscountOn(25))
}
