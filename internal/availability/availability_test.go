package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countStore is an in-memory ConfirmedCounter keyed by "date|slot".
type countStore struct {
	counts map[string]int
	err    error
}

func (s *countStore) CountConfirmed(_ context.Context, date, slot string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.counts[date+"|"+slot], nil
}

func TestTimeSlotsFixedSet(t *testing.T) {
	slots := TimeSlots()
	require.Len(t, slots, 11)
	assert.Equal(t, "17:00", slots[0])
	assert.Equal(t, "22:00", slots[10])
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i], "slots must ascend")
	}

	// The returned slice is a copy; mutating it must not leak.
	slots[0] = "03:00"
	assert.Equal(t, "17:00", TimeSlots()[0])
}

func TestIsSlot(t *testing.T) {
	assert.True(t, IsSlot("19:00"))
	assert.True(t, IsSlot("21:30"))
	assert.False(t, IsSlot("16:30"))
	assert.False(t, IsSlot("19:15"))
	assert.False(t, IsSlot(""))
}

func TestIsAvailableCapacityBoundary(t *testing.T) {
	store := &countStore{counts: map[string]int{}}
	ch := NewChecker(store)
	ctx := context.Background()

	for n := 0; n < SlotCapacity; n++ {
		store.counts["2025-06-01|19:00"] = n
		assert.True(t, ch.IsAvailable(ctx, "2025-06-01", "19:00"), "count=%d", n)
	}
	store.counts["2025-06-01|19:00"] = SlotCapacity
	assert.False(t, ch.IsAvailable(ctx, "2025-06-01", "19:00"))
	store.counts["2025-06-01|19:00"] = SlotCapacity + 1
	assert.False(t, ch.IsAvailable(ctx, "2025-06-01", "19:00"))
}

func TestIsAvailableFailsOpenOnStoreError(t *testing.T) {
	ch := NewChecker(&countStore{err: errors.New("connection reset")})
	assert.True(t, ch.IsAvailable(context.Background(), "2025-06-01", "19:00"))
}

func TestAvailableSlotsSubsetAndOrder(t *testing.T) {
	store := &countStore{counts: map[string]int{
		"2025-06-01|18:00": 3,
		"2025-06-01|20:30": 3,
		"2025-06-01|19:00": 2, // still open
	}}
	ch := NewChecker(store)
	ctx := context.Background()

	open := ch.AvailableSlots(ctx, "2025-06-01")
	require.Len(t, open, 9)
	assert.NotContains(t, open, "18:00")
	assert.NotContains(t, open, "20:30")
	assert.Contains(t, open, "19:00")

	// Order matches the generator, and every returned slot reconfirms
	// as available.
	all := TimeSlots()
	j := 0
	for _, slot := range open {
		for all[j] != slot {
			j++
			require.Less(t, j, len(all), "slot %s out of generator order", slot)
		}
		assert.True(t, ch.IsAvailable(ctx, "2025-06-01", slot))
	}

	// Idempotent with no intervening writes.
	assert.Equal(t, open, ch.AvailableSlots(ctx, "2025-06-01"))
}

func TestAvailableSlotsFullyBooked(t *testing.T) {
	store := &countStore{counts: map[string]int{}}
	for _, slot := range TimeSlots() {
		store.counts["2025-12-24|"+slot] = SlotCapacity
	}
	ch := NewChecker(store)
	assert.Empty(t, ch.AvailableSlots(context.Background(), "2025-12-24"))
}
