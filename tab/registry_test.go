package tab

import (
	"testing"

	"github.com/javanhut/Zoha/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryOf(t *testing.T, n int) *Registry {
	t.Helper()
	r := NewRegistry()
	prov := newFakeProvider()
	for i := 0; i < n; i++ {
		id := SessionID(i + 1)
		term, err := prov.NewTerminal(id)
		require.NoError(t, err)
		require.NoError(t, r.Insert(i, NewSession(id, i+1, term, nil, logx.Discard())))
	}
	return r
}

func slotIDs(r *Registry) []SessionID {
	var ids []SessionID
	r.Each(func(_ int, s *Session) { ids = append(ids, s.ID()) })
	return ids
}

func TestRegistryInsertShiftsUp(t *testing.T) {
	r := registryOf(t, 4)
	term, _ := newFakeProvider().NewTerminal(9)
	require.NoError(t, r.Insert(2, NewSession(9, 9, term, nil, logx.Discard())))

	assert.Equal(t, []SessionID{1, 2, 9, 3, 4}, slotIDs(r))
	slot, ok := r.SlotOf(9)
	require.True(t, ok)
	assert.Equal(t, 2, slot)
}

func TestRegistryRemoveShiftsDown(t *testing.T) {
	r := registryOf(t, 5)
	s, err := r.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, SessionID(2), s.ID())
	assert.Equal(t, []SessionID{1, 3, 4, 5}, slotIDs(r))

	_, ok := r.SlotOf(2)
	assert.False(t, ok)
}

func TestRegistryReorderBackward(t *testing.T) {
	r := registryOf(t, 5)
	require.NoError(t, r.Reorder(3, 1))
	// slot 3 lands at 1, slots 1 and 2 move up to 2 and 3, 0 and 4 stay
	assert.Equal(t, []SessionID{1, 4, 2, 3, 5}, slotIDs(r))
}

func TestRegistryReorderForward(t *testing.T) {
	r := registryOf(t, 5)
	require.NoError(t, r.Reorder(1, 3))
	// slots 2 and 3 move down to 1 and 2
	assert.Equal(t, []SessionID{1, 3, 4, 2, 5}, slotIDs(r))
}

func TestRegistryOutOfRangeLeavesEntries(t *testing.T) {
	r := registryOf(t, 3)
	term, _ := newFakeProvider().NewTerminal(9)
	s := NewSession(9, 9, term, nil, logx.Discard())

	assert.ErrorIs(t, r.Insert(4, s), ErrSlotRange)
	assert.ErrorIs(t, r.Insert(-1, s), ErrSlotRange)
	_, err := r.Remove(3)
	assert.ErrorIs(t, err, ErrSlotRange)
	assert.ErrorIs(t, r.Reorder(0, 3), ErrSlotRange)
	assert.ErrorIs(t, r.Reorder(-1, 0), ErrSlotRange)
	assert.Equal(t, []SessionID{1, 2, 3}, slotIDs(r))

	_, ok := r.At(3)
	assert.False(t, ok)
	_, ok = r.At(-1)
	assert.False(t, ok)
}

func TestRegistryClear(t *testing.T) {
	r := registryOf(t, 3)
	out := r.Clear()
	assert.Len(t, out, 3)
	assert.Equal(t, 0, r.Len())
}

func TestReorderedSlot(t *testing.T) {
	cases := []struct {
		from, to int
		want     []int // new slot of each of 5 old slots
	}{
		{from: 3, to: 1, want: []int{0, 2, 3, 1, 4}},
		{from: 1, to: 3, want: []int{0, 3, 1, 2, 4}},
		{from: 0, to: 4, want: []int{4, 0, 1, 2, 3}},
		{from: 4, to: 0, want: []int{1, 2, 3, 4, 0}},
		{from: 2, to: 2, want: []int{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		got := make([]int, 5)
		for i := range got {
			got[i] = ReorderedSlot(i, tc.from, tc.to)
		}
		assert.Equal(t, tc.want, got, "%d->%d", tc.from, tc.to)
	}
}
