package patch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/patch"
)

func TestAllocator_Place_SkipsReservedIntervals(t *testing.T) {
	a := patch.NewAllocator()
	a.Reserve(0, 10) // occupies [0,10)

	start, err := a.Place(0, 50, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(10), start) // pushed past the reservation
}

// spec §8 scenario 4: SHP reservation enforcement. Period 500,
// duration 50 — no new frame instance may land inside [0,50) or
// [500,550) within the hyperperiod.
func TestAllocator_ReserveSHP_BlocksReservationWindows(t *testing.T) {
	a := patch.NewAllocator()
	a.ReserveSHP(model.SHP{Period: 500, Duration: 50}, 1000)

	start, err := a.Place(0, 600, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(50), start)

	start2, err := a.Place(495, 600, 10)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, start2, int64(550))
}

func TestAllocator_ReserveSHP_Inactive_NoOp(t *testing.T) {
	a := patch.NewAllocator()
	a.ReserveSHP(model.SHP{}, 1000)

	start, err := a.Place(0, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), start)
}

func TestAllocator_Place_Infeasible(t *testing.T) {
	a := patch.NewAllocator()
	a.Reserve(0, 100) // occupies the whole feasible window

	_, err := a.Place(0, 10, 5)
	require.ErrorIs(t, err, patch.ErrPatchInfeasible)
}

// Ordering policy: input order, no backtracking — the second frame
// must be pushed after the first even though it would prefer the same
// slot, and a later-window frame never "steals" an earlier frame's
// slot out of order.
func TestRun_InputOrderNoBacktracking(t *testing.T) {
	results, err := patch.Run(nil, model.SHP{}, 100, []patch.NewFrameInput{
		{FrameID: 0, Instances: []patch.InstanceBounds{{Min: 0, Max: 20, Duration: 5}}},
		{FrameID: 1, Instances: []patch.InstanceBounds{{Min: 0, Max: 20, Duration: 5}}},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(0), results[0].Starts[0])
	assert.Equal(t, int64(5), results[1].Starts[0])
}

func TestRun_FixedFrameReservesInterval(t *testing.T) {
	fixed := []patch.FixedFrame{
		{FrameID: 9, Instances: []patch.FixedInstance{{Start: 0, Duration: 10}}},
	}
	results, err := patch.Run(fixed, model.SHP{}, 100, []patch.NewFrameInput{
		{FrameID: 0, Instances: []patch.InstanceBounds{{Min: 0, Max: 50, Duration: 5}}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), results[0].Starts[0])
}
