package strategy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/constraint"
	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/offsetgraph"
	"github.com/shpnet/tts-scheduler/strategy"
	"github.com/shpnet/tts-scheduler/timemodel"
)

func twoFrameSharedLinkTraffic(t *testing.T) (*model.Topology, *model.Traffic) {
	t.Helper()
	topo := model.NewTopology()
	require.NoError(t, topo.AddNode(model.Node{ID: 0, Role: model.EndSystem}))
	require.NoError(t, topo.AddNode(model.Node{ID: 1, Role: model.EndSystem}))
	require.NoError(t, topo.AddLink(model.Link{ID: 0, Kind: model.Wired, SpeedMBs: 1000}))
	require.NoError(t, topo.Connect(0, 1, 0))

	f0, err := model.NewFrame(0, 100, 10, 0, 0, 0, 0, []model.Receiver{{ReceiverID: 1, Path: []int{0}}})
	require.NoError(t, err)
	f1, err := model.NewFrame(1, 100, 10, 0, 0, 0, 0, []model.Receiver{{ReceiverID: 1, Path: []int{0}}})
	require.NoError(t, err)
	traffic, err := model.NewTraffic([]*model.Frame{f0, f1})
	require.NoError(t, err)

	return topo, traffic
}

// spec §8 scenario 2, via the One-shot driver end to end.
func TestOneShot_TwoFramesSharedLink(t *testing.T) {
	topo, traffic := twoFrameSharedLinkTraffic(t)
	res, _, err := timemodel.Normalize(topo, traffic, model.SHP{})
	require.NoError(t, err)
	for _, f := range traffic.Frames() {
		require.NoError(t, offsetgraph.BuildFrame(f, res, res.HyperperiodSlots))
	}

	b := backend.NewBacktrackingBackend(0)
	defer b.Close()

	err = strategy.OneShot(b, strategy.DefaultConfig(), constraint.DefaultConfig(), traffic, nil, res.HyperperiodSlots)
	require.NoError(t, err)

	f0, _ := traffic.ByID(0)
	f1, _ := traffic.ByID(1)
	idx0, _ := f0.Offsets.Lookup(0)
	idx1, _ := f1.Offsets.Lookup(0)
	o0, o1 := f0.Offsets.At(idx0), f1.Offsets.At(idx1)

	require.NotEqual(t, model.UnsetOffset, o0.Value[0][0])
	require.NotEqual(t, model.UnsetOffset, o1.Value[0][0])

	x0, x1 := o0.Value[0][0], o1.Value[0][0]
	require.True(t, x1-x0 >= o0.Time || x0-x1 >= o1.Time)
}

// spec §8 scenario 5: incremental (K=1) must also produce a
// verifier-passing (here: non-overlapping) schedule for the same
// contending-frames instance.
func TestIncremental_TwoFramesSharedLink(t *testing.T) {
	topo, traffic := twoFrameSharedLinkTraffic(t)
	res, _, err := timemodel.Normalize(topo, traffic, model.SHP{})
	require.NoError(t, err)
	for _, f := range traffic.Frames() {
		require.NoError(t, offsetgraph.BuildFrame(f, res, res.HyperperiodSlots))
	}

	b := backend.NewBacktrackingBackend(0)
	defer b.Close()

	cfg := strategy.DefaultConfig()
	cfg.K = 1
	err = strategy.Incremental(context.Background(), b, cfg, constraint.DefaultConfig(), traffic, nil, res.HyperperiodSlots)
	require.NoError(t, err)

	f0, _ := traffic.ByID(0)
	f1, _ := traffic.ByID(1)
	idx0, _ := f0.Offsets.Lookup(0)
	idx1, _ := f1.Offsets.Lookup(0)
	o0, o1 := f0.Offsets.At(idx0), f1.Offsets.At(idx1)

	x0, x1 := o0.Value[0][0], o1.Value[0][0]
	require.True(t, x1-x0 >= o0.Time || x0-x1 >= o1.Time)
}

// Two frames whose shared-link offset domain is too narrow (max
// separation 1 slot) to satisfy a disjunctive constraint demanding
// separation >= 2 (their duration) in either direction: genuinely
// infeasible, regardless of which values the solver tries.
func TestOneShot_NoScheduleOnInfeasibleContention(t *testing.T) {
	topo := model.NewTopology()
	require.NoError(t, topo.AddNode(model.Node{ID: 0, Role: model.EndSystem}))
	require.NoError(t, topo.AddNode(model.Node{ID: 1, Role: model.EndSystem}))
	require.NoError(t, topo.AddNode(model.Node{ID: 2, Role: model.EndSystem}))
	require.NoError(t, topo.AddLink(model.Link{ID: 0, Kind: model.Wired, SpeedMBs: 1000}))
	require.NoError(t, topo.AddLink(model.Link{ID: 1, Kind: model.Wired, SpeedMBs: 1000}))
	require.NoError(t, topo.Connect(0, 1, 0))
	require.NoError(t, topo.Connect(0, 2, 1))

	// size=250,speed=1000 -> dur=2ns; size=125,speed=1000 -> dur=1ns.
	// Folding both into the timeslot GCD forces timeslot=1, so f0/f1
	// keep duration 2 in slot units.
	f0, err := model.NewFrame(0, 250, 3, 0, 0, 0, 0, []model.Receiver{{ReceiverID: 1, Path: []int{0}}})
	require.NoError(t, err)
	f1, err := model.NewFrame(1, 250, 3, 0, 0, 0, 0, []model.Receiver{{ReceiverID: 1, Path: []int{0}}})
	require.NoError(t, err)
	f2, err := model.NewFrame(2, 125, 3, 0, 0, 0, 0, []model.Receiver{{ReceiverID: 2, Path: []int{1}}})
	require.NoError(t, err)
	traffic, err := model.NewTraffic([]*model.Frame{f0, f1, f2})
	require.NoError(t, err)

	res, _, err := timemodel.Normalize(topo, traffic, model.SHP{})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.TimeslotNS)
	for _, f := range traffic.Frames() {
		require.NoError(t, offsetgraph.BuildFrame(f, res, res.HyperperiodSlots))
	}

	b := backend.NewBacktrackingBackend(0)
	defer b.Close()

	err = strategy.OneShot(b, strategy.DefaultConfig(), constraint.DefaultConfig(), traffic, nil, res.HyperperiodSlots)
	require.Error(t, err)
	require.ErrorIs(t, err, strategy.ErrNoSchedule)
}
