package constraint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/constraint"
	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/offsetgraph"
	"github.com/shpnet/tts-scheduler/timemodel"
)

func chainTopology(t *testing.T) *model.Topology {
	t.Helper()
	topo := model.NewTopology()
	for id := 0; id <= 2; id++ {
		require.NoError(t, topo.AddNode(model.Node{ID: id, Role: model.Switch}))
	}
	for id := 0; id <= 1; id++ {
		require.NoError(t, topo.AddLink(model.Link{ID: id, Kind: model.Wired, SpeedMBs: 1000}))
	}
	require.NoError(t, topo.Connect(0, 1, 0))
	require.NoError(t, topo.Connect(1, 2, 1))

	return topo
}

// spec §8 scenario 1: a single two-hop frame must have its downstream
// offset strictly after its upstream offset by at least the upstream
// transmission duration, and its end-to-end slack must be consistent.
func TestPathDependencyAndEndToEnd_TwoLinkChain(t *testing.T) {
	topo := chainTopology(t)
	f, err := model.NewFrame(0, 100, 10, 0, 0, 0, 0, []model.Receiver{
		{ReceiverID: 2, Path: []int{0, 1}},
	})
	require.NoError(t, err)
	traffic, err := model.NewTraffic([]*model.Frame{f})
	require.NoError(t, err)

	res, _, err := timemodel.Normalize(topo, traffic, model.SHP{})
	require.NoError(t, err)
	require.NoError(t, offsetgraph.BuildFrame(f, res, res.HyperperiodSlots))

	b := backend.NewBacktrackingBackend(0)
	defer b.Close()
	m := constraint.New(b, constraint.DefaultConfig())

	require.NoError(t, m.EmitFrameVariables(f, res.HyperperiodSlots))
	require.NoError(t, m.EmitPathDependencyConstraints(f))
	require.NoError(t, m.EmitEndToEndConstraints(f))

	status, err := b.Optimize(0, 0)
	require.NoError(t, err)
	require.Contains(t, []backend.Status{backend.Optimal, backend.Feasible}, status)

	firstIdx, _ := f.Offsets.Lookup(0)
	secondIdx, _ := f.Offsets.Lookup(1)
	first := f.Offsets.At(firstIdx)
	second := f.Offsets.At(secondIdx)

	x0, err := b.GetValue(first.Var[0][0])
	require.NoError(t, err)
	x1, err := b.GetValue(second.Var[0][0])
	require.NoError(t, err)

	require.GreaterOrEqual(t, x1-x0, float64(first.Time))
}

// spec §8 scenario 2: two single-hop frames contending for the same
// link must never overlap; the disjunction must force one frame's
// window fully before or fully after the other's.
func TestContentionFreeConstraints_TwoFramesSharedLink(t *testing.T) {
	topo := model.NewTopology()
	require.NoError(t, topo.AddNode(model.Node{ID: 0, Role: model.EndSystem}))
	require.NoError(t, topo.AddNode(model.Node{ID: 1, Role: model.EndSystem}))
	require.NoError(t, topo.AddLink(model.Link{ID: 0, Kind: model.Wired, SpeedMBs: 1000}))
	require.NoError(t, topo.Connect(0, 1, 0))

	f1, err := model.NewFrame(0, 100, 10, 0, 0, 0, 0, []model.Receiver{{ReceiverID: 1, Path: []int{0}}})
	require.NoError(t, err)
	f2, err := model.NewFrame(1, 100, 10, 0, 0, 0, 0, []model.Receiver{{ReceiverID: 1, Path: []int{0}}})
	require.NoError(t, err)
	traffic, err := model.NewTraffic([]*model.Frame{f1, f2})
	require.NoError(t, err)

	res, _, err := timemodel.Normalize(topo, traffic, model.SHP{})
	require.NoError(t, err)
	require.NoError(t, offsetgraph.BuildFrame(f1, res, res.HyperperiodSlots))
	require.NoError(t, offsetgraph.BuildFrame(f2, res, res.HyperperiodSlots))

	b := backend.NewBacktrackingBackend(0)
	defer b.Close()
	m := constraint.New(b, constraint.DefaultConfig())

	require.NoError(t, m.EmitFrameVariables(f1, res.HyperperiodSlots))
	require.NoError(t, m.EmitFrameVariables(f2, res.HyperperiodSlots))
	require.NoError(t, m.EmitPathDependencyConstraints(f1))
	require.NoError(t, m.EmitPathDependencyConstraints(f2))
	require.NoError(t, m.EmitEndToEndConstraints(f1))
	require.NoError(t, m.EmitEndToEndConstraints(f2))

	ld, err := m.NewLinkDistVar(0, res.HyperperiodSlots)
	require.NoError(t, err)
	require.NoError(t, m.EmitContentionFreeConstraints(f1, f2, 0, ld))

	status, err := b.Optimize(0, 0)
	require.NoError(t, err)
	require.Contains(t, []backend.Status{backend.Optimal, backend.Feasible}, status)

	idx1, _ := f1.Offsets.Lookup(0)
	idx2, _ := f2.Offsets.Lookup(0)
	o1 := f1.Offsets.At(idx1)
	o2 := f2.Offsets.At(idx2)

	x1, err := b.GetValue(o1.Var[0][0])
	require.NoError(t, err)
	x2, err := b.GetValue(o2.Var[0][0])
	require.NoError(t, err)

	require.True(t, x2-x1 >= float64(o1.Time) || x1-x2 >= float64(o2.Time))
}

// A frame whose receiver path has only one hop must not need the
// FrameDist-based path-dependency chain — EmitPathDependencyConstraints
// must return cleanly with nothing emitted.
func TestEmitPathDependencyConstraints_SingleHopIsNoop(t *testing.T) {
	topo := model.NewTopology()
	require.NoError(t, topo.AddNode(model.Node{ID: 0, Role: model.EndSystem}))
	require.NoError(t, topo.AddNode(model.Node{ID: 1, Role: model.EndSystem}))
	require.NoError(t, topo.AddLink(model.Link{ID: 0, Kind: model.Wired, SpeedMBs: 1000}))
	require.NoError(t, topo.Connect(0, 1, 0))

	f, err := model.NewFrame(0, 100, 10, 0, 0, 0, 0, []model.Receiver{{ReceiverID: 1, Path: []int{0}}})
	require.NoError(t, err)
	traffic, err := model.NewTraffic([]*model.Frame{f})
	require.NoError(t, err)

	res, _, err := timemodel.Normalize(topo, traffic, model.SHP{})
	require.NoError(t, err)
	require.NoError(t, offsetgraph.BuildFrame(f, res, res.HyperperiodSlots))

	b := backend.NewBacktrackingBackend(0)
	defer b.Close()
	m := constraint.New(b, constraint.DefaultConfig())

	require.NoError(t, m.EmitFrameVariables(f, res.HyperperiodSlots))
	require.NoError(t, m.EmitPathDependencyConstraints(f))
}
