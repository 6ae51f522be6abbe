package verify_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/constraint"
	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/offsetgraph"
	"github.com/shpnet/tts-scheduler/strategy"
	"github.com/shpnet/tts-scheduler/timemodel"
	"github.com/shpnet/tts-scheduler/verify"
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

func readbackFrame(t *testing.T, b backend.Backend, f *model.Frame) {
	t.Helper()
	for _, o := range f.Offsets.Iterate() {
		for i := 0; i < o.NumInstances; i++ {
			for r := 0; r < o.NumReplicas; r++ {
				v, err := b.GetValue(o.Var[i][r])
				require.NoError(t, err)
				o.Value[i][r] = int64(math.Round(v))
			}
		}
	}
}

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

// spec §8 scenario 2, via the verifier: a one-shot solve over two
// contending frames must pass every check.
func TestRun_ValidScheduleFromOneShotPasses(t *testing.T) {
	topo, traffic := twoFrameSharedLinkTraffic(t)
	res, _, err := timemodel.Normalize(topo, traffic, model.SHP{})
	require.NoError(t, err)
	for _, f := range traffic.Frames() {
		require.NoError(t, offsetgraph.BuildFrame(f, res, res.HyperperiodSlots))
	}

	b := backend.NewBacktrackingBackend(0)
	defer b.Close()
	require.NoError(t, strategy.OneShot(b, strategy.DefaultConfig(), constraint.DefaultConfig(), traffic, nil, res.HyperperiodSlots))

	report, err := verify.Run(b, nil, traffic, nil, 0)
	require.NoError(t, err)
	require.True(t, report.Valid())
}

// Same scenario, but driven through a retained *constraint.Model so
// the verifier's telemetry pass can read FrameDist/LinkDist back.
func TestRun_TelemetryReadsAchievedSlack(t *testing.T) {
	topo, traffic := twoFrameSharedLinkTraffic(t)
	res, _, err := timemodel.Normalize(topo, traffic, model.SHP{})
	require.NoError(t, err)
	for _, f := range traffic.Frames() {
		require.NoError(t, offsetgraph.BuildFrame(f, res, res.HyperperiodSlots))
	}

	b := backend.NewBacktrackingBackend(0)
	defer b.Close()
	m := constraint.New(b, constraint.DefaultConfig())

	frames := traffic.Frames()
	for _, f := range frames {
		require.NoError(t, m.EmitFrameVariables(f, res.HyperperiodSlots))
		require.NoError(t, m.EmitPathDependencyConstraints(f))
		require.NoError(t, m.EmitEndToEndConstraints(f))
	}
	ld, err := m.NewLinkDistVar(0, res.HyperperiodSlots)
	require.NoError(t, err)
	require.NoError(t, m.EmitContentionFreeConstraints(frames[0], frames[1], 0, ld))

	require.NoError(t, b.Update())
	status, err := b.Optimize(0, 0)
	require.NoError(t, err)
	require.Contains(t, []backend.Status{backend.Optimal, backend.Feasible}, status)
	for _, f := range frames {
		readbackFrame(t, b, f)
	}

	report, err := verify.Run(b, m, traffic, nil, 0)
	require.NoError(t, err)
	require.True(t, report.Valid())
	require.Equal(t, 2, report.FrameSlack.Samples)
	require.Equal(t, 1, report.LinkSlack.Samples)
}

// spec §8 scenario 4, via the verifier: a frame offset colliding with
// an SHP reservation window must fail the non-overlap check.
func TestRun_DetectsSHPOverlapViolation(t *testing.T) {
	topo := model.NewTopology()
	require.NoError(t, topo.AddNode(model.Node{ID: 0, Role: model.EndSystem}))
	require.NoError(t, topo.AddNode(model.Node{ID: 1, Role: model.EndSystem}))
	require.NoError(t, topo.AddLink(model.Link{ID: 0, Kind: model.Wired, SpeedMBs: 1000}))
	require.NoError(t, topo.Connect(0, 1, 0))

	f, err := model.NewFrame(0, 100, 10, 0, 0, 0, 0, []model.Receiver{{ReceiverID: 1, Path: []int{0}}})
	require.NoError(t, err)
	traffic, err := model.NewTraffic([]*model.Frame{f})
	require.NoError(t, err)

	shp := model.SHP{Period: 10, Duration: 2}
	res, normalizedSHP, err := timemodel.Normalize(topo, traffic, shp)
	require.NoError(t, err)
	require.NoError(t, offsetgraph.BuildFrame(f, res, res.HyperperiodSlots))
	shpFrame, err := offsetgraph.BuildReservation(topo, normalizedSHP, res.HyperperiodSlots)
	require.NoError(t, err)

	idx, _ := f.Offsets.Lookup(0)
	o := f.Offsets.At(idx)
	o.Value[0][0] = 0 // collides with the SHP's [0, 2) window on link 0
	o.MinOffset[0][0], o.MaxOffset[0][0] = 0, 8

	report, err := verify.Run(nil, nil, traffic, shpFrame, 0)
	require.NoError(t, err)
	require.False(t, report.Valid())
	require.ErrorIs(t, report.Err, verify.ErrScheduleInvalid)
}

// A two-hop frame whose downstream offset is placed too close to its
// upstream offset must fail the path-dependency check.
func TestRun_DetectsPathDependencyViolation(t *testing.T) {
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

	firstIdx, _ := f.Offsets.Lookup(0)
	secondIdx, _ := f.Offsets.Lookup(1)
	first, second := f.Offsets.At(firstIdx), f.Offsets.At(secondIdx)
	first.Value[0][0], first.MinOffset[0][0], first.MaxOffset[0][0] = 0, 0, 8
	second.Value[0][0], second.MinOffset[0][0], second.MaxOffset[0][0] = 0, 0, 8 // no gap at all

	report, err := verify.Run(nil, nil, traffic, nil, 0)
	require.NoError(t, err)
	require.False(t, report.Valid())
	require.ErrorIs(t, report.Err, verify.ErrScheduleInvalid)
}

// A solved value sitting outside its own [MinOffset, MaxOffset] window
// must fail the bounds check before any other check runs.
func TestRun_DetectsBoundsViolation(t *testing.T) {
	topo, traffic := twoFrameSharedLinkTraffic(t)
	res, _, err := timemodel.Normalize(topo, traffic, model.SHP{})
	require.NoError(t, err)
	for _, f := range traffic.Frames() {
		require.NoError(t, offsetgraph.BuildFrame(f, res, res.HyperperiodSlots))
	}

	f0, _ := traffic.ByID(0)
	idx, _ := f0.Offsets.Lookup(0)
	o := f0.Offsets.At(idx)
	o.MinOffset[0][0], o.MaxOffset[0][0] = 2, 6
	o.Value[0][0] = 1 // below MinOffset

	report, err := verify.Run(nil, nil, traffic, nil, 0)
	require.NoError(t, err)
	require.False(t, report.Valid())
	require.ErrorIs(t, report.Err, verify.ErrScheduleInvalid)
}
