package timemodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/timemodel"
)

func twoLinkChainTopology(t *testing.T) *model.Topology {
	t.Helper()
	topo := model.NewTopology()
	require.NoError(t, topo.AddNode(model.Node{ID: 0, Role: model.EndSystem}))
	require.NoError(t, topo.AddNode(model.Node{ID: 1, Role: model.Switch}))
	require.NoError(t, topo.AddNode(model.Node{ID: 2, Role: model.EndSystem}))
	require.NoError(t, topo.AddLink(model.Link{ID: 0, Kind: model.Wired, SpeedMBs: 1000}))
	require.NoError(t, topo.AddLink(model.Link{ID: 1, Kind: model.Wired, SpeedMBs: 1000}))
	require.NoError(t, topo.Connect(0, 1, 0))
	require.NoError(t, topo.Connect(1, 2, 1))

	return topo
}

// Scenario 1 (spec §8): two-link chain, one frame, no SHP.
func TestNormalize_TwoLinkChain(t *testing.T) {
	topo := twoLinkChainTopology(t)
	f0, err := model.NewFrame(0, 125, 1000, 0, 0, 0, 0, []model.Receiver{{ReceiverID: 2, Path: []int{0, 1}}})
	require.NoError(t, err)
	traffic, err := model.NewTraffic([]*model.Frame{f0})
	require.NoError(t, err)

	res, shp, err := timemodel.Normalize(topo, traffic, model.SHP{})
	require.NoError(t, err)
	assert.False(t, shp.Active())
	assert.Equal(t, int64(1), res.TimeslotNS)
	assert.Equal(t, int64(1000), res.HyperperiodSlots)

	d0, ok := res.DurationOf(0, 0)
	require.True(t, ok)
	assert.Equal(t, int64(1), d0)
	d1, ok := res.DurationOf(0, 1)
	require.True(t, ok)
	assert.Equal(t, int64(1), d1)

	assert.Equal(t, int64(1000), f0.Period)
	assert.Equal(t, int64(1000), f0.Deadline)
}

// Scenario 3 (spec §8): hyperperiod is the LCM of periods.
func TestNormalize_HyperperiodLCM(t *testing.T) {
	topo := twoLinkChainTopology(t)
	f0, err := model.NewFrame(0, 125, 1000, 0, 0, 0, 0, []model.Receiver{{ReceiverID: 2, Path: []int{0}}})
	require.NoError(t, err)
	f1, err := model.NewFrame(1, 125, 1500, 0, 0, 0, 0, []model.Receiver{{ReceiverID: 2, Path: []int{0}}})
	require.NoError(t, err)
	traffic, err := model.NewTraffic([]*model.Frame{f0, f1})
	require.NoError(t, err)

	res, _, err := timemodel.Normalize(topo, traffic, model.SHP{})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), res.HyperperiodSlots)
	assert.Equal(t, 3, f0.NumInstances(res.HyperperiodSlots))
	assert.Equal(t, 2, f1.NumInstances(res.HyperperiodSlots))
}

// spec §4.1: a final timeslot of zero is InvalidTiming.
func TestNormalize_ZeroTimeslotFails(t *testing.T) {
	topo := model.NewTopology()
	traffic, err := model.NewTraffic(nil)
	require.NoError(t, err)

	_, _, err = timemodel.Normalize(topo, traffic, model.SHP{})
	require.Error(t, err)
}

// spec §8: Time Model idempotence — running the normalizer twice on
// topologically-equivalent fresh frames yields identical output.
func TestNormalize_Idempotent(t *testing.T) {
	topo := twoLinkChainTopology(t)
	build := func() *model.Traffic {
		f0, err := model.NewFrame(0, 125, 1000, 0, 0, 0, 0, []model.Receiver{{ReceiverID: 2, Path: []int{0, 1}}})
		require.NoError(t, err)
		traffic, err := model.NewTraffic([]*model.Frame{f0})
		require.NoError(t, err)

		return traffic
	}

	res1, shp1, err := timemodel.Normalize(topo, build(), model.SHP{Period: 500, Duration: 50})
	require.NoError(t, err)
	res2, shp2, err := timemodel.Normalize(topo, build(), model.SHP{Period: 500, Duration: 50})
	require.NoError(t, err)

	assert.Equal(t, res1.TimeslotNS, res2.TimeslotNS)
	assert.Equal(t, res1.HyperperiodSlots, res2.HyperperiodSlots)
	assert.Equal(t, shp1, shp2)
}
