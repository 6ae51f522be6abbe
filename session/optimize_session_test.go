package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/constraint"
	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/optimize"
	"github.com/shpnet/tts-scheduler/patch"
	"github.com/shpnet/tts-scheduler/session"
)

func TestOptimizeSession_FullLifecycle(t *testing.T) {
	b := backend.NewBacktrackingBackend(2000000)
	defer b.Close()

	fixed := []patch.FixedFrame{
		{FrameID: 10, Instances: []patch.FixedInstance{{Start: 0, Duration: 2}}},
	}
	newFrames := []patch.NewFrameInput{
		{FrameID: 1, Instances: []patch.InstanceBounds{{Min: 0, Max: 5, Duration: 2}}},
	}

	s := session.NewOptimizeSession(b, constraint.DefaultConfig(), optimize.DefaultConfig())
	require.Equal(t, session.Empty, s.State())

	require.NoError(t, s.Load(0, model.SHP{}, 10, fixed, newFrames))
	require.Equal(t, session.Loaded, s.State())

	require.NoError(t, s.Prepare())
	require.Equal(t, session.Prepared, s.State())

	require.NoError(t, s.Solve())
	require.Equal(t, session.Solved, s.State())

	require.NoError(t, s.Verify())
	require.Equal(t, session.Verified, s.State())

	require.Len(t, s.Results, 1)
	start := s.Results[0].Starts[0]
	require.GreaterOrEqual(t, start, int64(2))
	require.LessOrEqual(t, start, int64(5))
	require.Greater(t, s.VarCounter(), 0)
	require.Greater(t, s.ConstraintCounter(), 0)
}

func TestOptimizeSession_PrepareRejectsEmptyInstances(t *testing.T) {
	b := backend.NewBacktrackingBackend(2000000)
	defer b.Close()

	s := session.NewOptimizeSession(b, constraint.DefaultConfig(), optimize.DefaultConfig())
	require.NoError(t, s.Load(0, model.SHP{}, 10, nil, []patch.NewFrameInput{
		{FrameID: 1, Instances: nil},
	}))

	err := s.Prepare()
	require.Error(t, err)
	require.Equal(t, session.Failed, s.State())
}

func TestOptimizeSession_LoadRejectsNonPositiveHyperperiod(t *testing.T) {
	b := backend.NewBacktrackingBackend(2000000)
	defer b.Close()

	s := session.NewOptimizeSession(b, constraint.DefaultConfig(), optimize.DefaultConfig())
	err := s.Load(0, model.SHP{}, 0, nil, nil)
	require.Error(t, err)
	require.Equal(t, session.Failed, s.State())
}

func TestOptimizeSession_InvalidTransitions(t *testing.T) {
	b := backend.NewBacktrackingBackend(2000000)
	defer b.Close()

	s := session.NewOptimizeSession(b, constraint.DefaultConfig(), optimize.DefaultConfig())

	err := s.Prepare()
	require.ErrorIs(t, err, session.ErrInvalidTransition)

	err = s.Solve()
	require.ErrorIs(t, err, session.ErrInvalidTransition)

	require.NoError(t, s.Load(0, model.SHP{}, 10, nil, nil))

	err = s.Load(0, model.SHP{}, 10, nil, nil)
	require.ErrorIs(t, err, session.ErrInvalidTransition)

	err = s.Verify()
	require.ErrorIs(t, err, session.ErrInvalidTransition)
}
