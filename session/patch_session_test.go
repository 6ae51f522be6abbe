package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/patch"
	"github.com/shpnet/tts-scheduler/session"
)

func TestPatchSession_FullLifecycle(t *testing.T) {
	s := session.NewPatchSession()
	require.Equal(t, session.Empty, s.State())

	fixed := []patch.FixedFrame{
		{FrameID: 9, Instances: []patch.FixedInstance{{Start: 0, Duration: 10}}},
	}
	newFrames := []patch.NewFrameInput{
		{FrameID: 0, Instances: []patch.InstanceBounds{{Min: 0, Max: 50, Duration: 5}}},
	}

	require.NoError(t, s.Load(fixed, model.SHP{}, 100, newFrames))
	require.Equal(t, session.Loaded, s.State())

	require.NoError(t, s.Prepare())
	require.Equal(t, session.Prepared, s.State())

	require.NoError(t, s.Solve())
	require.Equal(t, session.Solved, s.State())

	require.NoError(t, s.Verify())
	require.Equal(t, session.Verified, s.State())

	require.Len(t, s.Results, 1)
	require.Equal(t, int64(10), s.Results[0].Starts[0])
}

func TestPatchSession_PrepareRejectsEmptyInstances(t *testing.T) {
	s := session.NewPatchSession()
	require.NoError(t, s.Load(nil, model.SHP{}, 100, []patch.NewFrameInput{
		{FrameID: 0, Instances: nil},
	}))

	err := s.Prepare()
	require.Error(t, err)
	require.Equal(t, session.Failed, s.State())
}

func TestPatchSession_LoadRejectsNonPositiveHyperperiod(t *testing.T) {
	s := session.NewPatchSession()
	err := s.Load(nil, model.SHP{}, 0, nil)
	require.Error(t, err)
	require.Equal(t, session.Failed, s.State())
}

func TestPatchSession_SolveFailsOnInfeasiblePlacement(t *testing.T) {
	s := session.NewPatchSession()
	fixed := []patch.FixedFrame{
		{FrameID: 9, Instances: []patch.FixedInstance{{Start: 0, Duration: 100}}},
	}
	newFrames := []patch.NewFrameInput{
		{FrameID: 0, Instances: []patch.InstanceBounds{{Min: 0, Max: 10, Duration: 5}}},
	}
	require.NoError(t, s.Load(fixed, model.SHP{}, 100, newFrames))
	require.NoError(t, s.Prepare())

	err := s.Solve()
	require.ErrorIs(t, err, patch.ErrPatchInfeasible)
	require.Equal(t, session.Failed, s.State())
}

func TestPatchSession_InvalidTransitions(t *testing.T) {
	s := session.NewPatchSession()

	err := s.Prepare()
	require.ErrorIs(t, err, session.ErrInvalidTransition)

	err = s.Solve()
	require.ErrorIs(t, err, session.ErrInvalidTransition)

	require.NoError(t, s.Load(nil, model.SHP{}, 100, nil))

	err = s.Load(nil, model.SHP{}, 100, nil)
	require.ErrorIs(t, err, session.ErrInvalidTransition)

	err = s.Verify()
	require.ErrorIs(t, err, session.ErrInvalidTransition)
}
