package verify

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/constraint"
	"github.com/shpnet/tts-scheduler/model"
)

// SlackStats summarizes the FrameDist/LinkDist values actually
// achieved by a solved schedule — reported telemetry, never a pass/
// fail input.
type SlackStats struct {
	Mean    float64
	StdDev  float64
	P50     float64
	P95     float64
	Samples int
}

// Report is the verifier's full result: the pass/fail verdict (Err
// nil on success, wrapping ErrScheduleInvalid on failure) plus slack
// telemetry computed only when the schedule is valid.
type Report struct {
	Err        error
	FrameSlack SlackStats
	LinkSlack  SlackStats
}

// Valid reports whether the schedule passed every check.
func (r *Report) Valid() bool { return r.Err == nil }

// Run executes every §4.7 check against traffic (plus the optional
// SHP reservation frame), then — only if every check passed — reads
// back every FrameDist/LinkDist value m has emitted and summarizes
// them via SlackStats. m and b must be the same Model/Backend the
// traffic was solved against; a nil m skips telemetry entirely.
func Run(b backend.Backend, m *constraint.Model, traffic *model.Traffic, shpFrame *model.Frame, switchMinTime int64) (*Report, error) {
	if err := verifyAll(traffic, shpFrame, switchMinTime); err != nil {
		return &Report{Err: err}, nil
	}

	report := &Report{}
	if m == nil {
		return report, nil
	}

	var frameValues, linkValues []float64
	for _, f := range traffic.Frames() {
		fd, ok := m.FrameDistVar(f.ID)
		if !ok {
			continue
		}
		v, err := b.GetValue(fd)
		if err != nil {
			return nil, fmt.Errorf("verify: frame %d FrameDist readback: %w", f.ID, err)
		}
		frameValues = append(frameValues, v)
	}
	seenLinks := make(map[int]bool)
	for _, f := range traffic.Frames() {
		for _, o := range f.Offsets.Iterate() {
			ld, ok := m.LinkDistVar(o.LinkID)
			if !ok || seenLinks[o.LinkID] {
				continue
			}
			seenLinks[o.LinkID] = true
			v, err := b.GetValue(ld)
			if err != nil {
				return nil, fmt.Errorf("verify: link %d LinkDist readback: %w", o.LinkID, err)
			}
			linkValues = append(linkValues, v)
		}
	}

	frameStats, err := summarize(frameValues)
	if err != nil {
		return nil, fmt.Errorf("verify: frame slack stats: %w", err)
	}
	linkStats, err := summarize(linkValues)
	if err != nil {
		return nil, fmt.Errorf("verify: link slack stats: %w", err)
	}
	report.FrameSlack = frameStats
	report.LinkSlack = linkStats

	return report, nil
}

func verifyAll(traffic *model.Traffic, shpFrame *model.Frame, switchMinTime int64) error {
	for _, f := range traffic.Frames() {
		if err := checkBounds(f); err != nil {
			return err
		}
		if err := checkPathDependency(f, switchMinTime); err != nil {
			return err
		}
		if err := checkEndToEnd(f); err != nil {
			return err
		}
	}

	return checkNonOverlap(traffic, shpFrame)
}

func summarize(values []float64) (SlackStats, error) {
	if len(values) == 0 {
		return SlackStats{}, nil
	}
	data := stats.Float64Data(values)

	mean, err := stats.Mean(data)
	if err != nil {
		return SlackStats{}, err
	}
	stddev, err := stats.StandardDeviation(data)
	if err != nil {
		return SlackStats{}, err
	}
	p50, err := stats.Percentile(data, 50)
	if err != nil {
		return SlackStats{}, err
	}
	p95, err := stats.Percentile(data, 95)
	if err != nil {
		return SlackStats{}, err
	}

	return SlackStats{Mean: mean, StdDev: stddev, P50: p50, P95: p95, Samples: len(values)}, nil
}
