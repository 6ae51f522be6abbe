package timemodel

import (
	"fmt"
	"math"

	"github.com/shpnet/tts-scheduler/model"
)

// Result is the outcome of Normalize: the chosen global timeslot (in
// nanoseconds) and the hyperperiod expressed in that timeslot's units.
type Result struct {
	TimeslotNS       int64
	HyperperiodSlots int64

	// Durations[frameID][linkID] is that frame's transmission duration
	// on that link, in timeslot units, after renormalization.
	Durations map[int]map[int]int64
}

// DurationOf returns the renormalized transmission duration for
// (frameID, linkID), and false if the pair never appears in any
// frame's path.
func (r *Result) DurationOf(frameID, linkID int) (int64, bool) {
	byLink, ok := r.Durations[frameID]
	if !ok {
		return 0, false
	}
	d, ok := byLink[linkID]

	return d, ok
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func lcm(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}

	return a / gcd(a, b) * b
}

// foldGCD folds value into running, treating running==0 as identity
// (spec §4.1: "0 treated as identity").
func foldGCD(running, value int64) int64 {
	if running == 0 {
		return value
	}
	if value == 0 {
		return running
	}

	return gcd(running, value)
}

// rawDurationNS computes ceil(size*8 / speedMBs), floored to >= 1 ns,
// per spec §4.1's Inputs formula (size in bytes, speed in MB/s — both
// already in units where a megabyte-per-second-rated link moves one
// byte per nanosecond per unit of speed, so the bit count divides
// straight through without a further unit-scaling factor).
func rawDurationNS(sizeBytes int64, speedMBs float64) (int64, error) {
	if speedMBs <= 0 {
		return 0, fmt.Errorf("timemodel: non-positive link speed %v: %w", speedMBs, ErrInvalidTiming)
	}
	ns := math.Ceil(float64(sizeBytes) * 8 / speedMBs)
	if ns < 1 {
		ns = 1
	}

	return int64(ns), nil
}

// collectFrameLinks returns the distinct set of link ids each normal
// frame traverses, across all of its receivers' paths.
func collectFrameLinks(traffic *model.Traffic) map[int]map[int]struct{} {
	out := make(map[int]map[int]struct{})
	for _, f := range traffic.Frames() {
		links := make(map[int]struct{})
		for _, r := range f.Receivers {
			for _, linkID := range r.Path {
				links[linkID] = struct{}{}
			}
		}
		out[f.ID] = links
	}

	return out
}

// Normalize computes the global timeslot and hyperperiod (spec §4.1)
// and renormalizes, in place, every frame's Period/Deadline/Start/
// EndToEnd fields from nanoseconds to timeslot units. It returns the
// Result (carrying the renormalized per-(frame,link) durations) and
// the renormalized SHP. Frames and topology are read but — aside from
// the four fields above — not mutated.
func Normalize(topo *model.Topology, traffic *model.Traffic, shp model.SHP) (*Result, model.SHP, error) {
	frameLinks := collectFrameLinks(traffic)

	rawNS := make(map[int]map[int]int64, len(frameLinks))
	var timeslot int64
	if shp.Active() {
		timeslot = shp.Duration
	}

	for _, f := range traffic.Frames() {
		byLink := make(map[int]int64, len(frameLinks[f.ID]))
		for linkID := range frameLinks[f.ID] {
			link, ok := topo.Link(linkID)
			if !ok {
				return nil, model.SHP{}, fmt.Errorf("timemodel: frame %d references unknown link %d: %w", f.ID, linkID, model.ErrUnknownLink)
			}
			ns, err := rawDurationNS(f.Size, link.SpeedMBs)
			if err != nil {
				return nil, model.SHP{}, fmt.Errorf("timemodel: frame %d link %d: %w", f.ID, linkID, err)
			}
			byLink[linkID] = ns
			timeslot = foldGCD(timeslot, ns)
		}
		rawNS[f.ID] = byLink
	}

	if timeslot == 0 {
		return nil, model.SHP{}, fmt.Errorf("timemodel: folded timeslot is zero (no traffic and inactive SHP): %w", ErrInvalidTiming)
	}

	var hyperperiodNS int64
	for _, f := range traffic.Frames() {
		if hyperperiodNS == 0 {
			hyperperiodNS = f.Period
		} else {
			hyperperiodNS = lcm(hyperperiodNS, f.Period)
		}
	}
	if hyperperiodNS == 0 {
		return nil, model.SHP{}, fmt.Errorf("timemodel: no frames to derive a hyperperiod from: %w", ErrInvalidTiming)
	}

	durations := make(map[int]map[int]int64, len(rawNS))
	for frameID, byLink := range rawNS {
		norm := make(map[int]int64, len(byLink))
		for linkID, ns := range byLink {
			norm[linkID] = ns / timeslot
		}
		durations[frameID] = norm
	}

	for _, f := range traffic.Frames() {
		f.Period /= timeslot
		f.Deadline /= timeslot
		f.Start /= timeslot
		f.EndToEnd /= timeslot
	}

	normalizedSHP := shp
	if shp.Active() {
		normalizedSHP.Period /= timeslot
		normalizedSHP.Duration /= timeslot
	}

	return &Result{
		TimeslotNS:       timeslot,
		HyperperiodSlots: hyperperiodNS / timeslot,
		Durations:        durations,
	}, normalizedSHP, nil
}
