package strategy

import (
	"math"

	"github.com/shpnet/tts-scheduler/backend"
	"github.com/shpnet/tts-scheduler/constraint"
	"github.com/shpnet/tts-scheduler/model"
)

// frameLinks returns the distinct link ids f has an Offset for.
func frameLinks(f *model.Frame) []int {
	offsets := f.Offsets.Iterate()
	links := make([]int, len(offsets))
	for i, o := range offsets {
		links[i] = o.LinkID
	}

	return links
}

// sharedLinks returns the link ids both frames have offsets for.
func sharedLinks(a, b *model.Frame) []int {
	var shared []int
	for _, l := range frameLinks(a) {
		if _, ok := b.Offsets.Lookup(l); ok {
			shared = append(shared, l)
		}
	}

	return shared
}

// readback copies every solved variable's value from b into f's
// Offset cells, rounding to the nearest integer timeslot.
func readback(b backend.Backend, f *model.Frame) error {
	for _, o := range f.Offsets.Iterate() {
		for i := range o.Value {
			for r := range o.Value[i] {
				v, err := b.GetValue(o.Var[i][r])
				if err != nil {
					return err
				}
				o.Value[i][r] = int64(math.Round(v))
			}
		}
	}

	return nil
}

// pin collapses every cell of f's offsets to its solved value, via
// constraint.Model's bound-setting, and zeros f's FrameDist objective
// coefficient — spec §4.4 step 4.
func pin(m *constraint.Model, f *model.Frame) error {
	for _, o := range f.Offsets.Iterate() {
		for i := range o.Value {
			for r := range o.Value[i] {
				if err := m.PinOffset(o, i, r, o.Value[i][r]); err != nil {
					return err
				}
			}
		}
	}

	return m.ZeroFrameDistObjective(f.ID)
}
