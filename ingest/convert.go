package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shpnet/tts-scheduler/model"
	"github.com/shpnet/tts-scheduler/patch"
	"github.com/shpnet/tts-scheduler/timemodel"
)

// DurationNS converts q to nanoseconds. Unit must be one of
// ns, µs, ms, s.
func DurationNS(q Quantity) (int64, error) {
	var factor float64
	switch q.Unit {
	case "ns", "":
		factor = 1
	case "µs", "us":
		factor = 1e3
	case "ms":
		factor = 1e6
	case "s":
		factor = 1e9
	default:
		return 0, fmt.Errorf("ingest: unknown time unit %q: %w", q.Unit, model.ErrInvalidInput)
	}

	return int64(q.Value * factor), nil
}

// SizeBytes converts q to bytes. Unit must be one of Byte, KByte, MByte.
func SizeBytes(q Quantity) (int64, error) {
	var factor float64
	switch q.Unit {
	case "Byte", "":
		factor = 1
	case "KByte":
		factor = 1e3
	case "MByte":
		factor = 1e6
	default:
		return 0, fmt.Errorf("ingest: unknown size unit %q: %w", q.Unit, model.ErrInvalidInput)
	}

	return int64(q.Value * factor), nil
}

// SpeedMBs converts q to megabytes per second. Unit must be one of
// KBs, MBs, GBs.
func SpeedMBs(q Quantity) (float64, error) {
	switch q.Unit {
	case "KBs":
		return q.Value / 1e3, nil
	case "MBs", "":
		return q.Value, nil
	case "GBs":
		return q.Value * 1e3, nil
	default:
		return 0, fmt.Errorf("ingest: unknown speed unit %q: %w", q.Unit, model.ErrInvalidInput)
	}
}

func nodeRole(category string) (model.NodeRole, error) {
	switch category {
	case "EndSystem":
		return model.EndSystem, nil
	case "Switch":
		return model.Switch, nil
	case "AccessPoint":
		return model.AccessPoint, nil
	default:
		return 0, fmt.Errorf("ingest: unknown node category %q: %w", category, model.ErrInvalidInput)
	}
}

func linkKind(category string) (model.LinkKind, error) {
	switch category {
	case "Wired":
		return model.Wired, nil
	case "Wireless":
		return model.Wireless, nil
	default:
		return 0, fmt.Errorf("ingest: unknown link category %q: %w", category, model.ErrInvalidInput)
	}
}

func parsePath(path string) ([]int, error) {
	if path == "" {
		return nil, nil
	}
	parts := strings.Split(path, ";")
	links := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("ingest: path segment %q: %w", p, model.ErrInvalidInput)
		}
		links[i] = v
	}

	return links, nil
}

// ToTopology builds a model.Topology from doc's topology information.
// Every node's own Connection list becomes its outgoing connections —
// the document already presents the topology from each node's
// perspective, so no separate reverse-edge pass is required.
func ToTopology(doc *NetworkDocument) (*model.Topology, error) {
	topo := model.NewTopology()

	seenLinks := make(map[int]bool)
	for _, n := range doc.TopologyInformation.Node {
		role, err := nodeRole(n.Category)
		if err != nil {
			return nil, err
		}
		if err := topo.AddNode(model.Node{ID: n.NodeID, Role: role}); err != nil {
			return nil, fmt.Errorf("ingest: node %d: %w", n.NodeID, err)
		}
		for _, c := range n.Connection {
			if !seenLinks[c.Link.LinkID] {
				kind, err := linkKind(c.Link.Category)
				if err != nil {
					return nil, err
				}
				speed, err := SpeedMBs(c.Link.Speed)
				if err != nil {
					return nil, err
				}
				if err := topo.AddLink(model.Link{ID: c.Link.LinkID, Kind: kind, SpeedMBs: speed}); err != nil {
					return nil, fmt.Errorf("ingest: link %d: %w", c.Link.LinkID, err)
				}
				seenLinks[c.Link.LinkID] = true
			}
		}
	}
	for _, n := range doc.TopologyInformation.Node {
		for _, c := range n.Connection {
			if err := topo.Connect(n.NodeID, c.NodeID, c.Link.LinkID); err != nil {
				return nil, fmt.Errorf("ingest: connect %d -> %d over link %d: %w", n.NodeID, c.NodeID, c.Link.LinkID, err)
			}
		}
	}

	return topo, nil
}

// ToTraffic builds a model.Traffic from doc's frame set, in document
// order (scheduling-priority order per model.NewTraffic).
func ToTraffic(doc *NetworkDocument) (*model.Traffic, error) {
	frames := make([]*model.Frame, 0, len(doc.TrafficDescription.Frame))
	for _, fd := range doc.TrafficDescription.Frame {
		period, err := DurationNS(fd.Period)
		if err != nil {
			return nil, fmt.Errorf("ingest: frame %d period: %w", fd.FrameID, err)
		}
		deadline, err := DurationNS(fd.Deadline)
		if err != nil {
			return nil, fmt.Errorf("ingest: frame %d deadline: %w", fd.FrameID, err)
		}
		size, err := SizeBytes(fd.Size)
		if err != nil {
			return nil, fmt.Errorf("ingest: frame %d size: %w", fd.FrameID, err)
		}
		start, err := DurationNS(fd.StartingTime)
		if err != nil {
			return nil, fmt.Errorf("ingest: frame %d starting time: %w", fd.FrameID, err)
		}
		endToEnd, err := DurationNS(fd.EndToEnd)
		if err != nil {
			return nil, fmt.Errorf("ingest: frame %d end-to-end: %w", fd.FrameID, err)
		}

		receivers := make([]model.Receiver, len(fd.Paths.Receiver))
		for i, rd := range fd.Paths.Receiver {
			path, err := parsePath(rd.Path)
			if err != nil {
				return nil, fmt.Errorf("ingest: frame %d receiver %d: %w", fd.FrameID, rd.ReceiverID, err)
			}
			receivers[i] = model.Receiver{ReceiverID: rd.ReceiverID, Path: path}
		}

		f, err := model.NewFrame(fd.FrameID, size, period, deadline, start, endToEnd, fd.SenderID, receivers)
		if err != nil {
			return nil, fmt.Errorf("ingest: frame %d: %w", fd.FrameID, err)
		}
		frames = append(frames, f)
	}

	return model.NewTraffic(frames)
}

// ToSHP builds the SHP reservation from doc's GeneralInformation. A nil
// SelfHealingProtocol (absent from the document) resolves to the
// inactive model.SHP{}.
func ToSHP(doc *NetworkDocument) (model.SHP, error) {
	shpDoc := doc.GeneralInformation.SelfHealingProtocol
	if shpDoc == nil {
		return model.SHP{}, nil
	}
	period, err := DurationNS(shpDoc.Period)
	if err != nil {
		return model.SHP{}, fmt.Errorf("ingest: SHP period: %w", err)
	}
	duration, err := DurationNS(shpDoc.Time)
	if err != nil {
		return model.SHP{}, fmt.Errorf("ingest: SHP time: %w", err)
	}

	return model.SHP{Period: period, Duration: duration}, nil
}

// SwitchMinTime returns the network's minimum per-hop switching time,
// in nanoseconds.
func SwitchMinTime(doc *NetworkDocument) (int64, error) {
	return DurationNS(doc.GeneralInformation.SwitchInformation.MinimumTime)
}

// ToPatchInput converts a PatchDocument into patch.Run's arguments.
func ToPatchInput(doc *PatchDocument) (linkID int, fixed []patch.FixedFrame, shp model.SHP, hyperperiod int64, newFrames []patch.NewFrameInput, err error) {
	linkID = doc.GeneralInformation.LinkID

	period, err := DurationNS(doc.GeneralInformation.ProtocolPeriod)
	if err != nil {
		return 0, nil, model.SHP{}, 0, nil, fmt.Errorf("ingest: protocol period: %w", err)
	}
	duration, err := DurationNS(doc.GeneralInformation.ProtocolTime)
	if err != nil {
		return 0, nil, model.SHP{}, 0, nil, fmt.Errorf("ingest: protocol time: %w", err)
	}
	shp = model.SHP{Period: period, Duration: duration}

	hyperperiod, err = DurationNS(doc.GeneralInformation.HyperPeriod)
	if err != nil {
		return 0, nil, model.SHP{}, 0, nil, fmt.Errorf("ingest: hyperperiod: %w", err)
	}

	fixed = make([]patch.FixedFrame, len(doc.FixedTraffic.Frame))
	for i, ff := range doc.FixedTraffic.Frame {
		instances := make([]patch.FixedInstance, len(ff.Offset.Instance))
		for j, inst := range ff.Offset.Instance {
			instances[j] = patch.FixedInstance{
				Start:    inst.TransmissionTime,
				Duration: inst.EndingTime - inst.TransmissionTime + 1,
			}
		}
		fixed[i] = patch.FixedFrame{FrameID: ff.FrameID, Instances: instances}
	}

	newFrames = make([]patch.NewFrameInput, len(doc.Traffic.Frame))
	for i, nf := range doc.Traffic.Frame {
		instances := make([]patch.InstanceBounds, len(nf.Offset.Instance))
		for j, inst := range nf.Offset.Instance {
			instances[j] = patch.InstanceBounds{
				Min:      inst.MinTransmission,
				Max:      inst.MaxTransmission,
				Duration: nf.Offset.TimeSlots,
			}
		}
		newFrames[i] = patch.NewFrameInput{FrameID: nf.FrameID, Instances: instances}
	}

	return linkID, fixed, shp, hyperperiod, newFrames, nil
}

// ToOptimizeInput converts an OptimizeDocument the same way
// ToPatchInput does, since the two document shapes are identical.
func ToOptimizeInput(doc *OptimizeDocument) (linkID int, fixed []patch.FixedFrame, shp model.SHP, hyperperiod int64, newFrames []patch.NewFrameInput, err error) {
	return ToPatchInput((*PatchDocument)(doc))
}

// BuildScheduleDocument renders a solved Traffic into the output
// schedule shape, using res for the timeslot size and hyperperiod and
// shpFrame (nil if inactive) for the reservation window.
func BuildScheduleDocument(topo *model.Topology, traffic *model.Traffic, res *timemodel.Result, shpFrame *model.Frame) *ScheduleDocument {
	doc := &ScheduleDocument{}
	doc.GeneralInformation.TimeslotSizeNS = res.TimeslotNS
	doc.GeneralInformation.HyperPeriod = res.HyperperiodSlots
	doc.GeneralInformation.NumberLinks = topo.NumLinks()
	doc.GeneralInformation.NumberNodes = topo.NumNodes()
	doc.GeneralInformation.NumberFrames = len(traffic.Frames())

	if shpFrame != nil {
		if offsets := shpFrame.Offsets.Iterate(); len(offsets) > 0 {
			doc.SelfHealingProtocol = &ScheduleSHPDoc{Period: shpFrame.Period, Time: offsets[0].Time}
		}
	}

	doc.TrafficInformation.Frame = make([]ScheduleFrameDoc, 0, len(traffic.Frames()))
	for _, f := range traffic.Frames() {
		frameDoc := ScheduleFrameDoc{FrameID: f.ID}
		for _, r := range f.Receivers {
			pathDoc := SchedulePathDoc{}
			for _, linkID := range r.Path {
				idx, ok := f.Offsets.Lookup(linkID)
				if !ok {
					continue
				}
				o := f.Offsets.At(idx)
				linkDoc := ScheduleLinkDoc{LinkID: linkID}
				for i := 0; i < o.NumInstances; i++ {
					inst := ScheduleInstanceDoc{
						NumInstance:      i,
						TransmissionTime: o.Value[i][0],
						EndingTime:       o.Value[i][0] + o.Time - 1,
					}
					if o.NumReplicas > 1 {
						inst.Replica = make([]ScheduleReplicaDoc, o.NumReplicas-1)
						for r := 1; r < o.NumReplicas; r++ {
							inst.Replica[r-1] = ScheduleReplicaDoc{
								NumReplica:       r,
								TransmissionTime: o.Value[i][r],
								EndingTime:       o.Value[i][r] + o.Time - 1,
							}
						}
					}
					linkDoc.Instance = append(linkDoc.Instance, inst)
				}
				pathDoc.Link = append(pathDoc.Link, linkDoc)
			}
			frameDoc.Path = append(frameDoc.Path, pathDoc)
		}
		doc.TrafficInformation.Frame = append(doc.TrafficInformation.Frame, frameDoc)
	}

	return doc
}

// BuildPatchedScheduleDocument renders patch.Run/optimize.Run results
// into the shared patched/optimized output shape. inputs and results
// must be the same slice passed to and returned from Run, in the same
// order, so each result's per-instance duration can be recovered from
// its originating NewFrameInput.
func BuildPatchedScheduleDocument(linkID int, inputs []patch.NewFrameInput, starts [][]int64) *PatchedScheduleDocument {
	doc := &PatchedScheduleDocument{}
	doc.GeneralInformation.LinkID = linkID
	doc.TrafficInformation.Frame = make([]PatchedFrameDoc, len(inputs))
	for i, nf := range inputs {
		instances := make([]PatchedInstanceDoc, len(starts[i]))
		for j, s := range starts[i] {
			dur := nf.Instances[j].Duration
			instances[j] = PatchedInstanceDoc{NumInstance: j, TransmissionTime: s, EndingTime: s + dur - 1}
		}
		doc.TrafficInformation.Frame[i] = PatchedFrameDoc{FrameID: nf.FrameID, Instance: instances}
	}

	return doc
}

// BuildTimingDocument wraps an execution time, in nanoseconds.
func BuildTimingDocument(executionTimeNS int64) *TimingDocument {
	doc := &TimingDocument{}
	doc.Timing.ExecutionTimeNS = executionTimeNS

	return doc
}
