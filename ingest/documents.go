package ingest

// Quantity is a value carrying its own unit, matching spec's "all time
// values carry a unit in {ns, µs, ms, s}" (and the size/speed analogs)
// so a loader can convert to canonical units at the ingest boundary
// rather than baking one unit choice into the wire shape.
type Quantity struct {
	Value float64
	Unit  string
}

// NetworkDocument is the union of spec's Network document and the
// traffic description nested under it: switch/SHP timing, the static
// topology, and the frame set, all as presented by a single ingest
// source.
type NetworkDocument struct {
	GeneralInformation  GeneralInformation
	TopologyInformation TopologyInformation
	TrafficDescription  TrafficDescription
}

type GeneralInformation struct {
	SwitchInformation struct {
		MinimumTime Quantity
	}
	// SelfHealingProtocol is nil when the network has no SHP reservation.
	SelfHealingProtocol *SelfHealingProtocolDoc
}

type SelfHealingProtocolDoc struct {
	Period Quantity
	Time   Quantity
}

type TopologyInformation struct {
	Node []NodeDoc
}

type NodeDoc struct {
	NodeID     int
	Category   string // EndSystem, Switch, AccessPoint
	Connection []ConnectionDoc
}

type ConnectionDoc struct {
	NodeID int // peer node id
	Link   LinkDoc
}

type LinkDoc struct {
	LinkID   int
	Category string // Wired, Wireless
	Speed    Quantity
}

type TrafficDescription struct {
	Frame []FrameDoc
}

type FrameDoc struct {
	FrameID  int
	SenderID int
	Period   Quantity
	// Deadline, Size, StartingTime, EndToEnd are zero-valued Quantities
	// when absent from the source document; resolution to the spec's
	// defaults (Deadline==Period, Size==1000 Byte, ...) happens in
	// model.NewFrame, not here.
	Deadline     Quantity
	Size         Quantity
	StartingTime Quantity
	EndToEnd     Quantity
	Paths        struct {
		Receiver []ReceiverDoc
	}
}

type ReceiverDoc struct {
	ReceiverID int
	// Path is the semicolon-separated link-id sequence, matching
	// spec's wire shape verbatim.
	Path string
}

// ConfigDocument is the scheduler configuration document: algorithm
// choice and its solver knobs.
type ConfigDocument struct {
	Schedule struct {
		Algorithm AlgorithmDoc
	}
}

type AlgorithmDoc struct {
	Name            string // OneShot, Incremental
	MIPGAP          float64
	TimeLimit       float64 // seconds
	FramesIteration int     // Incremental only
}

// PatchDocument is the patch-engine input: the re-opened link, the
// active SHP window, the hyperperiod, the already-fixed transmissions
// on that link, and the new frames to place.
type PatchDocument struct {
	GeneralInformation struct {
		LinkID         int
		ProtocolPeriod Quantity
		ProtocolTime   Quantity
		HyperPeriod    Quantity
	}
	FixedTraffic struct {
		Frame []FixedFrameDoc
	}
	Traffic struct {
		Frame []NewFrameDoc
	}
}

type FixedFrameDoc struct {
	FrameID int
	Offset  struct {
		Instance []FixedInstanceDoc
	}
}

type FixedInstanceDoc struct {
	TransmissionTime int64
	EndingTime       int64
}

type NewFrameDoc struct {
	FrameID int
	Offset  struct {
		TimeSlots int64
		Instance  []NewInstanceDoc
	}
}

type NewInstanceDoc struct {
	MinTransmission int64
	MaxTransmission int64
}

// OptimizeDocument has the same shape as PatchDocument (spec: "same
// shape as patch under an Optimize root") — a defined type, not an
// alias, so a loader can still be told apart by its return type.
type OptimizeDocument PatchDocument

// ScheduleDocument is the one-shot/incremental strategy's output: the
// resolved timeslot and hyperperiod, the SHP window if active, and
// every frame's per-path, per-link, per-instance transmission times.
type ScheduleDocument struct {
	GeneralInformation struct {
		TimeslotSizeNS int64
		HyperPeriod    int64
		NumberLinks    int
		NumberNodes    int
		NumberFrames   int
	}
	// SelfHealingProtocol is nil when the network has no SHP
	// reservation (spec §6's "when active").
	SelfHealingProtocol *ScheduleSHPDoc
	TrafficInformation  struct {
		Frame []ScheduleFrameDoc
	}
}

type ScheduleSHPDoc struct {
	Period int64
	Time   int64
}

type ScheduleFrameDoc struct {
	FrameID int
	Path    []SchedulePathDoc
}

type SchedulePathDoc struct {
	Link []ScheduleLinkDoc
}

type ScheduleLinkDoc struct {
	LinkID   int
	Instance []ScheduleInstanceDoc
}

type ScheduleInstanceDoc struct {
	NumInstance      int
	TransmissionTime int64
	EndingTime       int64
	// Replica is populated only when the link's replica count > 1.
	Replica []ScheduleReplicaDoc `json:",omitempty"`
}

type ScheduleReplicaDoc struct {
	NumReplica       int
	TransmissionTime int64
	EndingTime       int64
}

// PatchedScheduleDocument is the patch/optimize engine output: the
// re-solved link and every new frame's per-instance placement.
type PatchedScheduleDocument struct {
	GeneralInformation struct {
		LinkID int
	}
	TrafficInformation struct {
		Frame []PatchedFrameDoc
	}
}

type PatchedFrameDoc struct {
	FrameID  int
	Instance []PatchedInstanceDoc
}

type PatchedInstanceDoc struct {
	NumInstance      int
	TransmissionTime int64
	EndingTime       int64
}

// TimingDocument reports a single run's wall-clock execution time.
type TimingDocument struct {
	Timing struct {
		ExecutionTimeNS int64
	}
}
