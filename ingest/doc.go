// Package ingest mirrors the external document shapes of a scheduling
// run (network/topology, traffic, scheduler configuration, patch and
// optimize inputs, and the schedule/timing outputs) as plain Go
// structs, independent of any one wire encoding. The reference
// contract is an XML document; this package is deliberately encoding-
// agnostic so the core engine never imports an XML library.
//
// jsonref.go supplies a JSON-backed implementation of every loader and
// writer interface here, used to drive cmd/ and round-trip tests. It
// is explicitly not a substitute for the XML contract.
package ingest
