// Package topology builds the per-pass indices the rest of the engine
// traces over: a component index, an adjacency list of incident wires,
// DC/AC wire classification, and each inverter's AC-side load demand.
//
// Every trace in this package uses a compact visited set: copy-cheap,
// trivial to reset, and safe against cycles. A trace that detects a
// cycle returns a defined zero rather than looping or erroring.
package topology
