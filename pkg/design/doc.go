// Package design defines the Design data model: components, wires,
// terminals, and the closed component-type/terminal-class tag sets
// they draw from. A Design is an immutable input to an analysis pass; this
// package owns no derived state and performs no I/O beyond optional
// YAML/JSON loading helpers for callers.
package design
