// Package current implements the Current Propagator: for every wire in a
// design, it determines the current the wire must carry by classifying
// the wire and applying exactly one of twelve fixed rules, in priority
// order. Every trace a rule needs bounds itself with a visited set (via
// pkg/topology), so cycles never loop.
package current
