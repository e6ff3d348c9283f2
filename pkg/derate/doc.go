// Package derate implements the pure temperature/bundling derating and
// conductor-sizing functions the engine builds on. Every function here
// is a side-effect-free computation over its arguments; none retain
// state between calls.
package derate
