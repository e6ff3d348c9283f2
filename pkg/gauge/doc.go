// Package gauge provides the static conductor-size lookup tables shared by
// every sizing and rule-checking computation in the engine: resistance per
// unit length, ampacity at three insulation temperatures, and the ordering
// of standard AWG sizes.
//
// The table is authoritative and process-wide: two implementations that
// embed the same values must produce byte-identical sizing recommendations.
// Per-size values are held in a map keyed by Size; the Ordered slice
// carries the smallest-to-largest ordering, so sizing walks it without a
// separate sort step.
package gauge
