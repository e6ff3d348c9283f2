// Package export renders a Design and its ValidationResult to external
// formats: an SVG wiring diagram for visual review, and JSON for
// machine consumption by the caller driving the iterative generator
// contract.
package export
