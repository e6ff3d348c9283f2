// Package rules is the Rule Engine: it runs the electrical,
// wire-sizing, terminal, layout, completeness, and power-capacity rule
// groups over a design and its derived topology/current results, emitting
// typed Issues and a scalar quality score.
//
// Every rule function is pure and takes exactly what it needs (the design,
// the topology index, the current results, the engine config) rather than
// a monolithic context object.
package rules
