// Package engine composes the Topology Resolver, Current Propagator, and
// Rule Engine into one pure, synchronous analysis pass: Validate builds a
// topology index, assigns currents, sizes every wire, and runs every rule
// group into one ValidationResult. It is the top-level call the iterative
// generator contract is built on.
package engine
