// Package orchestrator wires the template registry → slot resolver → theme
// selection → renderer pipeline behind a single entry point.
package orchestrator
