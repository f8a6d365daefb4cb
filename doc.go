// Package algen is a generic genetic algorithm runner. It provides the
// capability contracts and models needed to construct a genetic algorithm,
// plus an engine that drives the full evolutionary cycle once those
// contracts have been filled out:
//
//   - Create an initial population from caller-supplied seed data
//   - Score every candidate in parallel
//   - Carry the best candidates forward unchanged (elitism)
//   - Fill the remaining slots through the caller's reproduction operator
//   - Begin the cycle again
//
// This repeats until the generation cap is reached, the best fitness stops
// improving, or the run is cancelled.
//
// Key Components:
//
//   - Core: Parameters, the Algorithm and Analyzer capability interfaces,
//     and the report/result models exchanged with the caller.
//
//   - Engine: the generation loop itself: population lifecycle, parallel
//     scoring with per-candidate failure isolation, elitism and
//     reproduction, convergence detection, and cancellation. Also exports
//     Tournament and RouletteWheel selection helpers for use inside
//     caller-defined Algorithm implementations.
//
//   - Telemetry: per-generation records (fitness statistics, phase timings)
//     delivered to pluggable sinks, including a SQLite-backed history sink
//     for post-run inspection.
//
// The engine is agnostic to the problem domain: a candidate solution is an
// opaque type parameter, and everything problem-specific (representation,
// variation, scoring) lives behind the two capability interfaces.
package algen
