// Package datum implements the fact registry that every analysis in buildlens
// is built on.
//
// A fact (Datum) is an immutable value identified by its concrete Go type.
// Providers declare Bindings that pair a fact type with the function that
// computes it. The Registry maps each fact type to exactly one binding and
// resolves requests lazily: the first Get for a type runs its binding, which
// may itself Get other facts, so the dependency graph between providers is
// discovered on demand rather than declared up front.
//
// LIFECYCLE:
//
// Setup (single writer):
// Providers are constructed and registered one after another from a single
// goroutine. Register is not safe for concurrent use.
//
// Consumption (many readers):
// After setup, any number of goroutines may call Get concurrently. Bindings
// are expected to wrap their compute functions with Memoize, so concurrent
// first requests for the same fact run the computation once. Requests for
// different facts proceed independently.
//
// Fact computation is synchronous and runs on the caller's goroutine. There is
// no scheduler, cancellation or cycle detection: a provider whose dependency
// chain leads back to its own fact type never completes. Keeping the provider
// graph acyclic is the caller's responsibility.
//
// FAILURES:
//
//   - MISSING_INPUT: no binding exists for the requested type.
//   - DUPLICATE_PROVIDER: a second provider tried to bind an already bound type.
//   - NULL_DATUM: a binding returned nil without an error.
//
// Requesting a provider's registry before registration, registering a provider
// twice, and a binding producing a value of the wrong type are programming
// errors and panic.
package datum
