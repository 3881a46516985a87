// Package discovery runs scan units concurrently and assembles their results
// into a models.Catalog.
//
// # Flow
//
//	Orchestrator.Run
//	  ├── EnumerateUnits (validation, fails the call before any work)
//	  ├── RunnerFactory  (one Runner per provider)
//	  ├── scheduler      (min(MaxConcurrency, units) workers)
//	  │     └── Execute  (adapter.ListRecords → normalize each record)
//	  └── fan-in         (one slot per unit, filled by the Run loop only)
//
// A unit either contributes resources or one unit error. Provider failures
// and cancellation are reported inside the catalog; Run only returns an
// error for an invalid request.
//
// Records failing normalization are dropped and counted; they never fail
// their unit.
//
// # Cancellation
//
// When the parent context is cancelled or the request timeout expires, the
// results already collected are kept and every other unit is recorded as
// cancelled. Run does not wait for adapters that ignore their context.
package discovery
