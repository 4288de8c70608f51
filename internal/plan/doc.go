// Package plan provides the resolution pipeline that turns a
// validated enum declaration into an EnumPlan consumed by code
// generation.
//
// Resolution pipeline:
//  1. Extract declaration → validated variant records
//  2. Resolve per-variant policy (explicit annotations over inference)
//  3. Synthesize the three behavior tables independently:
//     - display branches (one per variant, exhaustive)
//     - cause branches (one per variant, exhaustive)
//     - conversion entries (one per distinct source type)
//
// Every failure aborts the pass; a partial plan is never returned.
// Resolution is pure: the same declaration always yields the same
// plan.
package plan
