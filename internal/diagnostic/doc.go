// Package diagnostic provides structured warnings, errors, and
// informational notes emitted while resolving enum declarations.
//
// Key capabilities:
//   - Annotation/eligibility errors with enum and variant context
//   - Redundant-annotation and suppressed-inference warnings
//   - Explanation of resolved policy decisions
package diagnostic
