package plan

import "errors"

// ErrIncompleteCoverage reports that a synthesizer produced fewer
// branches than the enum has variants. Given a valid extraction this
// is unreachable; the check is a fatal internal guard.
var ErrIncompleteCoverage = errors.New("incomplete coverage")

// ErrConflictingConversion reports that two variants would generate a
// conversion from the identical source type, leaving the target
// variant ambiguous.
var ErrConflictingConversion = errors.New("conflicting conversion")
