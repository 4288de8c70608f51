package common

// Single returns the only element of the slice and true, or the zero
// value and false if the slice does not have exactly one element.
func Single[S ~[]E, E any](s S) (E, bool) {
	if len(s) != 1 {
		var zero E
		return zero, false
	}

	return s[0], true
}
