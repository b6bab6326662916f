package coordutil

// CheckPair validates the canonical two-slice input contract shared by every
// engine entry point: both slices non-nil and of equal length. The argument
// names appear verbatim in the error message.
func CheckPair(op, nameA string, a []float64, nameB string, b []float64) error {
	if a == nil {
		return NilArg(op, nameA)
	}
	if b == nil {
		return NilArg(op, nameB)
	}
	if len(a) != len(b) {
		return LengthMismatch(op, nameA, len(a), nameB, len(b))
	}
	return nil
}

// CheckSameLength validates that every named slice has the same length as the
// first. All slices must be non-nil. Used by the six-array proper-motion
// entry point.
func CheckSameLength(op string, names []string, slices ...[]float64) error {
	if len(slices) == 0 {
		return nil
	}
	for i, s := range slices {
		if s == nil {
			return NilArg(op, names[i])
		}
	}
	n := len(slices[0])
	for i, s := range slices[1:] {
		if len(s) != n {
			return LengthMismatch(op, names[0], n, names[i+1], len(s))
		}
	}
	return nil
}
