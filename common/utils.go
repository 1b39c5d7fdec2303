package common

// Coalesce returns the first value in the list that differs from the type's
// zero value. Used to apply defaults over partially filled staging structs:
// Coalesce(staged.Field, defaultValue).
//
// Parameters:
//   - values: candidate values in priority order
//
// Returns:
//   - T: the first non-zero candidate, or the zero value if none qualify
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
