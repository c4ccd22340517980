package health

import "math"

// Lag returns length - acked as a signed value.
//
// The subtraction is done on the unsigned operands, so an acknowledged
// offset ahead of the partition length yields a negative lag instead of
// wrapping. Differences outside the int64 range saturate at its bounds.
func Lag(length, acked uint64) int64 {
	if length >= acked {
		d := length - acked
		if d > math.MaxInt64 {
			return math.MaxInt64
		}
		return int64(d)
	}
	d := acked - length
	if d > math.MaxInt64 {
		return math.MinInt64
	}
	return -int64(d)
}
