package intmath

// SqrtNotFound is returned when n is negative or not a perfect square.
const SqrtNotFound int32 = 0

// Sqrt returns the exact integer square root of n.
//
// Candidates k = 1, 2, 3, ... are tried while k <= n/k; the first k with
// k*k == n is returned. Negative inputs, 0 and numbers that are not perfect
// squares all return SqrtNotFound.
func Sqrt(n int32) int32 {
	if n < 0 {
		return SqrtNotFound
	}
	for k := int32(1); k <= n/k; k++ {
		if k*k == n {
			return k
		}
	}
	return SqrtNotFound
}
