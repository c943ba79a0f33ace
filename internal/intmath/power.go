package intmath

// PowerInvalid is the sentinel returned when a power variant rejects its input.
const PowerInvalid int32 = 0

// PowerIterative returns base^exponent by repeated multiplication.
//
// The base is validated before anything else: any base <= 0 yields
// PowerInvalid, so 0^0 is 0 here. With a positive base an exponent of 0
// yields 1, and a negative exponent performs no multiplication and also
// yields 1.
func PowerIterative(base, exponent int32) int32 {
	if base <= 0 {
		return PowerInvalid
	}
	if exponent == 0 {
		return 1
	}
	result := int32(1)
	for ; exponent > 0; exponent-- {
		result *= base
	}
	return result
}

// PowerRecursive returns base^exponent using base * base^(exponent-1).
//
// Unlike PowerIterative the base is not validated: zero and negative bases
// flow through the multiplication, so PowerRecursive(-2, 3) is -8. A negative
// exponent has no base case to reach and returns PowerInvalid.
func PowerRecursive(base, exponent int32) int32 {
	if exponent < 0 {
		return PowerInvalid
	}
	if exponent == 0 {
		return 1
	}
	return base * PowerRecursive(base, exponent-1)
}
