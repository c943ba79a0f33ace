package intmath

// IsPrime reports whether n is prime, returning 1 for prime and 0 otherwise.
//
// Odd candidates are checked by trial division with divisors 3, 5, 7, ...
// bounded by i <= n/i, which keeps the square-root bound in integer
// arithmetic.
func IsPrime(n int32) int32 {
	if n <= 1 {
		return 0
	}
	if n == 2 {
		return 1
	}
	if n%2 == 0 {
		return 0
	}
	for i := int32(3); i <= n/i; i += 2 {
		if n%i == 0 {
			return 0
		}
	}
	return 1
}

// FindNextPrime returns the smallest prime >= n, and 2 for any n <= 2.
// The result always fits in an int32 because math.MaxInt32 is itself prime.
func FindNextPrime(n int32) int32 {
	if n <= 2 {
		return 2
	}
	if n%2 == 0 {
		n++
	}
	for IsPrime(n) == 0 {
		n += 2
	}
	return n
}
