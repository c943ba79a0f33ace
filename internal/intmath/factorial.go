package intmath

// FactorialInvalid is returned by both factorial variants for a negative n.
const FactorialInvalid int32 = 0

// MaxExactFactorial is the largest n whose factorial fits in an int32.
const MaxExactFactorial = 12

// FactorialIterative returns n! computed by multiplying 1..n in a loop.
// 0! is 1. A negative n returns FactorialInvalid.
func FactorialIterative(n int32) int32 {
	if n < 0 {
		return FactorialInvalid
	}
	f := int32(1)
	for i := int32(1); i <= n; i++ {
		f *= i
	}
	return f
}

// FactorialRecursive returns n! using n! = n * (n-1)!.
// It shares the contract of FactorialIterative.
func FactorialRecursive(n int32) int32 {
	if n < 0 {
		return FactorialInvalid
	}
	if n == 0 {
		return 1
	}
	return n * FactorialRecursive(n-1)
}
