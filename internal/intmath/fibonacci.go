package intmath

// FibonacciInvalid is returned for a negative index. Real Fibonacci values
// are never negative below the first int32 overflow, so it cannot collide.
const FibonacciInvalid int32 = -1

// MaxExactFibonacci is the largest index whose Fibonacci number fits in an
// int32 (F(46) = 1836311903).
const MaxExactFibonacci = 46

// Fibonacci returns F(index) by naive double recursion. Its running time is
// exponential in index.
func Fibonacci(index int32) int32 {
	if index < 0 {
		return FibonacciInvalid
	}
	if index == 0 {
		return 0
	}
	if index == 1 {
		return 1
	}
	return Fibonacci(index-2) + Fibonacci(index-1)
}

// FibonacciIterative returns the same values as Fibonacci, including the
// int32 wrap-around past MaxExactFibonacci, carrying the last two terms
// forward instead of recomputing them.
func FibonacciIterative(index int32) int32 {
	if index < 0 {
		return FibonacciInvalid
	}
	if index <= 1 {
		return index
	}
	a, b := int32(0), int32(1)
	for i := int32(2); i <= index; i++ {
		a, b = b, a+b
	}
	return b
}
