package toolkit

import "github.com/agbru/intcalc/internal/intmath"

// Family names.
const (
	FamilyFactorial = "factorial"
	FamilyPower     = "power"
	FamilyFibonacci = "fibonacci"
	FamilySqrt      = "sqrt"
	FamilyIsPrime   = "is-prime"
	FamilyNextPrime = "next-prime"
)

func nonNegative(n int32) bool { return n >= 0 }

// Builtin returns a fresh instance of every toolkit operation.
func Builtin() []Operation {
	return []Operation{
		NewUnary("factorial-iterative", FamilyFactorial, "n! by a multiplication loop", "n",
			intmath.FactorialIterative, nonNegative),
		WithDepthLimit(NewUnary("factorial-recursive", FamilyFactorial, "n! by n * (n-1)!", "n",
			intmath.FactorialRecursive, nonNegative), 0),
		NewBinary("power-iterative", FamilyPower, "base^exponent by a loop, rejects base <= 0", [2]string{"base", "exponent"},
			intmath.PowerIterative, func(base, _ int32) bool { return base > 0 }),
		WithDepthLimit(NewBinary("power-recursive", FamilyPower, "base^exponent by recursion, any base", [2]string{"base", "exponent"},
			intmath.PowerRecursive, func(_, exponent int32) bool { return exponent >= 0 }), 1),
		WithDepthLimit(NewUnary("fibonacci-recursive", FamilyFibonacci, "F(index) by naive double recursion", "index",
			intmath.Fibonacci, nonNegative), 0),
		NewUnary("fibonacci-iterative", FamilyFibonacci, "F(index) carrying the last two terms", "index",
			intmath.FibonacciIterative, nonNegative),
		NewUnary("sqrt", FamilySqrt, "exact integer square root, 0 when none", "n",
			intmath.Sqrt, nonNegative),
		NewUnary("is-prime", FamilyIsPrime, "1 if n is prime, 0 otherwise", "n",
			intmath.IsPrime, nil),
		NewUnary("next-prime", FamilyNextPrime, "smallest prime >= n (2 for n <= 2)", "n",
			intmath.FindNextPrime, nil),
	}
}
