package intmath

import (
	"math"
	"testing"
)

// knownFactorials holds 0! through 12!, every factorial that fits in an int32.
var knownFactorials = []int32{1, 1, 2, 6, 24, 120, 720, 5040, 40320, 362880, 3628800, 39916800, 479001600}

func TestFactorial(t *testing.T) {
	t.Parallel()
	variants := []struct {
		name string
		fn   func(int32) int32
	}{
		{"iterative", FactorialIterative},
		{"recursive", FactorialRecursive},
	}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			t.Parallel()
			for n, want := range knownFactorials {
				if got := v.fn(int32(n)); got != want {
					t.Errorf("%d! = %d, want %d", n, got, want)
				}
			}
			for _, n := range []int32{-1, -2, -12, math.MinInt32} {
				if got := v.fn(n); got != FactorialInvalid {
					t.Errorf("factorial(%d) = %d, want sentinel %d", n, got, FactorialInvalid)
				}
			}
		})
	}
}

func TestFactorial_VariantsAgree(t *testing.T) {
	t.Parallel()
	for n := int32(-5); n <= MaxExactFactorial; n++ {
		if it, rec := FactorialIterative(n), FactorialRecursive(n); it != rec {
			t.Errorf("n=%d: iterative %d != recursive %d", n, it, rec)
		}
	}
}

func TestPower(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		base, exp     int32
		wantIterative int32
		wantRecursive int32
	}{
		{"ten squared", 10, 2, 100, 100},
		{"two to the tenth", 2, 10, 1024, 1024},
		{"zero exponent", 7, 0, 1, 1},
		{"exponent one", 9, 1, 9, 9},
		{"zero base rejected vs collapsed", 0, 5, 0, 0},
		{"zero to the zero", 0, 0, 0, 1},
		{"negative base rejected vs propagated", -2, 3, 0, -8},
		{"negative base even exponent", -3, 2, 0, 9},
		{"negative base zero exponent", -4, 0, 0, 1},
		{"negative exponent", 2, -3, 1, 0},
		{"largest exact power of two", 2, 30, 1 << 30, 1 << 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PowerIterative(tt.base, tt.exp); got != tt.wantIterative {
				t.Errorf("PowerIterative(%d, %d) = %d, want %d", tt.base, tt.exp, got, tt.wantIterative)
			}
			if got := PowerRecursive(tt.base, tt.exp); got != tt.wantRecursive {
				t.Errorf("PowerRecursive(%d, %d) = %d, want %d", tt.base, tt.exp, got, tt.wantRecursive)
			}
		})
	}
}

func TestFibonacci(t *testing.T) {
	t.Parallel()
	want := []int32{0, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55}
	for i, w := range want {
		if got := Fibonacci(int32(i)); got != w {
			t.Errorf("Fibonacci(%d) = %d, want %d", i, got, w)
		}
		if got := FibonacciIterative(int32(i)); got != w {
			t.Errorf("FibonacciIterative(%d) = %d, want %d", i, got, w)
		}
	}
	for _, n := range []int32{-1, -10, math.MinInt32} {
		if got := Fibonacci(n); got != FibonacciInvalid {
			t.Errorf("Fibonacci(%d) = %d, want %d", n, got, FibonacciInvalid)
		}
		if got := FibonacciIterative(n); got != FibonacciInvalid {
			t.Errorf("FibonacciIterative(%d) = %d, want %d", n, got, FibonacciInvalid)
		}
	}
}

func TestFibonacciIterative_Limits(t *testing.T) {
	t.Parallel()
	if got := FibonacciIterative(MaxExactFibonacci); got != 1836311903 {
		t.Errorf("F(%d) = %d, want 1836311903", MaxExactFibonacci, got)
	}
	// F(47) = 2971215073 does not fit and wraps.
	if got, want := FibonacciIterative(MaxExactFibonacci+1), int32(-1323752223); got != want {
		t.Errorf("F(%d) = %d, want wrapped %d", MaxExactFibonacci+1, got, want)
	}
}

func TestSqrt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int32
		want int32
	}{
		{16, 4},
		{15, 0},
		{-5, 0},
		{0, 0},
		{1, 1},
		{2, 0},
		{4, 2},
		{144, 12},
		{2147395600, 46340},
		{math.MaxInt32, 0},
	}

	for _, tt := range tests {
		if got := Sqrt(tt.n); got != tt.want {
			t.Errorf("Sqrt(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestIsPrime(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int32
		want int32
	}{
		{2, 1},
		{1, 0},
		{12, 0},
		{13, 1},
		{0, 0},
		{-7, 0},
		{3, 1},
		{9, 0},
		{25, 0},
		{49, 0},
		{97, 1},
		{7919, 1},
		{46349, 1},
		{46341, 0},
		{math.MaxInt32, 1},
		{math.MaxInt32 - 1, 0},
	}

	for _, tt := range tests {
		if got := IsPrime(tt.n); got != tt.want {
			t.Errorf("IsPrime(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestFindNextPrime(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int32
		want int32
	}{
		{14, 17},
		{2, 2},
		{-5, 2},
		{0, 2},
		{3, 3},
		{4, 5},
		{24, 29},
		{7920, 7927},
		{math.MaxInt32 - 1, math.MaxInt32},
		{math.MaxInt32, math.MaxInt32},
		{math.MinInt32, 2},
	}

	for _, tt := range tests {
		if got := FindNextPrime(tt.n); got != tt.want {
			t.Errorf("FindNextPrime(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
