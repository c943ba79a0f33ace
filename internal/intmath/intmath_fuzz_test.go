package intmath

import (
	"math/big"
	"testing"
)

// FuzzIsPrime cross-checks trial division against math/big.
func FuzzIsPrime(f *testing.F) {
	for _, seed := range []int32{-1, 0, 1, 2, 3, 4, 9, 25, 97, 7919, 46349, 2147483647} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, n int32) {
		want := n > 1 && big.NewInt(int64(n)).ProbablyPrime(0)
		if got := IsPrime(n) == 1; got != want {
			t.Errorf("IsPrime(%d) = %v, want %v", n, got, want)
		}
	})
}

// FuzzFindNextPrime verifies the result is prime, not below n, and that the
// odd candidates skipped on the way are all composite.
func FuzzFindNextPrime(f *testing.F) {
	for _, seed := range []int32{-5, 0, 2, 14, 7920, 2147483646} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, n int32) {
		p := FindNextPrime(n)
		if !big.NewInt(int64(p)).ProbablyPrime(0) {
			t.Fatalf("FindNextPrime(%d) = %d is not prime", n, p)
		}
		if n > 2 && p < n {
			t.Fatalf("FindNextPrime(%d) = %d is below its input", n, p)
		}
		for c := n; c > 2 && c < p; c++ {
			if big.NewInt(int64(c)).ProbablyPrime(0) {
				t.Fatalf("FindNextPrime(%d) = %d skipped prime %d", n, p, c)
			}
		}
	})
}

// FuzzSqrt checks that any root returned is exact and that perfect squares
// are always found.
func FuzzSqrt(f *testing.F) {
	for _, seed := range []int32{-5, 0, 1, 15, 16, 2147395600, 2147483647} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, n int32) {
		root := Sqrt(n)
		if root != SqrtNotFound && root*root != n {
			t.Fatalf("Sqrt(%d) = %d is not exact", n, root)
		}
		if n <= 0 {
			if root != SqrtNotFound {
				t.Fatalf("Sqrt(%d) = %d, want %d", n, root, SqrtNotFound)
			}
			return
		}
		r := new(big.Int).Sqrt(big.NewInt(int64(n)))
		if r.Int64()*r.Int64() == int64(n) && int64(root) != r.Int64() {
			t.Fatalf("Sqrt(%d) = %d, want %d", n, root, r.Int64())
		}
	})
}
