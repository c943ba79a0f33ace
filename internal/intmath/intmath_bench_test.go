package intmath

import "testing"

func BenchmarkFactorialIterative12(b *testing.B) {
	for i := 0; i < b.N; i++ {
		FactorialIterative(12)
	}
}

func BenchmarkFactorialRecursive12(b *testing.B) {
	for i := 0; i < b.N; i++ {
		FactorialRecursive(12)
	}
}

func BenchmarkPowerIterative2_30(b *testing.B) {
	for i := 0; i < b.N; i++ {
		PowerIterative(2, 30)
	}
}

func BenchmarkPowerRecursive2_30(b *testing.B) {
	for i := 0; i < b.N; i++ {
		PowerRecursive(2, 30)
	}
}

func BenchmarkFibonacci20(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Fibonacci(20)
	}
}

func BenchmarkFibonacciIterative20(b *testing.B) {
	for i := 0; i < b.N; i++ {
		FibonacciIterative(20)
	}
}

func BenchmarkSqrtMax(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Sqrt(2147395600)
	}
}

func BenchmarkFindNextPrimeMax(b *testing.B) {
	for i := 0; i < b.N; i++ {
		FindNextPrime(2147483600)
	}
}
