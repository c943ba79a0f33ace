// Package intmath implements small integer algorithms on 32-bit signed
// integers: iterative and recursive factorial, iterative and recursive power,
// Fibonacci, exact integer square root, primality and next-prime search.
//
// Every function is pure and total. Invalid input is reported through a
// sentinel return value rather than an error, and overflow wraps with the
// usual two's-complement semantics of int32.
package intmath
