// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// evaluation, validation, timeout) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Wrapping types implement the Unwrap() method to support errors.Is() and errors.As().
//
// The integer toolkit itself never returns errors; invalid input there is
// signalled by sentinel values. These types belong to the driver around it.
package apperrors
