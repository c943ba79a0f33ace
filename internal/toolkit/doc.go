// Package toolkit exposes the functions of package intmath as named
// operations that can be listed, looked up, compared against the other
// variants of their family and evaluated from untyped argument lists.
package toolkit
