// Package format holds pure formatting helpers shared by the presentation
// layers.
package format
