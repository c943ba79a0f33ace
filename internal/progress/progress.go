// Package progress defines the progress messages exchanged between the
// orchestration layer and the presentation layer.
package progress

// ProgressUpdate reports the progress of one operation in a batch.
type ProgressUpdate struct {
	// OperationIndex is the position of the operation in the batch.
	OperationIndex int
	// Value is the normalized progress, 0.0 at start and 1.0 when done.
	Value float64
}
