// Package orchestration coordinates the concurrent evaluation of toolkit
// operations and compares the results of variants of the same family. It
// decouples business logic from presentation via the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
