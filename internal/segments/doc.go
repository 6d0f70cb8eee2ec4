// Package segments selects keyword-matching runs of timestamp
// references and converts them into clip boundaries. A run of
// consecutive matching references becomes one segment spanning from the
// run's first reference to the reference that follows the run; the
// final run ends at the next reference or, when the run reaches the end
// of the listing, sixty seconds past its last reference.
package segments
