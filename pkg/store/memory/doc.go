// Package memory implements an in-memory versioned repository.
//
// Each revision is an immutable radix tree sharing unchanged nodes with its predecessor.
// A commit publishes its new tree atomically: readers see either the prior or the new revision.
package memory
