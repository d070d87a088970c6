// Package calculator implements the investment calculator engine: the input
// record a user edits, the outputs derived from it, and the session that keeps
// the dollar and token price targets in sync while notifying listeners.
//
// Nothing in this package performs I/O or blocks. A Session belongs to the
// goroutine that drives it; listeners are invoked synchronously after every
// edit with a complete snapshot.
package calculator
