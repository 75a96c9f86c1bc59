package ports

import "context"

// CounterRepository is the order number sequencer's storage contract: one
// shared counter record holding the last-issued integer.
//
// Next performs the read-modify-write against the current transaction, so the
// issued value and the increment commit (or roll back) together with the work
// that consumed it: a crash between increment and use cannot skip or reuse a
// number. The allocated value is max(current+1, floor); raising the floor
// raises the starting point without renumbering history.
type CounterRepository interface {
	// Next allocates the next order number value within the bound transaction.
	Next(ctx context.Context, floor int64) (int64, error)
}
