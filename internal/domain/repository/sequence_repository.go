package repository

import "context"

// SequenceRepository hands out monotonically increasing values from named
// counters. Next is a single atomic increment-and-return; concurrent callers
// always receive distinct values. Peek reads the value Next would return
// without consuming it.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
	Peek(ctx context.Context, name string) (int64, error)
}
