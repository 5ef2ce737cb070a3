package persistence

import "context"

// Write is the handle of one detached storage write.
type Write struct {
	seq  uint64
	key  string
	done chan struct{}
	err  error
}

// Seq is the issue order of the write across both records, starting at 1.
func (w *Write) Seq() uint64 { return w.seq }

func (w *Write) Key() string { return w.key }

// Done is closed once the write has finished, successfully or not.
func (w *Write) Done() <-chan struct{} { return w.done }

// Err is the write's failure. Only meaningful after Done is closed.
func (w *Write) Err() error {
	select {
	case <-w.done:
		return w.err
	default:
		return nil
	}
}

// Wait blocks until the write finishes or ctx is done.
func (w *Write) Wait(ctx context.Context) error {
	select {
	case <-w.done:
		return w.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
