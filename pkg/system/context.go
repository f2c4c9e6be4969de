package system

import (
	"context"
)

// RunWithContext runs operation on a context detached from ctx, so work that
// must not be left half done (flushing a manifest, closing an object stream)
// is signalled on cancellation but still allowed to finish.
//
// Returns ctx.Err() without running operation if ctx is already done,
// otherwise whatever operation returns.
func RunWithContext(ctx context.Context, operation func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	opCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Buffered so the goroutine never blocks on send.
	done := make(chan error, 1)
	go func() {
		done <- operation(opCtx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		cancel()
		return <-done
	}
}
