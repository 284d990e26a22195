package download

import (
	"context"
	"io"
)

// ContextRead calls r.Read() and gives up as soon as ctx is done. A read that
// is still blocked when ctx finishes is left to complete in its own
// goroutine; its result is discarded.
func ContextRead(ctx context.Context, r io.Reader, p []byte) (int, error) {
	type result struct {
		n   int
		err error
	}

	// Checked first so an already expired context never starts a read.
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	resultChan := make(chan result, 1)

	go func() {
		n, err := r.Read(p)
		resultChan <- result{n, err}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-resultChan:
		return res.n, res.err
	}
}

// ContextReader is an io.Reader bound to a context. Reads fail with the
// context's error once it is done.
type ContextReader struct {
	ctx context.Context
	r   io.Reader
}

func NewContextReader(ctx context.Context, r io.Reader) *ContextReader {
	return &ContextReader{
		ctx: ctx,
		r:   r,
	}
}

// Read implements io.Reader#Read(), respecting the ContextReader's embedded
// context.
func (cr *ContextReader) Read(p []byte) (int, error) {
	return ContextRead(cr.ctx, cr.r, p)
}
