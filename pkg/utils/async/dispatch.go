package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herbal/pkg/utils/errutil"
)

// Dispatch executes handler in a new goroutine so the caller's event loop
// keeps running while it is in flight.
//
// Parameters:
//   - ctx: Original context (the logger is preserved, cancellation is not)
//   - handler: Function to execute asynchronously
//
// Behavior:
//   - Creates a new background context with preserved logger
//   - Recovers from panics and reports them with the stack trace
//   - Reports errors returned by handler via errutil.Handle
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				ctxlog.From(newCtx).Error("panic in async handler",
					"recover", r,
					"stack", string(stack))
				errutil.Handle(newCtx, goerr.New("panic in async handler", goerr.V("recover", r)))
			}
		}()

		if err := handler(newCtx); err != nil {
			errutil.Handle(newCtx, goerr.Wrap(err, "error in async handler"))
		}
	}()
}

// newBackgroundContext creates a new background context preserving the logger
func newBackgroundContext(ctx context.Context) context.Context {
	return ctxlog.With(context.Background(), ctxlog.From(ctx))
}
