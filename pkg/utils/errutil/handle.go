package errutil

import (
	"context"
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs err together with its goerr values and reports it to Sentry
// when a client has been initialized.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	attrs := []any{slog.Any("error", err)}
	var gerr *goerr.Error
	if errors.As(err, &gerr) {
		for k, v := range gerr.Values() {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	ctxlog.From(ctx).Error("error occurred", attrs...)

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		evID := hub.Clone().CaptureException(err)
		if evID != nil {
			ctxlog.From(ctx).Debug("error reported to sentry", "event_id", *evID)
		}
	}
}
