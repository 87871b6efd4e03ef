package cache

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// StartLookupSpan opens a span around a cache lookup, nil when the request carries no sentry hub
func StartLookupSpan(ctx context.Context, entity string, key string) *sentry.Span {
	if sentry.GetHubFromContext(ctx) == nil {
		return nil
	}

	span := sentry.StartSpan(ctx, "cache.get")
	span.Description = "cache." + entity
	span.SetData("cache.key", key)
	return span
}

// FinishLookupSpan records whether the lookup hit and closes the span
func FinishLookupSpan(span *sentry.Span, hit bool, err error) {
	if span == nil {
		return
	}

	span.SetData("cache.hit", hit)
	switch {
	case err != nil:
		span.Status = sentry.SpanStatusInternalError
		span.SetData("error", err.Error())
	default:
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}
