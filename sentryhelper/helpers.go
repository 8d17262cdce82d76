// Package sentryhelper provides utilities for Sentry transaction and scope
// management. It ensures proper isolation of breadcrumbs and context per
// tool call.
package sentryhelper

import (
	"context"
	"fmt"

	sentry "github.com/getsentry/sentry-go"
)

// contextKey is used to store the cloned hub in context
type contextKey string

const hubContextKey contextKey = "sentry_hub"

// StartToolTransaction creates a new transaction with a cloned hub for one
// tool call. The cloned hub ensures breadcrumbs and scope are isolated to
// this call only. Returns the context with the transaction and hub, plus
// the transaction span.
func StartToolTransaction(ctx context.Context, toolName string) (context.Context, *sentry.Span) {
	hub := sentry.CurrentHub().Clone()
	ctx = context.WithValue(ctx, hubContextKey, hub)

	transactionName := fmt.Sprintf("tool.%s", toolName)
	transaction := sentry.StartTransaction(ctx, transactionName,
		sentry.WithOpName("tool.call"),
		sentry.WithTransactionSource(sentry.SourceRoute),
	)
	transaction.SetTag("tool", toolName)
	hub.Scope().SetSpan(transaction)

	return transaction.Context(), transaction
}

// HubFromContext retrieves the cloned hub from context.
// Falls back to CurrentHub if no cloned hub is found.
func HubFromContext(ctx context.Context) *sentry.Hub {
	if ctx == nil {
		return sentry.CurrentHub()
	}
	if hub, ok := ctx.Value(hubContextKey).(*sentry.Hub); ok && hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

// AddBreadcrumb adds a breadcrumb to the hub in context (isolated per call).
func AddBreadcrumb(ctx context.Context, breadcrumb *sentry.Breadcrumb) {
	hub := HubFromContext(ctx)
	hub.AddBreadcrumb(breadcrumb, nil)
}

// ReportPanic reports a recovered panic value through the hub in context.
func ReportPanic(ctx context.Context, recovered interface{}) {
	hub := HubFromContext(ctx)
	hub.RecoverWithContext(ctx, recovered)
}
