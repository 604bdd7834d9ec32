package transport

import "context"

type contextRetriedKey struct{}

// MarkRetried flags the request carried by ctx as already replayed, so a further
// 401 ends the session instead of refreshing again.
func MarkRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextRetriedKey{}, true)
}

// IsRetried reports whether the request carried by ctx has used its single replay
func IsRetried(ctx context.Context) bool {
	retried, _ := ctx.Value(contextRetriedKey{}).(bool)
	return retried
}
