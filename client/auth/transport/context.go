package transport

import "context"

type (
	contextRetriedKey string
)

const retriedKey contextRetriedKey = "authRetried"

// WithRetried marks requests made with ctx as already retried; a 401 on such
// a request is returned to the caller without a refresh.
func WithRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey, true)
}

// IsRetried reports whether ctx carries the retried marker.
func IsRetried(ctx context.Context) bool {
	if v := ctx.Value(retriedKey); v != nil {
		retried, _ := v.(bool)
		return retried
	}
	return false
}
