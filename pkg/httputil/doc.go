// Package httputil provides retry helpers for callers of word-count sources.
//
// The weight pipeline never retries on its own: a failed fetch is reported
// to the caller as is. Callers that want a retry policy wrap the transient
// failures they care about with [Retryable] and run the operation through
// [Retry]:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    res, err := runner.Execute(ctx, opts)
//	    if errors.Is(err, source.ErrUnavailable) {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	})
//
// Errors that are not wrapped (for example an unknown corpus) are returned
// immediately. The delay doubles after each failed attempt.
package httputil
