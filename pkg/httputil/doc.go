// Package httputil provides HTTP utilities shared by the backend clients.
//
// # Overview
//
// The panels clients and the workflow runner talk to HTTP services that
// fail transiently (the dev backend restarting, an executor warming up).
// This package provides the retry machinery they share:
//
//   - [Retry]: Automatic retry with exponential backoff
//   - [RetryableError]: Marker for failures worth retrying
//
// # Retry
//
// [Retry] re-runs an operation when it fails with a [RetryableError]:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    if resp.StatusCode >= 500 {
//	        return &httputil.RetryableError{Err: fmt.Errorf("status %d", resp.StatusCode)}
//	    }
//	    return handle(resp)
//	})
//
// Errors not wrapped in [RetryableError] abort immediately, so 4xx
// responses and parse failures surface on the first attempt.
//
// Response caching lives in the cache package, not here.
package httputil
