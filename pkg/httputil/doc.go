// Package httputil provides the HTTP plumbing shared by registry clients.
//
// # Caching
//
// [Cache] stores JSON-marshalable responses as files with a TTL derived
// from file modification time. Repeated queries for the same package hit
// the filesystem instead of the network, which keeps interactive use fast
// and is gentle on the registry:
//
//	cache, err := httputil.NewCache("", 30*time.Minute)
//	ok, err := cache.Get("info:ripgrep-git", &record)
//	if !ok {
//	    record = fetchFromRegistry()
//	    cache.Set("info:ripgrep-git", record)
//	}
//
// Keys are namespaced per query kind ("info:", "search:") via
// [Cache.Namespace] so different response shapes never collide.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff, but only when the
// failure is wrapped in [RetryableError]. Clients mark transient failures
// (connection errors, 5xx responses) as retryable and leave hard failures
// (404, malformed response) to surface immediately.
package httputil
