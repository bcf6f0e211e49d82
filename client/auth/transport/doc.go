// Package transport implements the token refresh coordinator: an
// http.RoundTripper that attaches the stored bearer token to outgoing
// requests and, when a response comes back `401 Unauthorized`, refreshes the
// token pair and replays the request once.
//
// Concurrent 401s are deduplicated: while one refresh is in flight every other
// caller queues behind it and receives the same result, so N simultaneous
// failures produce a single refresh call. When a refresh cannot succeed the
// coordinator clears the credential store and notifies subscribers that the
// session expired.
package transport
