// Package flow implements the network calls that obtain credentials: the
// password login used to start a session and the refresh calls that exchange
// a refresh token for a rotated token pair.
//
// Refreshers are expected to run on a bare *http.Client with no auth
// interceptors attached, so a refresh call can never recurse into the
// coordinator that triggered it.
package flow
