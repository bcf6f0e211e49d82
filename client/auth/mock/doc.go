// Package mock provides an httptest portal authentication server that
// facilitates testing of the client-side token refresh flow.
//
// The server issues RS256 JWT access tokens and single-use refresh tokens,
// so a refresh rotates the pair and replaying an old refresh token fails the
// same way a real portal backend would.
package mock
