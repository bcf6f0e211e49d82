// Package store defines the credential store used by the token refresh
// coordinator and the login flow.
//
// A store is a small key-value record with three fields: the access token,
// the refresh token and an opaque user blob. The in-memory implementation is
// sufficient for CLI or unit-test scenarios; FileStore, RedisStore and
// SecretStore persist the record so that it survives process restarts or is
// shared between processes.
package store
