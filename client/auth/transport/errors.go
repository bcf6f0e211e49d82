package transport

import "errors"

var (
	// ErrNoRefreshToken is returned when a refresh is attempted without a stored refresh token.
	ErrNoRefreshToken = errors.New("no refresh token")
	// ErrRefreshRejected is returned when the refresh call fails, including transport failures.
	ErrRefreshRejected = errors.New("refresh rejected")
	// ErrRetryExhausted reports a replayed request that was rejected with 401 again.
	ErrRetryExhausted = errors.New("retry exhausted")
	// ErrCredentialPersist is returned when a refreshed token pair cannot be written to the store.
	ErrCredentialPersist = errors.New("failed to persist refreshed credentials")

	errRefreshAborted = errors.New("refresh aborted")
)
