package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/viant/portalauth/client/auth/flow"
	"github.com/viant/portalauth/client/auth/store"
	"github.com/viant/portalauth/internal/collection"
)

// State is the refresh cycle state.
type State int

const (
	Idle State = iota
	Refreshing
)

func (s State) String() string {
	if s == Refreshing {
		return "refreshing"
	}
	return "idle"
}

type result struct {
	token string
	err   error
}

// Coordinator attaches bearer tokens and recovers from expired tokens with at
// most one refresh call in flight at a time.
type Coordinator struct {
	store          store.Store
	refresher      flow.Refresher
	transport      http.RoundTripper
	exclusions     Exclusions
	refreshTimeout time.Duration
	logger         logrus.FieldLogger
	listeners      *collection.SyncMap[string, Listener]

	mux      sync.Mutex
	inFlight bool
	waiters  []chan result
}

// New creates a coordinator; a refresher is required.
func New(options ...Option) (*Coordinator, error) {
	ret := &Coordinator{
		transport: http.DefaultTransport,
		store:     store.NewMemoryStore(),
		logger:    logrus.StandardLogger().WithField("component", "auth"),
		listeners: collection.NewSyncMap[string, Listener](),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.refresher == nil {
		return nil, errors.New("transport: refresher was empty")
	}
	return ret, nil
}

func (c *Coordinator) Store() store.Store {
	return c.store
}

// Client returns an http.Client sending requests through the coordinator.
func (c *Coordinator) Client() *http.Client {
	return &http.Client{Transport: c}
}

// State returns the current refresh cycle state.
func (c *Coordinator) State() State {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.inFlight {
		return Refreshing
	}
	return Idle
}

// Waiters returns the number of callers queued behind the in-flight refresh.
func (c *Coordinator) Waiters() int {
	c.mux.Lock()
	defer c.mux.Unlock()
	return len(c.waiters)
}

// AttachToken returns a copy of req carrying the stored access token. Without
// a token (or when the store cannot be read) req is returned unchanged.
func (c *Coordinator) AttachToken(req *http.Request) *http.Request {
	token, ok, err := c.store.Get(req.Context(), store.AccessTokenKey)
	if err != nil {
		c.logger.WithError(err).Warn("failed to read access token")
		return req
	}
	if !ok {
		return req
	}
	ret := req.Clone(req.Context())
	ret.Header.Set(authorizationHeader, bearer(token))
	return ret
}

// Refresh returns a new access token. When a refresh is already in flight
// the caller waits for its result instead of issuing another call; ctx only
// bounds the wait, a started refresh always runs to completion.
func (c *Coordinator) Refresh(ctx context.Context) (string, error) {
	c.mux.Lock()
	if c.inFlight {
		waiter := make(chan result, 1)
		c.waiters = append(c.waiters, waiter)
		c.mux.Unlock()
		select {
		case r := <-waiter:
			return r.token, r.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	c.inFlight = true
	c.mux.Unlock()

	token, err := "", fmt.Errorf("%w: %w", ErrRefreshRejected, errRefreshAborted)
	defer func() { c.settle(token, err) }()
	token, err = c.refresh(ctx)
	return token, err
}

func (c *Coordinator) refresh(ctx context.Context) (string, error) {
	ctx = context.WithoutCancel(ctx)
	logger := c.logger.WithField("cycle", uuid.NewString())
	refreshToken, ok, err := c.store.Get(ctx, store.RefreshTokenKey)
	if err != nil || !ok {
		if err != nil {
			logger.WithError(err).Warn("failed to read refresh token")
		}
		c.ForceLogout(ctx)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoRefreshToken, err)
		}
		return "", ErrNoRefreshToken
	}

	logger.Debug("refresh started")
	callCtx := ctx
	if c.refreshTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.refreshTimeout)
		defer cancel()
	}
	tokens, err := c.refresher.Refresh(callCtx, refreshToken)
	if err == nil && (tokens == nil || tokens.AccessToken == "") {
		err = errors.New("empty access token")
	}
	if err != nil {
		logger.WithError(err).Warn("refresh rejected")
		c.ForceLogout(ctx)
		return "", fmt.Errorf("%w: %w", ErrRefreshRejected, err)
	}
	if err = c.persist(ctx, tokens); err != nil {
		logger.WithError(err).Warn("failed to persist refreshed credentials")
		c.ForceLogout(ctx)
		return "", fmt.Errorf("%w: %w", ErrCredentialPersist, err)
	}
	logger.Debug("refresh completed")
	return tokens.AccessToken, nil
}

func (c *Coordinator) persist(ctx context.Context, tokens *flow.Tokens) error {
	if err := c.store.Set(ctx, store.AccessTokenKey, tokens.AccessToken); err != nil {
		return err
	}
	if tokens.RefreshToken == "" {
		return nil
	}
	return c.store.Set(ctx, store.RefreshTokenKey, tokens.RefreshToken)
}

// settle delivers the cycle result to every waiter in enqueue order and
// closes the cycle.
func (c *Coordinator) settle(token string, err error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	for _, waiter := range c.waiters {
		waiter <- result{token: token, err: err}
	}
	c.waiters = nil
	c.inFlight = false
}

// ForceLogout clears the stored credentials and broadcasts SessionExpired.
// It is safe to call when already logged out.
func (c *Coordinator) ForceLogout(ctx context.Context) {
	if err := store.Clear(context.WithoutCancel(ctx), c.store); err != nil {
		c.logger.WithError(err).Warn("failed to clear credentials")
	}
	c.broadcast(SessionExpired)
}
