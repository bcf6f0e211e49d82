package mock

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// PortalService is a test server that simulates a portal authentication backend
type PortalService struct {
	PrivateKey     *rsa.PrivateKey
	Issuer         string
	Username       string
	Password       string
	ClientID       string
	ClientSecret   string
	AccessTokenTTL time.Duration
	// RefreshDelay holds every refresh response, widening the window in which
	// concurrent callers pile up behind one refresh.
	RefreshDelay    time.Duration
	LoginHandler    func(w http.ResponseWriter, r *http.Request)
	RefreshHandler  func(w http.ResponseWriter, r *http.Request)
	TokenHandler    func(w http.ResponseWriter, r *http.Request)
	ResourceHandler func(w http.ResponseWriter, r *http.Request)

	mux           sync.Mutex
	refreshTokens map[string]string
	generation    atomic.Int64
	failRefresh   atomic.Bool
	refreshCalls  atomic.Int64
	loginCalls    atomic.Int64
	resourceCalls atomic.Int64
}

// RefreshCalls returns the number of refresh requests received on /auth/refresh and /token.
func (m *PortalService) RefreshCalls() int {
	return int(m.refreshCalls.Load())
}

// LoginCalls returns the number of login requests received.
func (m *PortalService) LoginCalls() int {
	return int(m.loginCalls.Load())
}

// ResourceCalls returns the number of protected resource requests received.
func (m *PortalService) ResourceCalls() int {
	return int(m.resourceCalls.Load())
}

// ExpireAccessTokens invalidates every access token issued so far.
func (m *PortalService) ExpireAccessTokens() {
	m.generation.Add(1)
}

// FailRefresh makes refresh requests fail with 401 until reset.
func (m *PortalService) FailRefresh(fail bool) {
	m.failRefresh.Store(fail)
}

// IssueRefreshToken registers a refresh token for subject, as a login would.
func (m *PortalService) IssueRefreshToken(subject string) string {
	return m.newRefreshToken(subject)
}

// NewPortalService creates a new mock portal authentication backend
func NewPortalService(opts ...Option) (*PortalService, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %v", err)
	}
	service := &PortalService{
		PrivateKey:     privateKey,
		Username:       "alice",
		Password:       "correct-password",
		ClientID:       "test_client_id",
		ClientSecret:   "test_client_secret",
		AccessTokenTTL: time.Hour,
		refreshTokens:  map[string]string{},
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Register registers HTTP handlers for all mock endpoints onto the given ServeMux.
func (m *PortalService) Register(mux *http.ServeMux) {
	mux.Handle("/", &Handler{Server: m})
}

// Handler returns an http.Handler for all mock endpoints, suitable for any HTTP server.
func (m *PortalService) Handler() http.Handler {
	mux := http.NewServeMux()
	m.Register(mux)
	return mux
}
