package portalauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/viant/portalauth/client/auth/flow"
	"github.com/viant/portalauth/client/auth/store"
	"github.com/viant/portalauth/client/auth/transport"
	"github.com/viant/portalauth/config"
	"golang.org/x/oauth2"
)

// ClientOptions defines options for configuring a portal client.
type ClientOptions struct {
	Config *config.Config

	// Store, if set, replaces the store described by Config.Store so that
	// callers can share credentials across client instances.
	Store store.Store
	// Transport is the inner transport; refresh calls use it without interceptors.
	Transport http.RoundTripper
	Logger    logrus.FieldLogger
}

func (o *ClientOptions) Init() {
	if o.Config == nil {
		o.Config = &config.Config{}
	}
	o.Config.Init()
	if o.Transport == nil {
		o.Transport = http.DefaultTransport
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger().WithField("component", "portalauth")
	}
}

// Client is an authenticated portal client.
type Client struct {
	HTTP        *http.Client
	Coordinator *transport.Coordinator
	Store       store.Store
	login       *flow.PasswordLogin
	closers     []func() error
}

// Login starts a session; the login endpoint is called without the coordinator.
func (c *Client) Login(ctx context.Context, username, password string) (*flow.Tokens, error) {
	if c.login == nil {
		return nil, errors.New("loginURL was empty")
	}
	return c.login.Login(ctx, username, password)
}

// Logout clears the session and notifies subscribers.
func (c *Client) Logout(ctx context.Context) {
	c.Coordinator.ForceLogout(ctx)
}

// Close releases store connections.
func (c *Client) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewClient creates a portal client configured via ClientOptions.
func NewClient(ctx context.Context, options *ClientOptions) (*Client, error) {
	options.Init()
	cfg := options.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ret := &Client{}
	credentials := options.Store
	if credentials == nil {
		var closer func() error
		var err error
		if credentials, closer, err = NewStore(ctx, &cfg.Store); err != nil {
			return nil, err
		}
		if closer != nil {
			ret.closers = append(ret.closers, closer)
		}
	}
	bare := &http.Client{Transport: options.Transport}
	coordinator, err := transport.New(
		transport.WithStore(credentials),
		transport.WithRefresher(NewRefresher(cfg, bare)),
		transport.WithTransport(options.Transport),
		transport.WithExclusions(cfg.Exclusions...),
		transport.WithRefreshTimeout(cfg.RefreshTimeout),
		transport.WithLogger(options.Logger),
	)
	if err != nil {
		return nil, err
	}
	ret.Coordinator = coordinator
	ret.Store = credentials
	ret.HTTP = coordinator.Client()
	if cfg.LoginURL != "" {
		ret.login = flow.NewPasswordLogin(cfg.LoginURL, bare, credentials)
	}
	return ret, nil
}

// NewRefresher returns an OAuth2 refresher when cfg.OAuth2 is set, otherwise a JSON one.
func NewRefresher(cfg *config.Config, client *http.Client) flow.Refresher {
	if cfg.OAuth2 != nil {
		return flow.NewOAuth2Refresher(&oauth2.Config{
			ClientID:     cfg.OAuth2.ClientID,
			ClientSecret: cfg.OAuth2.ClientSecret,
			Scopes:       cfg.OAuth2.Scopes,
			Endpoint:     oauth2.Endpoint{TokenURL: cfg.OAuth2.TokenURL},
		}, client)
	}
	return flow.NewJSONRefresher(cfg.RefreshURL, client)
}

// NewStore creates the configured credential store and an optional closer.
func NewStore(ctx context.Context, cfg *config.Store) (store.Store, func() error, error) {
	switch cfg.Type {
	case config.StoreMemory, "":
		return store.NewMemoryStore(), nil, nil
	case config.StoreFile:
		ret, err := store.NewFileStore(ctx, cfg.URL)
		return ret, nil, err
	case config.StoreSecret:
		ret, err := store.NewSecretStore(ctx, cfg.URL, cfg.EncryptionKey)
		return ret, nil, err
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis %v: %w", cfg.RedisAddr, err)
		}
		return store.NewRedisStore(client, cfg.RedisKey, cfg.TTL), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported store type: %v", cfg.Type)
}
