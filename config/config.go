// Package config loads the portalauth client configuration from YAML.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSecret = "secret"

	DefaultLoginPath      = "/auth/login"
	DefaultRefreshPath    = "/auth/refresh"
	DefaultRefreshTimeout = 30 * time.Second
)

// Config represents the client configuration.
type Config struct {
	// BaseURL is the portal backend root; endpoint URLs default relative to it.
	BaseURL    string `yaml:"baseURL" json:"baseURL"`
	LoginURL   string `yaml:"loginURL,omitempty" json:"loginURL,omitempty"`
	RefreshURL string `yaml:"refreshURL,omitempty" json:"refreshURL,omitempty"`
	// OAuth2, when set, refreshes with a refresh_token grant instead of the JSON endpoint.
	OAuth2 *OAuth2 `yaml:"oauth2,omitempty" json:"oauth2,omitempty"`
	// Exclusions are URL substrings that never trigger a refresh.
	Exclusions     []string      `yaml:"exclusions,omitempty" json:"exclusions,omitempty"`
	RefreshTimeout time.Duration `yaml:"refreshTimeout,omitempty" json:"refreshTimeout,omitempty"`
	Store          Store         `yaml:"store" json:"store"`
	Debug          bool          `yaml:"debug,omitempty" json:"debug,omitempty"`
}

// OAuth2 configures the token endpoint client.
type OAuth2 struct {
	TokenURL     string   `yaml:"tokenURL" json:"tokenURL"`
	ClientID     string   `yaml:"clientID" json:"clientID"`
	ClientSecret string   `yaml:"clientSecret,omitempty" json:"clientSecret,omitempty"`
	Scopes       []string `yaml:"scopes,omitempty" json:"scopes,omitempty"`
}

// Store selects the credential store backend.
type Store struct {
	Type string `yaml:"type" json:"type"`
	// URL locates file and secret stores (file://, mem://, ...).
	URL           string        `yaml:"url,omitempty" json:"url,omitempty"`
	EncryptionKey string        `yaml:"encryptionKey,omitempty" json:"encryptionKey,omitempty"`
	RedisAddr     string        `yaml:"redisAddr,omitempty" json:"redisAddr,omitempty"`
	RedisKey      string        `yaml:"redisKey,omitempty" json:"redisKey,omitempty"`
	TTL           time.Duration `yaml:"ttl,omitempty" json:"ttl,omitempty"`
}

// Init fills defaults.
func (c *Config) Init() {
	if c.BaseURL != "" {
		if c.LoginURL == "" {
			c.LoginURL = url.Join(c.BaseURL, strings.TrimPrefix(DefaultLoginPath, "/"))
		}
		if c.RefreshURL == "" && c.OAuth2 == nil {
			c.RefreshURL = url.Join(c.BaseURL, strings.TrimPrefix(DefaultRefreshPath, "/"))
		}
	}
	if len(c.Exclusions) == 0 {
		c.Exclusions = []string{DefaultLoginPath, DefaultRefreshPath}
		if c.OAuth2 != nil && c.OAuth2.TokenURL != "" {
			c.Exclusions = append(c.Exclusions, c.OAuth2.TokenURL)
		}
	}
	if c.RefreshTimeout == 0 {
		c.RefreshTimeout = DefaultRefreshTimeout
	}
	if c.Store.Type == "" {
		c.Store.Type = StoreMemory
	}
	c.Store.Type = strings.ToLower(c.Store.Type)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.RefreshURL == "" && (c.OAuth2 == nil || c.OAuth2.TokenURL == "") {
		errs = append(errs, errors.New("refreshURL or oauth2.tokenURL is required"))
	}
	if c.OAuth2 != nil && c.OAuth2.ClientID == "" {
		errs = append(errs, errors.New("oauth2.clientID is required"))
	}
	if c.RefreshTimeout < 0 {
		errs = append(errs, fmt.Errorf("invalid refreshTimeout: %v", c.RefreshTimeout))
	}
	switch c.Store.Type {
	case StoreMemory:
	case StoreFile, StoreSecret:
		if c.Store.URL == "" {
			errs = append(errs, fmt.Errorf("store.url is required for %v store", c.Store.Type))
		}
	case StoreRedis:
		if c.Store.RedisAddr == "" {
			errs = append(errs, errors.New("store.redisAddr is required for redis store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported store type: %v", c.Store.Type))
	}
	return errors.Join(errs...)
}

// Parse decodes YAML, fills defaults and validates.
func Parse(data []byte) (*Config, error) {
	ret := &Config{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	ret.Init()
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Load reads configuration from any afs URL.
func Load(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	return Parse(data)
}
