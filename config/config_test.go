package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestParse(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      *Config
		expectErr   string
	}{
		{
			description: "defaults from base url",
			input:       "baseURL: https://portal.local\n",
			expect: &Config{
				BaseURL:        "https://portal.local",
				LoginURL:       "https://portal.local/auth/login",
				RefreshURL:     "https://portal.local/auth/refresh",
				Exclusions:     []string{"/auth/login", "/auth/refresh"},
				RefreshTimeout: DefaultRefreshTimeout,
				Store:          Store{Type: StoreMemory},
			},
		},
		{
			description: "oauth2 with redis store",
			input: `
baseURL: https://portal.local
oauth2:
  tokenURL: https://sso.local/token
  clientID: portal
refreshTimeout: 5s
store:
  type: Redis
  redisAddr: localhost:6379
  ttl: 24h
`,
			expect: &Config{
				BaseURL:        "https://portal.local",
				LoginURL:       "https://portal.local/auth/login",
				OAuth2:         &OAuth2{TokenURL: "https://sso.local/token", ClientID: "portal"},
				Exclusions:     []string{"/auth/login", "/auth/refresh", "https://sso.local/token"},
				RefreshTimeout: 5 * time.Second,
				Store:          Store{Type: StoreRedis, RedisAddr: "localhost:6379", TTL: 24 * time.Hour},
			},
		},
		{
			description: "missing refresh endpoint",
			input:       "debug: true\n",
			expectErr:   "refreshURL or oauth2.tokenURL is required",
		},
		{
			description: "file store without url",
			input:       "refreshURL: https://portal.local/auth/refresh\nstore:\n  type: file\n",
			expectErr:   "store.url is required",
		},
		{
			description: "unknown store",
			input:       "refreshURL: https://portal.local/auth/refresh\nstore:\n  type: browser\n",
			expectErr:   "unsupported store type",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := Parse([]byte(testCase.input))
			if testCase.expectErr != "" {
				require.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), testCase.expectErr), err.Error())
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, testCase.expect, actual)
		})
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/portalauth/config.yaml"
	fs := afs.New()
	require.NoError(t, fs.Upload(ctx, URL, 0o644, strings.NewReader("baseURL: https://portal.local\nstore:\n  type: file\n  url: mem://localhost/portalauth/credentials.json\n")))
	actual, err := Load(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, StoreFile, actual.Store.Type)
	assert.Equal(t, "https://portal.local/auth/refresh", actual.RefreshURL)

	_, err = Load(ctx, "mem://localhost/portalauth/missing.yaml")
	assert.Error(t, err)
}
