package portalauth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs/url"
	"github.com/viant/portalauth"
	"github.com/viant/portalauth/client/auth/mock"
	"github.com/viant/portalauth/client/auth/store"
	"github.com/viant/portalauth/client/auth/transport"
	"github.com/viant/portalauth/config"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()
	server, err := mock.NewHTTPTestPortalServer()
	require.NoError(t, err)
	defer server.Close()
	mr := miniredis.RunT(t)

	var testCases = []struct {
		description string
		config      *config.Config
	}{
		{
			description: "memory store, json refresh",
			config:      &config.Config{BaseURL: server.URL},
		},
		{
			description: "file store, oauth2 refresh",
			config: &config.Config{
				BaseURL: server.URL,
				OAuth2:  &config.OAuth2{TokenURL: url.Join(server.URL, "token"), ClientID: server.ClientID, ClientSecret: server.ClientSecret},
				Store:   config.Store{Type: config.StoreFile, URL: "mem://localhost/portalauth/client/credentials.json"},
			},
		},
		{
			description: "redis store",
			config: &config.Config{
				BaseURL: server.URL,
				Store:   config.Store{Type: config.StoreRedis, RedisAddr: mr.Addr(), RedisKey: "portal:alice"},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			client, err := portalauth.NewClient(ctx, &portalauth.ClientOptions{Config: testCase.config})
			require.NoError(t, err)
			defer client.Close()

			expired := 0
			client.Coordinator.Subscribe(func(event transport.Event) { expired++ })

			_, err = client.Login(ctx, "alice", "correct-password")
			require.NoError(t, err)

			server.ExpireAccessTokens()
			refreshCalls := server.RefreshCalls()
			resp, err := client.HTTP.Get(url.Join(server.URL, "api/contracts"))
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, refreshCalls+1, server.RefreshCalls())

			client.Logout(ctx)
			assert.Equal(t, 1, expired)
			credentials, err := store.Load(ctx, client.Store)
			require.NoError(t, err)
			assert.True(t, credentials.IsEmpty())

			resp, err = client.HTTP.Get(url.Join(server.URL, "api/contracts"))
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := portalauth.NewClient(context.Background(), &portalauth.ClientOptions{Config: &config.Config{}})
	assert.Error(t, err)
}
