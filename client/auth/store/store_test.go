package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	ctx := context.Background()
	var testCases = []struct {
		description string
		newStore    func(t *testing.T) Store
	}{
		{
			description: "memory",
			newStore: func(t *testing.T) Store {
				return NewMemoryStore()
			},
		},
		{
			description: "afs file",
			newStore: func(t *testing.T) Store {
				ret, err := NewFileStore(ctx, "mem://localhost/portalauth/"+t.Name()+"/credentials.json")
				require.NoError(t, err)
				return ret
			},
		},
		{
			description: "redis",
			newStore: func(t *testing.T) Store {
				mr := miniredis.RunT(t)
				client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
				t.Cleanup(func() { _ = client.Close() })
				return NewRedisStore(client, "test:credentials", time.Hour)
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			s := testCase.newStore(t)

			_, ok, err := s.Get(ctx, AccessTokenKey)
			require.NoError(t, err)
			assert.False(t, ok, "empty store")

			require.NoError(t, Save(ctx, s, &Credentials{AccessToken: "a1", RefreshToken: "r1", User: `{"name":"alice"}`}))
			actual, err := Load(ctx, s)
			require.NoError(t, err)
			assert.EqualValues(t, &Credentials{AccessToken: "a1", RefreshToken: "r1", User: `{"name":"alice"}`}, actual)

			require.NoError(t, s.Set(ctx, AccessTokenKey, "a2"))
			value, ok, err := s.Get(ctx, AccessTokenKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "a2", value)

			require.NoError(t, s.Remove(ctx, RefreshTokenKey))
			_, ok, err = s.Get(ctx, RefreshTokenKey)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, Clear(ctx, s))
			require.NoError(t, Clear(ctx, s), "clear is idempotent")
			actual, err = Load(ctx, s)
			require.NoError(t, err)
			assert.True(t, actual.IsEmpty())

			_, _, err = s.Get(ctx, Key("password"))
			assert.ErrorIs(t, err, ErrUnknownKey)
		})
	}
}

func TestSharedURL(t *testing.T) {
	ctx := context.Background()
	var testCases = []struct {
		description string
		newStore    func(t *testing.T, URL string) Store
	}{
		{
			description: "file store",
			newStore: func(t *testing.T, URL string) Store {
				ret, err := NewFileStore(ctx, URL)
				require.NoError(t, err)
				return ret
			},
		},
		{
			description: "secret store",
			newStore: func(t *testing.T, URL string) Store {
				ret, err := NewSecretStore(ctx, URL, "")
				require.NoError(t, err)
				return ret
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			URL := "mem://localhost/portalauth/shared/" + t.Name() + "/credentials"
			first := testCase.newStore(t, URL)
			require.NoError(t, Save(ctx, first, &Credentials{AccessToken: "a1", RefreshToken: "r1"}))
			second := testCase.newStore(t, URL)

			require.NoError(t, second.Set(ctx, RefreshTokenKey, "r2"))
			value, ok, err := first.Get(ctx, RefreshTokenKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "r2", value, "rotation by another store is visible")

			require.NoError(t, first.Set(ctx, AccessTokenKey, "a9"))
			actual, err := Load(ctx, testCase.newStore(t, URL))
			require.NoError(t, err)
			assert.Equal(t, "a9", actual.AccessToken)
			assert.Equal(t, "r2", actual.RefreshToken, "writes keep fields set elsewhere")

			require.NoError(t, Clear(ctx, second))
			_, ok, err = first.Get(ctx, AccessTokenKey)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSecretStore(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/portalauth/secret/credentials.enc"
	first, err := NewSecretStore(ctx, URL, "")
	require.NoError(t, err)
	require.NoError(t, Save(ctx, first, &Credentials{AccessToken: "a1", RefreshToken: "r1", User: "bob"}))

	second, err := NewSecretStore(ctx, URL, DefaultEncryptionKey)
	require.NoError(t, err)
	actual, err := Load(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "r1", actual.RefreshToken)
	assert.Equal(t, "bob", actual.User)
}

func TestMemoryStore_WithCredentials(t *testing.T) {
	s := NewMemoryStore(WithCredentials(&Credentials{RefreshToken: "r1"}))
	_, ok, err := s.Get(context.Background(), AccessTokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
	value, ok, err := s.Get(context.Background(), RefreshTokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "r1", value)
}
