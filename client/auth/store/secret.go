package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/scy"
	_ "github.com/viant/scy/kms/blowfish"
)

// DefaultEncryptionKey uses scy's built-in blowfish key.
const DefaultEncryptionKey = "blowfish://default"

// SecretStore persists the credential record encrypted with scy at an afs URL.
// Like FileStore it decrypts the record on every access.
type SecretStore struct {
	mu      sync.Mutex
	URL     string
	Key     string
	secrets *scy.Service
	fs      afs.Service
}

func (s *SecretStore) Get(ctx context.Context, key Key) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	credentials, err := s.load(ctx)
	if err != nil {
		return "", false, err
	}
	value := credentials.Value(key)
	return value, value != "", nil
}

func (s *SecretStore) Set(ctx context.Context, key Key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	credentials, err := s.load(ctx)
	if err != nil {
		return err
	}
	if credentials.Value(key) == value {
		return nil
	}
	_ = credentials.setValue(key, value)
	return s.save(ctx, credentials)
}

func (s *SecretStore) Remove(ctx context.Context, key Key) error {
	return s.Set(ctx, key, "")
}

func (s *SecretStore) resource() *scy.Resource {
	return scy.NewResource(&Credentials{}, s.URL, s.Key)
}

func (s *SecretStore) save(ctx context.Context, credentials *Credentials) error {
	secret := scy.NewSecret(credentials, s.resource())
	if err := s.secrets.Store(ctx, secret); err != nil {
		return fmt.Errorf("failed to store secret %v: %w", s.URL, err)
	}
	return nil
}

func (s *SecretStore) load(ctx context.Context) (*Credentials, error) {
	if exists, err := s.fs.Exists(ctx, s.URL); err != nil || !exists {
		return &Credentials{}, err
	}
	secret, err := s.secrets.Load(ctx, s.resource())
	if err != nil {
		return nil, fmt.Errorf("failed to load secret %v: %w", s.URL, err)
	}
	switch actual := secret.Target.(type) {
	case *Credentials:
		return actual, nil
	case Credentials:
		return &actual, nil
	}
	return nil, fmt.Errorf("unexpected secret type %T at %v", secret.Target, s.URL)
}

// NewSecretStore creates an encrypted store at URL using the scy key (for
// example "blowfish://default"); an empty key selects DefaultEncryptionKey.
func NewSecretStore(ctx context.Context, URL, key string) (*SecretStore, error) {
	if key == "" {
		key = DefaultEncryptionKey
	}
	ret := &SecretStore{URL: URL, Key: key, secrets: scy.New(), fs: afs.New()}
	if _, err := ret.load(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}
