package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/viant/afs"
)

// FileStore persists the credential record as JSON at an afs URL
// (file://, mem:// or any other registered scheme). Nothing is cached: every
// Get reads the record and every Set updates one field of a freshly read
// record, so stores sharing a URL observe each other's writes.
type FileStore struct {
	mu  sync.Mutex
	URL string
	fs  afs.Service
}

func (f *FileStore) Get(ctx context.Context, key Key) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	credentials, err := f.load(ctx)
	if err != nil {
		return "", false, err
	}
	value := credentials.Value(key)
	return value, value != "", nil
}

func (f *FileStore) Set(ctx context.Context, key Key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	credentials, err := f.load(ctx)
	if err != nil {
		return err
	}
	if credentials.Value(key) == value {
		return nil
	}
	_ = credentials.setValue(key, value)
	return f.save(ctx, credentials)
}

func (f *FileStore) Remove(ctx context.Context, key Key) error {
	return f.Set(ctx, key, "")
}

// ---- persistence ----

func (f *FileStore) save(ctx context.Context, credentials *Credentials) error {
	data, err := json.MarshalIndent(credentials, "", "  ")
	if err != nil {
		return err
	}
	if err = f.fs.Upload(ctx, f.URL, 0o600, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write credentials %v: %w", f.URL, err)
	}
	return nil
}

func (f *FileStore) load(ctx context.Context) (*Credentials, error) {
	ret := &Credentials{}
	exists, err := f.fs.Exists(ctx, f.URL)
	if err != nil || !exists {
		return ret, err
	}
	data, err := f.fs.DownloadWithURL(ctx, f.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials %v: %w", f.URL, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ret, nil
	}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode credentials %v: %w", f.URL, err)
	}
	return ret, nil
}

// NewFileStore creates a Store persisted at URL. A missing record reads as empty;
// an unreadable one fails here.
func NewFileStore(ctx context.Context, URL string) (*FileStore, error) {
	ret := &FileStore{URL: URL, fs: afs.New()}
	if _, err := ret.load(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}
