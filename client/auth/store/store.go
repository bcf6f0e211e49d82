package store

import (
	"context"
	"errors"
	"fmt"
)

// Key names a credential store field.
type Key string

const (
	AccessTokenKey  Key = "accessToken"
	RefreshTokenKey Key = "refreshToken"
	UserKey         Key = "user"
)

// Keys lists every field owned by the store.
var Keys = []Key{AccessTokenKey, RefreshTokenKey, UserKey}

// ErrUnknownKey is returned when a field outside Keys is accessed.
var ErrUnknownKey = errors.New("store: unknown credential key")

// Store is a pluggable persistence layer for credentials.
// Get reports false when the field is not set; an empty value is never stored.
type Store interface {
	Get(ctx context.Context, key Key) (string, bool, error)
	Set(ctx context.Context, key Key, value string) error
	Remove(ctx context.Context, key Key) error
}

// Credentials is the full record held by a store.
type Credentials struct {
	AccessToken  string `json:"accessToken,omitempty" yaml:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty" yaml:"refreshToken,omitempty"`
	User         string `json:"user,omitempty" yaml:"user,omitempty"`
}

// Value returns the field named by key.
func (c *Credentials) Value(key Key) string {
	switch key {
	case AccessTokenKey:
		return c.AccessToken
	case RefreshTokenKey:
		return c.RefreshToken
	case UserKey:
		return c.User
	}
	return ""
}

func (c *Credentials) setValue(key Key, value string) error {
	switch key {
	case AccessTokenKey:
		c.AccessToken = value
	case RefreshTokenKey:
		c.RefreshToken = value
	case UserKey:
		c.User = value
	default:
		return fmt.Errorf("%w: %v", ErrUnknownKey, key)
	}
	return nil
}

// IsEmpty returns true when no field is set.
func (c *Credentials) IsEmpty() bool {
	return c.AccessToken == "" && c.RefreshToken == "" && c.User == ""
}

func validKey(key Key) error {
	for _, candidate := range Keys {
		if candidate == key {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrUnknownKey, key)
}

// Save writes every non-empty field of credentials; empty fields are removed.
func Save(ctx context.Context, s Store, credentials *Credentials) error {
	for _, key := range Keys {
		value := credentials.Value(key)
		var err error
		if value == "" {
			err = s.Remove(ctx, key)
		} else {
			err = s.Set(ctx, key, value)
		}
		if err != nil {
			return fmt.Errorf("failed to save %v: %w", key, err)
		}
	}
	return nil
}

// Load reads the full record.
func Load(ctx context.Context, s Store) (*Credentials, error) {
	ret := &Credentials{}
	for _, key := range Keys {
		value, ok, err := s.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load %v: %w", key, err)
		}
		if ok {
			_ = ret.setValue(key, value)
		}
	}
	return ret, nil
}

// Clear removes every field. All removals are attempted; the errors are joined.
func Clear(ctx context.Context, s Store) error {
	var errs []error
	for _, key := range Keys {
		if err := s.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %v: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
