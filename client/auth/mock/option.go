package mock

import "time"

type Option func(*PortalService)

// WithUser sets the accepted login credentials
func WithUser(username, password string) Option {
	return func(s *PortalService) {
		s.Username = username
		s.Password = password
	}
}

// WithRefreshDelay delays every refresh response
func WithRefreshDelay(delay time.Duration) Option {
	return func(s *PortalService) {
		s.RefreshDelay = delay
	}
}

// WithAccessTokenTTL sets access token lifetime
func WithAccessTokenTTL(ttl time.Duration) Option {
	return func(s *PortalService) {
		s.AccessTokenTTL = ttl
	}
}
