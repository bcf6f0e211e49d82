package flow

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// OAuth2Refresher performs a refresh_token grant against an OAuth2 token endpoint.
type OAuth2Refresher struct {
	Config *oauth2.Config
	Client *http.Client
}

func (r *OAuth2Refresher) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, r.Client)
	// expired token forces the token source to hit the endpoint
	source := r.Config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken, Expiry: time.Now().Add(-time.Minute)})
	token, err := source.Token()
	if err != nil {
		return nil, err
	}
	ret := &Tokens{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}
	// preserve refresh token if provider omitted it
	if ret.RefreshToken == "" {
		ret.RefreshToken = refreshToken
	}
	return ret, nil
}

// NewOAuth2Refresher creates a refresher for the token endpoint in config.
func NewOAuth2Refresher(config *oauth2.Config, client *http.Client) *OAuth2Refresher {
	return &OAuth2Refresher{Config: config, Client: bareClient(client)}
}
