package flow

import (
	"context"
	"errors"
	"net/http"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// JSONRefresher calls a portal refresh endpoint:
// POST {"refreshToken": "..."} -> {"accessToken": "...", "refreshToken": "..."}.
type JSONRefresher struct {
	URL    string
	Client *http.Client
}

func (r *JSONRefresher) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	tokens := &Tokens{}
	if err := postJSON(ctx, r.Client, r.URL, &refreshRequest{RefreshToken: refreshToken}, tokens); err != nil {
		return nil, err
	}
	if tokens.AccessToken == "" {
		return nil, errors.New("refresh response has no access token")
	}
	return tokens, nil
}

// NewJSONRefresher creates a refresher for URL; a nil client uses a bare
// client over http.DefaultTransport.
func NewJSONRefresher(URL string, client *http.Client) *JSONRefresher {
	return &JSONRefresher{URL: URL, Client: bareClient(client)}
}
