package flow

import (
	"context"
	"errors"
	"net/http"

	"github.com/viant/portalauth/client/auth/store"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PasswordLogin starts a session with username and password credentials.
type PasswordLogin struct {
	URL    string
	Client *http.Client
	Store  store.Store
}

// Login posts the credentials and persists the issued token pair and user.
func (l *PasswordLogin) Login(ctx context.Context, username, password string) (*Tokens, error) {
	tokens := &Tokens{}
	if err := postJSON(ctx, l.Client, l.URL, &loginRequest{Username: username, Password: password}, tokens); err != nil {
		return nil, err
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return nil, errors.New("login response is missing tokens")
	}
	credentials := &store.Credentials{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}
	if len(tokens.User) > 0 && string(tokens.User) != "null" {
		credentials.User = string(tokens.User)
	}
	if err := store.Save(ctx, l.Store, credentials); err != nil {
		return nil, err
	}
	return tokens, nil
}

func NewPasswordLogin(URL string, client *http.Client, s store.Store) *PasswordLogin {
	return &PasswordLogin{URL: URL, Client: bareClient(client), Store: s}
}
