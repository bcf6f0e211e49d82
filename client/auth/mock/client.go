package mock

import (
	"github.com/viant/afs/url"
	"golang.org/x/oauth2"
)

// NewTestClient returns an oauth2 config pointing at the mock token endpoint.
func NewTestClient(issuer string) *oauth2.Config {
	return &oauth2.Config{ClientID: "test_client_id", ClientSecret: "test_client_secret", Endpoint: oauth2.Endpoint{
		TokenURL:  url.Join(issuer, "token"),
		AuthStyle: oauth2.AuthStyleInHeader,
	}}
}
