// Package portalauth provides an HTTP client for the internal portal backend
// that keeps the session alive on its own.
//
// NewClient wires the pieces from configuration: a credential store
// (memory, file, Redis or encrypted), a refresher for the portal refresh
// endpoint or an OAuth2 token endpoint, and the token refresh coordinator
// from client/auth/transport. Requests made through Client.HTTP carry the
// stored bearer token; expired tokens are refreshed once, with concurrent
// failures sharing a single refresh call.
//
// Example:
//
//	cfg, _ := config.Load(ctx, "file://localhost/etc/portal/auth.yaml")
//	cli, _ := portalauth.NewClient(ctx, &portalauth.ClientOptions{Config: cfg})
//	_, _ = cli.Login(ctx, "alice", "secret")
//	resp, _ := cli.HTTP.Get("https://portal.local/api/contracts")
package portalauth
