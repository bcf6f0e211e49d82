package transport

import (
	"context"
	"net/http"

	"github.com/viant/portalauth/client/auth/store"
)

func (c *Coordinator) RoundTrip(req *http.Request) (*http.Response, error) {
	req, err := rewindable(req)
	if err != nil {
		return nil, err
	}
	retried := IsRetried(req.Context())
	sent := req
	if !retried || req.Header.Get(authorizationHeader) == "" {
		sent = c.AttachToken(req)
	}
	resp, err := c.transport.RoundTrip(sent)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	if retried {
		c.logger.WithError(ErrRetryExhausted).WithField("url", req.URL.String()).Warn("replayed request rejected")
		c.ForceLogout(req.Context())
		return resp, nil
	}
	if c.exclusions.Match(req.URL.String()) {
		return resp, nil
	}
	return c.HandleUnauthorized(req, resp)
}

// HandleUnauthorized refreshes the token pair and replays req once through
// RoundTrip with the new access token. If the refresh fails, resp (the
// original 401) is returned unchanged. When the store already holds a different token than the one the
// failed request carried, a refresh completed in the meantime and req is
// replayed with that token instead.
func (c *Coordinator) HandleUnauthorized(req *http.Request, resp *http.Response) (*http.Response, error) {
	retry, err := replay(WithRetried(req.Context()), req)
	if err != nil {
		return resp, nil
	}
	token, ok := c.newerToken(req.Context(), resp)
	if !ok {
		token, err = c.Refresh(req.Context())
	}
	if err != nil {
		c.logger.WithError(err).WithField("url", req.URL.String()).Debug("unable to recover from 401")
		if retry.Body != nil {
			_ = retry.Body.Close()
		}
		return resp, nil
	}
	drain(resp)
	// a retried request keeps this header and a second 401 ends the session
	retry.Header.Set(authorizationHeader, bearer(token))
	return c.RoundTrip(retry)
}

func (c *Coordinator) newerToken(ctx context.Context, failed *http.Response) (string, bool) {
	if failed.Request == nil {
		return "", false
	}
	token, ok, err := c.store.Get(ctx, store.AccessTokenKey)
	if err != nil || !ok || bearer(token) == failed.Request.Header.Get(authorizationHeader) {
		return "", false
	}
	return token, true
}
