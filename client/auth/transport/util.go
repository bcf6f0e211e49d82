package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

const authorizationHeader = "Authorization"

// rewindable makes the request body re-readable through GetBody so it can be
// replayed after a refresh.
func rewindable(r *http.Request) (*http.Request, error) {
	if r.Body == nil || r.Body == http.NoBody || r.GetBody != nil {
		return r, nil
	}
	buf, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		return nil, err
	}
	ret := r.Clone(r.Context())
	ret.Body = io.NopCloser(bytes.NewReader(buf))
	ret.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(buf)), nil
	}
	return ret, nil
}

// replay clones r with a fresh body for another attempt
func replay(ctx context.Context, r *http.Request) (*http.Request, error) {
	cloned := r.Clone(ctx)
	if r.GetBody != nil && r.Body != nil && r.Body != http.NoBody {
		body, err := r.GetBody()
		if err != nil {
			return nil, err
		}
		cloned.Body = body
	}
	return cloned, nil
}

func bearer(token string) string {
	return "Bearer " + token
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
