package cli

import (
	"context"
	"net/http"
)

func newRequest(ctx context.Context, URL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
