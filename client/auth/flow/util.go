package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StatusError reports a non-2xx response from an auth endpoint.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v returned %v: %s", e.URL, e.StatusCode, e.Body)
}

func postJSON(ctx context.Context, client *http.Client, URL string, request, response interface{}) error {
	data, err := json.Marshal(request)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, URL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: URL, StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}
	if err = json.Unmarshal(body, response); err != nil {
		return fmt.Errorf("failed to decode %v response: %w", URL, err)
	}
	return nil
}

func bareClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return &http.Client{Transport: http.DefaultTransport}
}
