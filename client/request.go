package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError is returned for any non-2xx backend response.
type StatusError struct {
	Code int
	Body string
}

func (e StatusError) NotFound() bool { return e.Code == 404 }

func (e StatusError) Error() string {
	return fmt.Sprintf("http status: %d: %q", e.Code, e.Body)
}

func (c *DefaultClient) getResource(ctx context.Context, result interface{}, path string) error {
	return c.reqWithMethodAndPayload(ctx, http.MethodGet, path, result, nil)
}

func (c *DefaultClient) postResource(ctx context.Context, resource interface{}, result interface{}, path string) error {
	return c.reqWithMethodAndPayload(ctx, http.MethodPost, path, result, resource)
}

// getString fetches a resource whose body is a bare string rather than a
// JSON document. The backend returns playback URLs either as raw text or as
// a JSON-encoded string depending on the gateway; both are accepted.
func (c *DefaultClient) getString(ctx context.Context, path string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if err := checkStatus(resp, b); err != nil {
		return "", err
	}

	body := strings.TrimSpace(string(b))
	if strings.HasPrefix(body, `"`) {
		var s string
		if err := json.Unmarshal([]byte(body), &s); err == nil {
			return s, nil
		}
	}
	return body, nil
}

func (c *DefaultClient) reqWithMethodAndPayload(ctx context.Context, method string, path string, result interface{}, reqBody interface{}) error {
	var body io.Reader
	if reqBody != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(reqBody); err != nil {
			return err
		}
		body = buf
	}

	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := checkStatus(resp, b); err != nil {
		return err
	}

	return json.Unmarshal(b, result)
}

func (c *DefaultClient) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL.String()+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(ctx, req)

	return c.Client.Do(req)
}

// authorize attaches a bearer token when the source has one. A missing token
// or a token lookup error downgrades the request to unauthenticated rather
// than failing it.
func (c *DefaultClient) authorize(ctx context.Context, req *http.Request) {
	token, err := c.Tokens.Token(ctx)
	if err != nil {
		if c.Log != nil {
			c.Log.WithError(err).Debug("token lookup failed, proceeding unauthenticated")
		}
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func checkStatus(resp *http.Response, body []byte) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return nil
}
