package fulfillment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// baseClient is the shared fire-and-wait HTTP plumbing for the downstream
// collaborators. Every call carries the caller's context deadline.
type baseClient struct {
	http    *http.Client
	baseURL string
}

func newBaseClient(baseURL string, timeout time.Duration) baseClient {
	return baseClient{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (c *baseClient) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *baseClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *baseClient) do(req *http.Request, out interface{}) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("collaborator %s returned status %d: %s", req.URL.Path, res.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(raw, out)
}
