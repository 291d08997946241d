package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "auwalk/pkg/errors"

	"github.com/google/uuid"
)

// Client posts credentials to a single login URL. It never retries.
type Client struct {
	httpClient *http.Client
	loginURL   string
}

// NewClient builds a Client for loginURL. A zero timeout leaves the
// http.Client default in place, which never times out.
func NewClient(loginURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		loginURL:   loginURL,
	}
}

// NewClientWithHTTP lets callers supply their own transport.
func NewClientWithHTTP(loginURL string, httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient, loginURL: loginURL}
}

// Login sends creds once and classifies the response. Non-2xx statuses are
// ordinary results.
func (c *Client) Login(ctx context.Context, creds Credentials) Result {
	start := time.Now()
	res := Result{RequestID: uuid.NewString()}

	payload, err := json.Marshal(creds)
	if err != nil {
		return c.fail(&res, start, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, bytes.NewReader(payload))
	if err != nil {
		return c.fail(&res, start, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", res.RequestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(&res, start, err)
	}
	defer resp.Body.Close()

	res.StatusCode = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(&res, start, fmt.Errorf("reading response body: %w", err))
	}

	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		res.Outcome = OutcomeDecodeError
		res.Raw = body
		res.Err = apperrors.Mark(err, apperrors.ErrDecode)
		res.Duration = time.Since(start)
		return res
	}

	res.Outcome = OutcomeOK
	res.Body = json.RawMessage(body)
	res.Duration = time.Since(start)
	return res
}

func (c *Client) fail(res *Result, start time.Time, err error) Result {
	res.Outcome = OutcomeTransportError
	res.Err = apperrors.Mark(err, apperrors.ErrTransport)
	res.Duration = time.Since(start)
	return *res
}
