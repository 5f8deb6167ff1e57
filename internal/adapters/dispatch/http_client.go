package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"journey-dispatch-service/internal/domain"
	"journey-dispatch-service/internal/platform/obs"
	"journey-dispatch-service/internal/ports"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient implements DispatchClient against the remote dispatch API.
//
// It owns wire-format mapping, authentication headers, and retry with
// exponential backoff for transient failures. Safe for concurrent use.
type HTTPClient struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewHTTPClient(baseURL, apiKey string) (*HTTPClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("dispatch client: base URL is empty")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("dispatch client: api key is empty")
	}

	return &HTTPClient{
		session: &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// SubmitJourney POSTs a new journey envelope.
func (c *HTTPClient) SubmitJourney(ctx context.Context, envelope *domain.JourneyEnvelope) (_ *ports.DispatchResult, err error) {
	defer obs.Time(ctx, "dispatch.submit")(&err)

	return c.send(ctx, http.MethodPost, c.baseURL+"/journeys", envelope)
}

// UpdateJourney PUTs an envelope onto an existing remote journey.
func (c *HTTPClient) UpdateJourney(ctx context.Context, journeyServerID string, envelope *domain.JourneyEnvelope) (_ *ports.DispatchResult, err error) {
	defer obs.Time(ctx, "dispatch.update")(&err)

	if strings.TrimSpace(journeyServerID) == "" {
		return nil, errors.New("update journey: journey server id must not be empty")
	}

	endpoint := c.baseURL + "/journeys/" + url.PathEscape(journeyServerID)
	return c.send(ctx, http.MethodPut, endpoint, envelope)
}

func (c *HTTPClient) send(ctx context.Context, method, endpoint string, envelope *domain.JourneyEnvelope) (*ports.DispatchResult, error) {
	if envelope == nil {
		return nil, errors.New("dispatch client: envelope must not be nil")
	}

	body, err := json.Marshal(toWire(envelope))
	if err != nil {
		return nil, fmt.Errorf("dispatch client: encode envelope: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, method, endpoint, bytes.NewReader(body))
	})
	if err != nil {
		return nil, fmt.Errorf("dispatch client: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	var wire wireResult
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("dispatch client: decode response: %w", err)
	}

	return fromWire(&wire), nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx)
// using exponential backoff while respecting context cancellation.
func (c *HTTPClient) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("dispatch API status %d: %s", e.Code, e.Body)
}
