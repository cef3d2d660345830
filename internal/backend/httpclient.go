package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	autherrors "hawk/cli/internal/errors"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "hawk-cli"
	// maxBody caps how much of a response is read into memory.
	maxBody = 1 << 20
)

// HTTP implements API over the server's REST endpoints.
type HTTP struct {
	// endpoints contains absolute URLs for the token and logout resources
	endpoints Endpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	// userAgent is sent with every request
	userAgent string
}

// newHTTP creates a new HTTP client for the given endpoints.
// It configures a 10-second timeout unless opts say otherwise.
func newHTTP(endpoints Endpoints, opts Options) *HTTP {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &HTTP{endpoints: endpoints, client: client, userAgent: ua}
}

// Response is a successful (2xx) server answer.
type Response struct {
	Op         string
	StatusCode int
	Body       []byte
	RequestID  string
}

// LogFields describes the response for the log sink.
func (r *Response) LogFields() map[string]any {
	return map[string]any{
		"op":         r.Op,
		"status":     r.StatusCode,
		"request_id": r.RequestID,
		"body":       strings.TrimSpace(string(r.Body)),
	}
}

// ResponseError is a non-2xx server answer. Payload is the raw body.
type ResponseError struct {
	Op         string
	StatusCode int
	Payload    []byte
	RequestID  string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s failed: %d %s", e.Op, e.StatusCode, strings.TrimSpace(string(e.Payload)))
}

// post sends body to url and returns the 2xx response, or an error wrapping
// *ResponseError for any other status.
func (h *HTTP) post(ctx context.Context, op, url, contentType string, body string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return nil, autherrors.Wrap(autherrors.Transport, op+" request", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json, */*")
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, autherrors.Wrap(autherrors.Transport, op+" request", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, autherrors.Wrap(autherrors.Transport, op+" response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, autherrors.Wrap(autherrors.Rejected, op+" rejected", &ResponseError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Payload:    b,
			RequestID:  requestID,
		})
	}
	return &Response{Op: op, StatusCode: resp.StatusCode, Body: b, RequestID: requestID}, nil
}
