// Package ticketing implements ports.ThreadProvider over the support desk's
// REST API. One thread per order; the correlation itself is owned by the
// application layer, this client only creates threads and appends comments.
package ticketing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"buyback/internal/core/ports"
	"buyback/internal/pkg/errs"
)

const requestTimeout = 15 * time.Second

// Client talks to the ticketing service. Create it via NewClient.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a ticketing client for the given base URL, authenticating
// every request with the bearer token.
func NewClient(baseURL, token string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("base URL")
	}
	if token == "" {
		return nil, errs.NewValueIsRequiredError("token")
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

type createThreadRequest struct {
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	Visibility     string `json:"visibility"`
}

type createThreadResponse struct {
	ThreadID string `json:"thread_id"`
}

type appendCommentRequest struct {
	Body       string `json:"body"`
	Visibility string `json:"visibility"`
}

// CreateThread opens a conversation thread and returns its external ID.
func (c *Client) CreateThread(ctx context.Context, thread ports.NewThread) (string, error) {
	payload := createThreadRequest{
		RequesterName:  thread.RequesterName,
		RequesterEmail: thread.RequesterEmail,
		Subject:        thread.Subject,
		Body:           thread.Body,
		Visibility:     visibilityString(thread.Visibility),
	}

	var resp createThreadResponse
	if err := c.post(ctx, "/threads", payload, &resp); err != nil {
		return "", err
	}

	if resp.ThreadID == "" {
		return "", fmt.Errorf("ticketing: create thread returned an empty thread id")
	}

	return resp.ThreadID, nil
}

// AppendComment adds a message to an existing thread.
func (c *Client) AppendComment(
	ctx context.Context, threadID, body string, visibility ports.ThreadVisibility,
) error {
	if threadID == "" {
		return errs.NewValueIsRequiredError("thread ID")
	}

	payload := appendCommentRequest{
		Body:       body,
		Visibility: visibilityString(visibility),
	}

	return c.post(ctx, "/threads/"+threadID+"/comments", payload, nil)
}

// post sends a JSON body and decodes the JSON response into out when out is
// non-nil. Any non-2xx status is an error.
func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ticketing: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("ticketing: %s returned status %d", path, resp.StatusCode)
	}

	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("ticketing: decode %s response: %w", path, err)
		}
	}

	return nil
}

func visibilityString(v ports.ThreadVisibility) string {
	if v == ports.VisibilityInternal {
		return "internal"
	}
	return "public"
}
