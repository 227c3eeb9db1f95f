// Package linear talks to the Linear GraphQL API.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/joescharf/lnr/internal/paginate"
)

// DefaultEndpoint is the public GraphQL endpoint.
const DefaultEndpoint = "https://api.linear.app/graphql"

// Logger receives verbose request traces. *output.UI satisfies it.
type Logger interface {
	VerboseLog(format string, a ...any)
}

type nopLogger struct{}

func (nopLogger) VerboseLog(string, ...any) {}

// Client is a GraphQL-over-HTTPS client bound to one api key.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint points the client at another GraphQL endpoint.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger sets the verbose request logger.
func WithLogger(l Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient returns a client for apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
		log:        nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
		Type string `json:"type"`
	} `json:"extensions"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

var operationName = regexp.MustCompile(`(?:query|mutation)\s+(\w+)`)

// Request sends one GraphQL document and returns the raw "data" object.
func (c *Client) Request(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	op := "anonymous"
	if m := operationName.FindStringSubmatch(query); m != nil {
		op = m[1]
	}
	if after, ok := variables["after"]; ok {
		c.log.VerboseLog("graphql %s (after %v)", op, after)
	} else {
		c.log.VerboseLog("graphql %s", op)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphql %s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}

	var out graphqlResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode >= 300 {
			return nil, &RequestError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(out.Errors) > 0 {
		return nil, classify(resp.StatusCode, out.Errors)
	}
	if resp.StatusCode >= 300 {
		return nil, &RequestError{StatusCode: resp.StatusCode}
	}
	if len(out.Data) == 0 || string(out.Data) == "null" {
		return nil, fmt.Errorf("%w: no data", ErrMalformedResponse)
	}
	return out.Data, nil
}

// classify maps a GraphQL errors list onto the package's error values.
func classify(status int, errs []graphqlError) error {
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Message
		code := strings.ToUpper(e.Extensions.Code)
		if code == "AUTHENTICATION_ERROR" || strings.EqualFold(e.Extensions.Type, "authentication error") {
			return ErrUnauthorized
		}
	}
	reqErr := &RequestError{StatusCode: status, Messages: messages}
	for _, m := range messages {
		if strings.Contains(strings.ToLower(m), "not found") {
			return fmt.Errorf("%w: %w", ErrNotFound, reqErr)
		}
	}
	return reqErr
}

// paginated walks the connection found at path in each response.
func paginated[T any](ctx context.Context, c *Client, query string, variables map[string]any, path string) ([]T, error) {
	return paginate.All(ctx, func(ctx context.Context, after *string) (paginate.Page[T], error) {
		vars := maps.Clone(variables)
		if vars == nil {
			vars = map[string]any{}
		}
		if after != nil {
			vars["after"] = *after
		}

		data, err := c.Request(ctx, query, vars)
		if err != nil {
			return paginate.Page[T]{}, err
		}
		return extractPage[T](data, path)
	})
}

// extractPage decodes the connection at path. A null parent means the
// entity the connection hangs off does not exist.
func extractPage[T any](data []byte, path string) (paginate.Page[T], error) {
	var page paginate.Page[T]

	conn := gjson.GetBytes(data, path)
	if !conn.Exists() || conn.Type == gjson.Null {
		if i := strings.LastIndex(path, "."); i > 0 {
			if parent := gjson.GetBytes(data, path[:i]); parent.Exists() && parent.Type == gjson.Null {
				return page, fmt.Errorf("%w: %s", ErrNotFound, path[:i])
			}
		}
		return page, fmt.Errorf("%w: missing connection %q", ErrMalformedResponse, path)
	}
	if err := json.Unmarshal([]byte(conn.Raw), &page); err != nil {
		return page, fmt.Errorf("%w: decode %s: %v", ErrMalformedResponse, path, err)
	}
	return page, nil
}

// decodeAt decodes the object at path into v.
func decodeAt(data []byte, path string, v any) error {
	res := gjson.GetBytes(data, path)
	if !res.Exists() || res.Type == gjson.Null {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err := json.Unmarshal([]byte(res.Raw), v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrMalformedResponse, path, err)
	}
	return nil
}
