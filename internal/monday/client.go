package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const (
	// DefaultEndpoint is the public GraphQL API endpoint.
	DefaultEndpoint = "https://api.monday.com/v2"
	// DefaultAPIVersion pins the API schema version sent with every request.
	DefaultAPIVersion = "2024-10"
)

// Client is a thin GraphQL client authenticated with a static bearer token.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiVersion string
}

// Options configures NewClient. Zero values fall back to the defaults.
type Options struct {
	Endpoint   string
	APIVersion string
	Timeout    time.Duration
}

// NewClient creates a GraphQL client that sends token as a bearer credential.
func NewClient(token string, opts Options) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	httpClient := oauth2.NewClient(context.Background(), src)
	if opts.Timeout > 0 {
		httpClient.Timeout = opts.Timeout
	} else {
		httpClient.Timeout = 20 * time.Second
	}

	c := &Client{
		httpClient: httpClient,
		endpoint:   opts.Endpoint,
		apiVersion: opts.APIVersion,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.apiVersion == "" {
		c.apiVersion = DefaultAPIVersion
	}
	return c
}

// GraphQLRequest represents a GraphQL request body.
type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Do executes a GraphQL POST and decodes the data field into out.
// A non-empty errors array in the response is returned as an error.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) error {
	reqBody := GraphQLRequest{Query: query, Variables: variables}
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(reqBody); err != nil {
		return fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("API-Version", c.apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graphql http error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graphql status %d: %s", resp.StatusCode, string(body))
	}

	var wrapper struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
		ErrorMessage string `json:"error_message"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return fmt.Errorf("decode graphql envelope: %w", err)
	}
	if len(wrapper.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", wrapper.Errors[0].Message)
	}
	if wrapper.ErrorMessage != "" {
		return fmt.Errorf("graphql error: %s", wrapper.ErrorMessage)
	}
	if out == nil {
		return nil
	}
	if len(wrapper.Data) == 0 {
		wrapper.Data = json.RawMessage("null")
	}
	if err := json.Unmarshal(wrapper.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}
