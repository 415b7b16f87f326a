// Package api is a client for the cloud security policy API: it logs in with
// a client id and secret and pages through the policy listing.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rshade/policyexport/internal/logging"
)

// DefaultPageSize is the listing page size used when Options.PageSize is zero.
const DefaultPageSize = 10

// maxErrorBody bounds how much of a failed response is kept in StatusError.
const maxErrorBody = 512

// Options configures a Client.
type Options struct {
	LoginURL    string
	PoliciesURL string
	PageSize    int
	// Timeout bounds each request; zero means no client-side timeout.
	Timeout time.Duration
}

// Client talks to the policy API. It holds no session state; the token is
// passed explicitly to the listing calls.
type Client struct {
	HTTPClient  *http.Client
	loginURL    string
	policiesURL string
	pageSize    int
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Client{
		HTTPClient:  &http.Client{Timeout: opts.Timeout},
		loginURL:    opts.LoginURL,
		policiesURL: opts.PoliciesURL,
		pageSize:    pageSize,
	}
}

// Login exchanges the credentials for a session token (the "jwt" field of the
// login response). Any failure is final; there is no retry.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	log := logging.FromContext(ctx)

	payload, err := json.Marshal(loginRequest{ClientID: creds.ClientID, Secret: creds.Secret})
	if err != nil {
		return "", fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debug().Ctx(ctx).Str("url", c.loginURL).Str("client_id", creds.ClientID).Msg("logging in")

	var body loginResponse
	if err := c.do(req, c.loginURL, &body); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if body.JWT == nil || *body.JWT == "" {
		return "", fmt.Errorf("login: %w", &MalformedResponseError{Endpoint: c.loginURL, Field: "jwt"})
	}

	log.Debug().Ctx(ctx).Msg("login succeeded")
	return *body.JWT, nil
}

// Pages returns a lazy sequence of listing pages, starting at page 1. The
// sequence ends after the page whose number reaches meta.totalPages, or after
// yielding the first error.
func (c *Client) Pages(ctx context.Context, token string) iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		if token == "" {
			yield(Page{}, ErrEmptyToken)
			return
		}

		for number := 1; ; number++ {
			page, err := c.fetchPage(ctx, token, number)
			if err != nil {
				yield(Page{}, fmt.Errorf("fetching page %d: %w", number, err))
				return
			}
			if !yield(page, nil) {
				return
			}
			if number >= page.TotalPages {
				return
			}
		}
	}
}

// ListPolicies consumes Pages into one slice, preserving arrival order.
func (c *Client) ListPolicies(ctx context.Context, token string) ([]Policy, error) {
	log := logging.FromContext(ctx)

	var all []Policy
	for page, err := range c.Pages(ctx, token) {
		if err != nil {
			return nil, err
		}
		all = append(all, page.Policies...)
		log.Info().Ctx(ctx).
			Int("page", page.Number).
			Int("total_pages", page.TotalPages).
			Int("page_policies", len(page.Policies)).
			Int("accumulated", len(all)).
			Msg("fetched policy page")
	}
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, token string, number int) (Page, error) {
	u, err := url.Parse(c.policiesURL)
	if err != nil {
		return Page{}, fmt.Errorf("parsing policies URL: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(number))
	q.Set("limit", strconv.Itoa(c.pageSize))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Page{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var body pageResponse
	if err := c.do(req, c.policiesURL, &body); err != nil {
		return Page{}, err
	}
	if body.Meta == nil {
		return Page{}, &MalformedResponseError{Endpoint: c.policiesURL, Field: "meta"}
	}
	if body.Meta.TotalPages == nil {
		return Page{}, &MalformedResponseError{Endpoint: c.policiesURL, Field: "meta.totalPages"}
	}

	return Page{
		Number:     number,
		TotalPages: *body.Meta.TotalPages,
		Policies:   body.Policies,
	}, nil
}

// do sends req and decodes a 2xx JSON body into out.
func (c *Client) do(req *http.Request, endpoint string, out any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &MalformedResponseError{Endpoint: endpoint, Err: err}
	}
	return nil
}
