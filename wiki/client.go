/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/mikeb26/chesswiki-ratingsbot/internal"
)

// Client talks to a MediaWiki installation through its action API
// (api.php). One Client holds one login session; it is owned by the caller
// and passed explicitly rather than kept as an ambient global.
type Client struct {
	apiURL     string
	httpClient *http.Client

	csrfToken string
}

// NewClient returns a Client for the given api.php endpoint. The client
// carries a cookie jar so that a Login session persists across calls.
func NewClient(apiURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("wiki: unable to create cookie jar: %w", err)
	}

	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Jar: jar},
	}, nil
}

// apiError is the error object MediaWiki embeds in an otherwise 200 response.
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type errEnvelope struct {
	Error *apiError `json:"error"`
}

// call performs one API request and decodes the JSON response into out.
// method is either GET (params sent as query string) or POST (params sent
// as a form body). API-level errors are surfaced as Go errors.
func (c *Client) call(ctx context.Context, method string, params url.Values,
	out any) error {

	params.Set("format", "json")
	params.Set("formatversion", "2")

	var req *http.Request
	var err error
	if method == http.MethodPost {
		req, err = http.NewRequestWithContext(ctx, method, c.apiURL,
			strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method,
			c.apiURL+"?"+params.Encode(), nil)
	}
	if err != nil {
		return fmt.Errorf("wiki: creating %v request: %w", method, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wiki: performing %v %v: %w", method,
			params.Get("action"), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("wiki: unexpected status %d: %s", resp.StatusCode,
			string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("wiki: reading response body: %w", err)
	}

	var envelope errEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("wiki: decoding response JSON: %w", err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("wiki: api error %v: %v", envelope.Error.Code,
			envelope.Error.Info)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("wiki: decoding response JSON: %w", err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	return c.call(ctx, http.MethodGet, params, out)
}

func (c *Client) post(ctx context.Context, params url.Values, out any) error {
	return c.call(ctx, http.MethodPost, params, out)
}

// fetchToken retrieves a token of the given type ("login" or "csrf") from
// meta=tokens.
func (c *Client) fetchToken(ctx context.Context, tokenType string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("meta", "tokens")
	params.Set("type", tokenType)

	var resp struct {
		Query struct {
			Tokens map[string]string `json:"tokens"`
		} `json:"query"`
	}
	if err := c.get(ctx, params, &resp); err != nil {
		return "", err
	}

	token, ok := resp.Query.Tokens[tokenType+"token"]
	if !ok || token == "" {
		return "", fmt.Errorf("wiki: no %v token in response", tokenType)
	}
	return token, nil
}

// Login authenticates with a bot-password credential pair. It must be
// called before EditPage on wikis that disallow anonymous editing.
func (c *Client) Login(ctx context.Context, username, password string) error {
	token, err := c.fetchToken(ctx, "login")
	if err != nil {
		return fmt.Errorf("wiki: fetching login token: %w", err)
	}

	params := url.Values{}
	params.Set("action", "login")
	params.Set("lgname", username)
	params.Set("lgpassword", password)
	params.Set("lgtoken", token)

	var resp struct {
		Login struct {
			Result string `json:"result"`
			Reason string `json:"reason"`
		} `json:"login"`
	}
	if err := c.post(ctx, params, &resp); err != nil {
		return err
	}
	if resp.Login.Result != "Success" {
		return fmt.Errorf("wiki: login failed: %v %v", resp.Login.Result,
			resp.Login.Reason)
	}

	// any token cached before login belongs to the anonymous session
	c.csrfToken = ""

	return nil
}
