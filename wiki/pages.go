/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package wiki

import (
	"context"
	"fmt"
	"net/url"
)

// CategoryMembers returns the titles of every content page in the named
// category, in the wiki's native enumeration order. The category name is
// given without the "Category:" prefix.
func (c *Client) CategoryMembers(ctx context.Context, category string) ([]string, error) {
	var titles []string
	cont := ""

	for {
		params := url.Values{}
		params.Set("action", "query")
		params.Set("list", "categorymembers")
		params.Set("cmtitle", "Category:"+category)
		params.Set("cmtype", "page")
		params.Set("cmlimit", "500")
		if cont != "" {
			params.Set("cmcontinue", cont)
		}

		var resp struct {
			Query struct {
				CategoryMembers []struct {
					PageID int    `json:"pageid"`
					Title  string `json:"title"`
				} `json:"categorymembers"`
			} `json:"query"`
			Continue struct {
				CmContinue string `json:"cmcontinue"`
			} `json:"continue"`
		}
		if err := c.get(ctx, params, &resp); err != nil {
			return nil, fmt.Errorf("wiki: listing category %v: %w", category, err)
		}

		for _, member := range resp.Query.CategoryMembers {
			titles = append(titles, member.Title)
		}

		cont = resp.Continue.CmContinue
		if cont == "" {
			break
		}
	}

	return titles, nil
}

// PageText returns the wikitext of the latest revision of the titled page.
func (c *Client) PageText(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "revisions")
	params.Set("rvprop", "content")
	params.Set("rvslots", "main")
	params.Set("titles", title)

	var resp struct {
		Query struct {
			Pages []struct {
				Title     string `json:"title"`
				Missing   bool   `json:"missing"`
				Revisions []struct {
					Slots struct {
						Main struct {
							Content string `json:"content"`
						} `json:"main"`
					} `json:"slots"`
				} `json:"revisions"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.get(ctx, params, &resp); err != nil {
		return "", fmt.Errorf("wiki: fetching page %v: %w", title, err)
	}

	if len(resp.Query.Pages) == 0 {
		return "", fmt.Errorf("wiki: no page data returned for %v", title)
	}
	page := resp.Query.Pages[0]
	if page.Missing || len(page.Revisions) == 0 {
		return "", fmt.Errorf("wiki: page %v does not exist", title)
	}

	return page.Revisions[0].Slots.Main.Content, nil
}

// EditPage replaces the full text of the titled page in a single save with
// the given edit summary. The CSRF token is fetched lazily on first use and
// reused for the remainder of the session.
func (c *Client) EditPage(ctx context.Context, title, text, summary string) error {
	if c.csrfToken == "" {
		token, err := c.fetchToken(ctx, "csrf")
		if err != nil {
			return fmt.Errorf("wiki: fetching csrf token: %w", err)
		}
		c.csrfToken = token
	}

	params := url.Values{}
	params.Set("action", "edit")
	params.Set("title", title)
	params.Set("text", text)
	params.Set("summary", summary)
	params.Set("bot", "1")
	params.Set("token", c.csrfToken)

	var resp struct {
		Edit struct {
			Result string `json:"result"`
		} `json:"edit"`
	}
	if err := c.post(ctx, params, &resp); err != nil {
		return fmt.Errorf("wiki: saving page %v: %w", title, err)
	}
	if resp.Edit.Result != "Success" {
		return fmt.Errorf("wiki: saving page %v: edit result %v", title,
			resp.Edit.Result)
	}

	return nil
}
