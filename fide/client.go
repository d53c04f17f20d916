/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package fide

import (
	"context"
	"net/http"
	"time"

	"github.com/mikeb26/chesswiki-ratingsbot/internal"
)

const (
	DefaultHistoryURL = "https://fide-api.vercel.app/player_history/"
	DefaultProfileURL = "https://ratings.fide.com/profile/"
)

// Client fetches player ratings from the FIDE rating-history service, with
// the public profile pages as a fallback when the service is unavailable.
// NewClient fills in all fields with defaults; callers may override them
// before use.
type Client struct {
	// HTTPClient performs all requests. NewClient installs a cached client
	// when the web-cache bucket is reachable, http.DefaultClient otherwise.
	HTTPClient *http.Client

	// HistoryURL is the base endpoint of the rating-history API.
	HistoryURL string

	// ProfileURL is the base of the public profile pages.
	ProfileURL string
}

func NewClient(ctx context.Context) *Client {
	return &Client{
		HTTPClient: internal.NewCachedHttpClient(ctx, 24*time.Hour),
		HistoryURL: DefaultHistoryURL,
		ProfileURL: DefaultProfileURL,
	}
}
