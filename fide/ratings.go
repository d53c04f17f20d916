/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package fide

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/mikeb26/chesswiki-ratingsbot/internal"
)

// Ratings holds a player's latest published rating triple. A Ratings value
// always has all three fields populated; incomplete data is reported as
// absence instead.
type Ratings struct {
	Classical int
	Rapid     int
	Blitz     int

	// Period is the rating-list period the triple was published for, or the
	// zero time when the source did not include one.
	Period time.Time
}

// historyEntry represents one element of the JSON array returned by the
// rating-history API. Rating fields are numeric-or-null; pointers preserve
// the distinction.
type historyEntry struct {
	Period    string `json:"period"`
	Classical *int   `json:"classical_rating"`
	Rapid     *int   `json:"rapid_rating"`
	Blitz     *int   `json:"blitz_rating"`
}

// LatestRatings returns the most recent complete rating triple for the
// given FIDE id. A nil Ratings with a nil error means the player has no
// complete rating data published (an expected, routine outcome); a non-nil
// error indicates the lookup itself faulted.
func (client *Client) LatestRatings(ctx context.Context,
	fideID string) (*Ratings, error) {

	ratings, err := client.latestViaApi(ctx, fideID)
	if err == nil {
		return ratings, nil
	}

	// prefer the api response; scrape the public profile page only when the
	// api itself is down
	log.Printf("fide: history API failed for id %v: %v; trying profile page",
		fideID, err)

	return client.latestViaProfile(ctx, fideID)
}

// latestViaApi fetches the player's rating history from the JSON API and
// reduces it to the first (most recent) entry.
func (client *Client) latestViaApi(ctx context.Context,
	fideID string) (*Ratings, error) {

	endpoint := fmt.Sprintf("%s?fide_id=%s", client.HistoryURL,
		url.QueryEscape(fideID))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating history request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing history HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected history status %d: %s",
			resp.StatusCode, string(body))
	}

	var entries []historyEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding history JSON: %w", err)
	}

	if len(entries) == 0 {
		return nil, nil
	}

	// entries are ordered most-recent-first
	latest := entries[0]
	if latest.Classical == nil || latest.Rapid == nil || latest.Blitz == nil {
		// never return a partial triple
		return nil, nil
	}

	period, err := internal.ParseDateOrZero(latest.Period)
	if err != nil {
		period = time.Time{}
	}

	return &Ratings{
		Classical: *latest.Classical,
		Rapid:     *latest.Rapid,
		Blitz:     *latest.Blitz,
		Period:    period,
	}, nil
}
