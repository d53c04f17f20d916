/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package fide

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/chesswiki-ratingsbot/internal"
)

// latestViaProfile scrapes the player's public profile page for the three
// current ratings. The same all-or-nothing rule applies: if any of the
// three ratings is missing or unrated, the result is absent.
func (client *Client) latestViaProfile(ctx context.Context,
	fideID string) (*Ratings, error) {

	req, err := http.NewRequestWithContext(ctx, "GET",
		client.ProfileURL+fideID, nil)
	if err != nil {
		return nil, fmt.Errorf("creating profile request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing profile HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected profile status %d for id %v",
			resp.StatusCode, fideID)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing profile HTML: %w", err)
	}

	return parseProfileRatings(doc), nil
}

// parseProfileRatings pulls the rating blocks out of a profile document.
// Each block reads like "std 2839" / "rapid 2821" / "blitz 2886"; an
// unrated discipline shows a non-numeric placeholder instead.
func parseProfileRatings(doc *goquery.Document) *Ratings {
	var classical, rapid, blitz *int

	doc.Find(".profile-top-rating-data").Each(func(_ int, s *goquery.Selection) {
		fields := strings.Fields(s.Text())
		if len(fields) < 2 {
			return
		}
		value, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			return
		}
		switch strings.ToLower(fields[0]) {
		case "std":
			classical = &value
		case "rapid":
			rapid = &value
		case "blitz":
			blitz = &value
		}
	})

	if classical == nil || rapid == nil || blitz == nil {
		return nil
	}

	return &Ratings{
		Classical: *classical,
		Rapid:     *rapid,
		Blitz:     *blitz,
	}
}
