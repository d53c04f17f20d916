/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bot

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/chesswiki-ratingsbot/fide"
	"github.com/mikeb26/chesswiki-ratingsbot/wiki"
)

const reportFetchLimit = 8

// Report builds a read-only summary of the latest ratings for every player
// page in the named category. Rating lookups run concurrently; no wiki
// write ever occurs on this path.
func (b *Bot) Report(ctx context.Context, category string) (string, error) {
	titles, err := b.Wiki.CategoryMembers(ctx, category)
	if err != nil {
		return "", fmt.Errorf("bot: unable to enumerate category %v: %w",
			category, err)
	}

	type row struct {
		fideID  string
		ratings *fide.Ratings
		err     error
	}
	rows := make([]row, len(titles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(reportFetchLimit)
	for idx, title := range titles {
		idx, title := idx, title
		g.Go(func() error {
			text, err := b.Wiki.PageText(ctx, title)
			if err != nil {
				return fmt.Errorf("bot: error reading page '%v': %w", title,
					err)
			}
			fideID, ok := wiki.FideID(text)
			if !ok {
				return nil
			}
			rows[idx].fideID = fideID
			rows[idx].ratings, rows[idx].err =
				b.Fide.LatestRatings(ctx, fideID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Category: %v (%v pages)\n\n", category,
		len(titles)))
	for idx, title := range titles {
		r := rows[idx]
		switch {
		case r.fideID == "":
			sb.WriteString(fmt.Sprintf("%v: no fide parameter\n", title))
		case r.err != nil:
			sb.WriteString(fmt.Sprintf("%v (fide:%v): lookup failed: %v\n",
				title, r.fideID, r.err))
		case r.ratings == nil:
			sb.WriteString(fmt.Sprintf("%v (fide:%v): ratings unavailable\n",
				title, r.fideID))
		default:
			line := fmt.Sprintf("%v (fide:%v): classical:%v rapid:%v blitz:%v",
				title, r.fideID, r.ratings.Classical, r.ratings.Rapid,
				r.ratings.Blitz)
			if !r.ratings.Period.IsZero() {
				line += fmt.Sprintf(" (as of %v)",
					r.ratings.Period.Format("2006-01"))
			}
			sb.WriteString(line + "\n")
		}
	}

	return sb.String(), nil
}
