/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/mikeb26/chesswiki-ratingsbot/fide"
	"github.com/mikeb26/chesswiki-ratingsbot/internal"
	"github.com/mikeb26/chesswiki-ratingsbot/wiki"
)

// Bot drives the rating refresh over wiki categories. It owns the wiki and
// FIDE clients and threads them through every page operation.
type Bot struct {
	Wiki *wiki.Client
	Fide *fide.Client

	// DryRun computes edits and logs them without saving anything.
	DryRun bool
}

func New(wikiClient *wiki.Client, fideClient *fide.Client) *Bot {
	return &Bot{
		Wiki: wikiClient,
		Fide: fideClient,
	}
}

// ProcessCategory refreshes the rating parameters on every page in the
// named category, one page at a time in the wiki's enumeration order. A
// failure on one page never aborts the remaining pages; per-page outcomes
// are observable only through the log and the wiki itself. The returned
// error covers only the category enumeration.
func (b *Bot) ProcessCategory(ctx context.Context, category string) error {
	titles, err := b.Wiki.CategoryMembers(ctx, category)
	if err != nil {
		return fmt.Errorf("bot: unable to enumerate category %v: %w",
			category, err)
	}

	for _, title := range titles {
		log.Printf("bot: processing page: %v", title)
		b.processPage(ctx, title)
	}

	return nil
}

// processPage runs the extract -> fetch -> update pipeline for one page.
// Every failure mode is logged and swallowed here.
func (b *Bot) processPage(ctx context.Context, title string) {
	text, err := b.Wiki.PageText(ctx, title)
	if err != nil {
		log.Printf("bot: error reading page '%v': %v", title, err)
		return
	}

	fideID, ok := wiki.FideID(text)
	if !ok {
		log.Printf("bot: fide parameter not found on page: %v", title)
		return
	}

	ratings, err := b.Fide.LatestRatings(ctx, fideID)
	if err != nil {
		log.Printf("bot: request error for FIDE ID %v: %v", fideID, err)
		return
	}
	if ratings == nil {
		log.Printf("bot: missing ratings for FIDE ID %v, skipping update of page: %v",
			fideID, title)
		return
	}

	updated := wiki.SetRatings(text, ratings.Classical, ratings.Rapid,
		ratings.Blitz)

	if b.DryRun {
		if updated == text {
			log.Printf("bot: dryrun: page already current: %v", title)
		} else {
			log.Printf("bot: dryrun: would save classical:%v rapid:%v blitz:%v on page: %v",
				ratings.Classical, ratings.Rapid, ratings.Blitz, title)
		}
		return
	}

	if err := b.Wiki.EditPage(ctx, title, updated, internal.EditSummary); err != nil {
		log.Printf("bot: error saving on page '%v': %v", title, err)
		return
	}
	log.Printf("bot: ratings successfully saved on page: %v", title)
}
