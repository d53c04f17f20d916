/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bot

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mikeb26/chesswiki-ratingsbot/fide"
	"github.com/mikeb26/chesswiki-ratingsbot/wiki"
)

const (
	pageANoFide = "{{Infobox player\n| name = Player A\n" +
		"|classical_rating = 2300\n|rapid_rating = 2200\n|blitz_rating = 2100\n}}"
	pageBNoData = "{{Infobox player\n| name = Player B\n| fide = 111\n" +
		"|classical_rating = 2300\n|rapid_rating = 2200\n|blitz_rating = 2100\n}}"
	pageCFull = "{{Infobox player\n| name = Player C\n| fide = 222\n" +
		"|classical_rating = 2300\n|rapid_rating = 2200\n|blitz_rating = 2100\n}}"
)

// newTestBot wires a Bot against a stub wiki (category with pages A, B, C)
// and a stub FIDE history service (id 111 has no history, id 222 has a full
// triple). Returns the bot, the live page store, and an edit counter.
func newTestBot(t *testing.T) (*Bot, map[string]string, *int) {
	t.Helper()

	pages := map[string]string{
		"Player A": pageANoFide,
		"Player B": pageBNoData,
		"Player C": pageCFull,
	}
	editCount := 0

	wikiSrv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Errorf("bad form in test request: %v", err)
				return
			}
			w.Header().Set("Content-Type", "application/json")

			switch {
			case r.Form.Get("meta") == "tokens":
				fmt.Fprintf(w, `{"query":{"tokens":{"%stoken":"testtoken+\\"}}}`,
					r.Form.Get("type"))
			case r.Form.Get("list") == "categorymembers":
				fmt.Fprint(w, `{"query":{"categorymembers":[`+
					`{"pageid":1,"title":"Player A"},`+
					`{"pageid":2,"title":"Player B"},`+
					`{"pageid":3,"title":"Player C"}]}}`)
			case r.Form.Get("prop") == "revisions":
				title := r.Form.Get("titles")
				text, ok := pages[title]
				if !ok {
					fmt.Fprintf(w, `{"query":{"pages":[{"title":%q,"missing":true}]}}`,
						title)
					return
				}
				fmt.Fprintf(w, `{"query":{"pages":[{"pageid":1,"title":%q,`+
					`"revisions":[{"slots":{"main":{"content":%q}}}]}]}}`,
					title, text)
			case r.Form.Get("action") == "edit":
				editCount++
				pages[r.Form.Get("title")] = r.Form.Get("text")
				fmt.Fprint(w, `{"edit":{"result":"Success"}}`)
			default:
				fmt.Fprint(w, `{"error":{"code":"unknown_action","info":"unsupported in test"}}`)
			}
		}))
	t.Cleanup(wikiSrv.Close)

	fideSrv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Query().Get("fide_id") {
			case "222":
				fmt.Fprint(w, `[{"period":"2026-Aug","classical_rating":2500,`+
					`"rapid_rating":2450,"blitz_rating":2400}]`)
			default:
				fmt.Fprint(w, `[]`)
			}
		}))
	t.Cleanup(fideSrv.Close)

	wikiClient, err := wiki.NewClient(wikiSrv.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	fideClient := &fide.Client{
		HTTPClient: http.DefaultClient,
		HistoryURL: fideSrv.URL + "/player_history/",
		ProfileURL: fideSrv.URL + "/profile/",
	}

	return New(wikiClient, fideClient), pages, &editCount
}

func TestProcessCategory(t *testing.T) {
	b, pages, editCount := newTestBot(t)

	if err := b.ProcessCategory(context.Background(), "Players"); err != nil {
		t.Fatalf("ProcessCategory returned error: %v", err)
	}

	// page A has no fide parameter, page B has no rating data; only page C
	// may be saved
	if *editCount != 1 {
		t.Errorf("expected exactly 1 edit, got %v", *editCount)
	}
	if pages["Player A"] != pageANoFide {
		t.Errorf("page A was modified: %q", pages["Player A"])
	}
	if pages["Player B"] != pageBNoData {
		t.Errorf("page B was modified: %q", pages["Player B"])
	}

	wantC := "{{Infobox player\n| name = Player C\n| fide = 222\n" +
		"|classical_rating = 2500\n|rapid_rating = 2450\n|blitz_rating = 2400\n}}"
	if pages["Player C"] != wantC {
		t.Errorf("page C = %q; want %q", pages["Player C"], wantC)
	}
}

func TestProcessCategoryIdempotent(t *testing.T) {
	b, pages, editCount := newTestBot(t)

	if err := b.ProcessCategory(context.Background(), "Players"); err != nil {
		t.Fatalf("first ProcessCategory returned error: %v", err)
	}
	afterFirst := pages["Player C"]

	if err := b.ProcessCategory(context.Background(), "Players"); err != nil {
		t.Fatalf("second ProcessCategory returned error: %v", err)
	}
	if pages["Player C"] != afterFirst {
		t.Errorf("second pass changed page C: %q vs %q", pages["Player C"],
			afterFirst)
	}
	if *editCount != 2 {
		t.Errorf("expected 2 edits across both passes, got %v", *editCount)
	}
}

func TestProcessCategoryDryRun(t *testing.T) {
	b, pages, editCount := newTestBot(t)
	b.DryRun = true

	if err := b.ProcessCategory(context.Background(), "Players"); err != nil {
		t.Fatalf("ProcessCategory returned error: %v", err)
	}

	if *editCount != 0 {
		t.Errorf("dry run performed %v edits; want 0", *editCount)
	}
	if pages["Player C"] != pageCFull {
		t.Errorf("dry run modified page C: %q", pages["Player C"])
	}
}

func TestProcessCategoryContinuesPastFetchFault(t *testing.T) {
	// FIDE service down entirely: every page must be skipped, none saved,
	// and the loop must still visit every page without returning an error
	b, pages, editCount := newTestBot(t)
	b.Fide.HistoryURL = "http://127.0.0.1:0/player_history/"
	b.Fide.ProfileURL = "http://127.0.0.1:0/profile/"

	if err := b.ProcessCategory(context.Background(), "Players"); err != nil {
		t.Fatalf("ProcessCategory returned error: %v", err)
	}
	if *editCount != 0 {
		t.Errorf("expected 0 edits, got %v", *editCount)
	}
	if pages["Player C"] != pageCFull {
		t.Errorf("page C was modified: %q", pages["Player C"])
	}
}

func TestReport(t *testing.T) {
	b, _, editCount := newTestBot(t)

	output, err := b.Report(context.Background(), "Players")
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if *editCount != 0 {
		t.Errorf("report performed %v edits; want 0", *editCount)
	}

	if !strings.Contains(output, "Player A: no fide parameter") {
		t.Errorf("report missing page A line:\n%v", output)
	}
	if !strings.Contains(output, "Player B (fide:111): ratings unavailable") {
		t.Errorf("report missing page B line:\n%v", output)
	}
	if !strings.Contains(output,
		"Player C (fide:222): classical:2500 rapid:2450 blitz:2400") {
		t.Errorf("report missing page C line:\n%v", output)
	}
}
