/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/mikeb26/chesswiki-ratingsbot/bot"
	"github.com/mikeb26/chesswiki-ratingsbot/fide"
	"github.com/mikeb26/chesswiki-ratingsbot/internal"
	"github.com/mikeb26/chesswiki-ratingsbot/wiki"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":   handleHelp,
	"update": handleUpdate,
	"report": handleReport,
	"player": handlePlayer,
}

func main() {
	ctx := context.Background()

	// wiki credentials may come from the environment or a local .env file
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

func handleUpdate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	category := fs.String("category", internal.DefaultCategory,
		"Wiki category whose pages should be refreshed")
	apiURL := fs.String("apiurl", internal.DefaultWikiAPI,
		"MediaWiki api.php endpoint")
	dryRun := fs.Bool("dryrun", false,
		"Log intended edits without saving any page")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	b := newBot(ctx, *apiURL, !*dryRun)
	b.DryRun = *dryRun

	if err := b.ProcessCategory(ctx, *category); err != nil {
		log.Fatalf("Error processing category %v: %v", *category, err)
	}
}

func handleReport(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	category := fs.String("category", internal.DefaultCategory,
		"Wiki category to report on")
	apiURL := fs.String("apiurl", internal.DefaultWikiAPI,
		"MediaWiki api.php endpoint")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	// read-only; no login needed
	b := newBot(ctx, *apiURL, false)

	output, err := b.Report(ctx, *category)
	if err != nil {
		log.Fatalf("Error building report for category %v: %v", *category, err)
	}
	fmt.Print(output)
}

func handlePlayer(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("player", flag.ExitOnError)
	fideID := fs.String("fideid", "", "FIDE player id to look up")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *fideID == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --fideid ID.")
		fs.Usage()
		os.Exit(1)
	}

	ratings, err := fide.NewClient(ctx).LatestRatings(ctx, *fideID)
	if err != nil {
		log.Fatalf("Error fetching ratings for FIDE ID %v: %v", *fideID, err)
	}
	if ratings == nil {
		fmt.Printf("FIDE ID %v has no complete rating triple published.\n",
			*fideID)
		return
	}

	fmt.Printf("FIDE ID: %v\n", *fideID)
	fmt.Printf("Classical: %v\n", ratings.Classical)
	fmt.Printf("Rapid: %v\n", ratings.Rapid)
	fmt.Printf("Blitz: %v\n", ratings.Blitz)
	if !ratings.Period.IsZero() {
		fmt.Printf("Period: %v\n", ratings.Period.Format("2006-01"))
	}
}

// newBot wires up the wiki and FIDE clients. When login is requested and
// credentials are present in the environment, the wiki session is
// authenticated before use.
func newBot(ctx context.Context, apiURL string, login bool) *bot.Bot {
	wikiClient, err := wiki.NewClient(apiURL)
	if err != nil {
		log.Fatalf("Error creating wiki client: %v", err)
	}

	if login {
		username := os.Getenv("WIKI_USERNAME")
		password := os.Getenv("WIKI_PASSWORD")
		if username != "" && password != "" {
			if err := wikiClient.Login(ctx, username, password); err != nil {
				log.Fatalf("Error logging in to wiki: %v", err)
			}
		} else {
			log.Printf("warning: WIKI_USERNAME/WIKI_PASSWORD not set; editing anonymously")
		}
	}

	return bot.New(wikiClient, fide.NewClient(ctx))
}
