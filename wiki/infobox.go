/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package wiki

import (
	"fmt"
	"regexp"
)

// Player infoboxes use the "| <key> = <value>" line convention. The rating
// patterns deliberately tolerate zero-or-one space between the pipe and the
// label and any amount of whitespace around the equals sign; existing pages
// rely on exactly this tolerance.
var (
	fideParamRe = regexp.MustCompile(`\|\s*fide\s*=\s*(\d+)`)

	classicalParamRe = regexp.MustCompile(`\|\s?classical_rating\s*=.*`)
	rapidParamRe     = regexp.MustCompile(`\|\s?rapid_rating\s*=.*`)
	blitzParamRe     = regexp.MustCompile(`\|\s?blitz_rating\s*=.*`)
)

// FideID extracts the numeric fide parameter from page wikitext. The first
// occurrence wins. ok is false when the parameter is not present, which is
// a routine outcome rather than an error.
func FideID(text string) (id string, ok bool) {
	m := fideParamRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SetRatings rewrites the classical_rating, rapid_rating, and blitz_rating
// parameters in page wikitext. Each substitution replaces the remainder of
// every matching line, so repeated labels are all rewritten identically.
// The operation is idempotent.
func SetRatings(text string, classical, rapid, blitz int) string {
	text = classicalParamRe.ReplaceAllString(text,
		fmt.Sprintf("|classical_rating = %d", classical))
	text = rapidParamRe.ReplaceAllString(text,
		fmt.Sprintf("|rapid_rating = %d", rapid))
	text = blitzParamRe.ReplaceAllString(text,
		fmt.Sprintf("|blitz_rating = %d", blitz))

	return text
}
