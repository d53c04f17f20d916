/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent       = "chesswiki-ratingsbot/0.2.0 (+https://github.com/mikeb26/chesswiki-ratingsbot)"
	DefaultWikiAPI  = "https://liquipedia.net/chess/api.php"
	DefaultCategory = "Players"
	EditSummary     = "Updated FIDE ratings."
	WebCacheBucket  = "bopmatic-chesswiki-ratingsbot-prod-webcache"
)
