/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
// FIDE history periods are published as "2006-Jan"; try that layout first
// before falling back to general parsing.
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-Jan", s); err == nil {
		return t, nil
	}
	return dateparse.ParseAny(s)
}
