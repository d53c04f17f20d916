/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/chesswiki-ratingsbot/s3cache"
)

// NewCachedHttpClient returns an http.Client that caches responses via an
// S3-backed httpcache with a client-side TTL. When the cache bucket is not
// reachable (e.g. no AWS credentials in the environment) it falls back to
// http.DefaultClient, meaning every request goes to origin.
func NewCachedHttpClient(ctx context.Context, maxAge time.Duration) *http.Client {
	cache := s3cache.New(ctx, WebCacheBucket)

	if err := cache.Init(); err != nil {
		log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to uncached http", err)
		return http.DefaultClient
	}

	hc := httpcache.NewTransport(cache)
	// origin responses may carry cache-busting headers; rewrite them so the
	// configured TTL always wins
	hc.Transport = &ttlTransport{
		maxAge:    maxAge,
		wrappedRT: http.DefaultTransport,
	}

	return &http.Client{Transport: hc}
}

// ttlTransport strips origin cache headers and substitutes a fixed max-age.
type ttlTransport struct {
	maxAge    time.Duration
	wrappedRT http.RoundTripper
}

func (t *ttlTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.wrappedRT.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	resp.Header.Del("Pragma")
	resp.Header.Del("Expires")
	resp.Header.Set("Cache-Control",
		fmt.Sprintf("public, max-age=%d", int(t.maxAge/time.Second)))

	return resp, nil
}
