// Package fetch - browser.go provides headless browser rendering for
// JavaScript-heavy listing pages that serve an empty shell over plain HTTP.
package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinListingContentLength is the minimum body length to consider a plain
// HTTP fetch usable. Shorter bodies usually mean a client-rendered SPA.
const MinListingContentLength = 500

// ShouldUseBrowser reports whether a fetched body is too thin to scrape
// and a browser render should be attempted instead.
func ShouldUseBrowser(body string) bool {
	return len(strings.TrimSpace(body)) < MinListingContentLength
}

// RenderPage loads url in a headless browser, waits for client-side
// rendering, and returns the rendered HTML. Requires Chrome/Chromium on
// the host.
func RenderPage(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if verbose {
		log.Printf("[BROWSER] rendering %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Listing grids populate after the initial ready event
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[BROWSER] rendered %d bytes", len(html))
	}
	return html, nil
}
