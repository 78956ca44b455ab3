package expiry

import (
	"context"
	"fmt"
	"net/url"

	"github.com/chromedp/chromedp"
)

// extractListingsJS maps the portal's expired-listing cards to a JSON-ready
// array. The portal renders results client-side, hence the headless browser.
const extractListingsJS = `
Array.from(document.querySelectorAll('[data-listing-status="expired"]')).map(card => ({
	ref: card.getAttribute('data-listing-ref') || '',
	address: (card.querySelector('.listing-address') || {}).textContent || '',
	areaSqm: parseFloat((card.getAttribute('data-area-sqm') || '0')),
	kind: card.getAttribute('data-property-kind') || '',
	expiredAt: card.getAttribute('data-expired-at') || ''
}))
`

// scrapeExpiredListings drives a headless browser to the portal's expired
// search for one zone. The caller's context carries the budget; the browser
// is torn down when it elapses.
func scrapeExpiredListings(ctx context.Context, portalURL, zoneID string) ([]expiredListing, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	searchURL := fmt.Sprintf("%s/search?status=expired&zone=%s", portalURL, url.QueryEscape(zoneID))

	var listings []expiredListing
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(searchURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(extractListingsJS, &listings),
	)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", searchURL, err)
	}

	return listings, nil
}
