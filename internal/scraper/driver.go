package scraper

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/chromedp/chromedp"

	"github.com/Tommie03/NTTBot/internal/config"
	"github.com/Tommie03/NTTBot/internal/logger"
)

const (
	// UserAgent matches a desktop browser; the source serves a consent
	// wall and lazy-loaded lists either way.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// navigationRetries bounds retries of the initial page load.
	navigationRetries = 2
)

// Driver owns a headless browser session for one scrape pass. The session
// is acquired at the start of CapturePage and unconditionally released
// when it returns, success or not.
type Driver struct {
	cfg config.Config
}

// NewDriver creates a driver with the given configuration.
func NewDriver(cfg config.Config) *Driver {
	return &Driver{cfg: cfg}
}

// Snapshot is the fully rendered markup of both content tabs, with any
// consent overlay dismissed.
type Snapshot struct {
	UpcomingHTML string
	RecentHTML   string
}

// CapturePage renders the source site and returns the markup of both tabs.
// Any driver-level fault (navigation timeout, browser crash) aborts the
// whole pass; locator misses on the consent banner or tabs degrade softly.
func (d *Driver) CapturePage(ctx context.Context) (*Snapshot, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if err := d.navigate(browserCtx); err != nil {
		return nil, fmt.Errorf("loading %s: %w", d.cfg.BaseURL, err)
	}

	if name := d.tryStrategies(browserCtx, consentStrategies); name != "" {
		logger.Info("Consent banner dismissed", logger.Fields{"strategy": name})
		// Give the page a moment to refresh after accepting.
		_ = chromedp.Run(browserCtx, chromedp.Sleep(d.cfg.SettleDelay))
	} else {
		logger.Warn("No consent banner found", nil)
	}

	snap := &Snapshot{}
	var err error

	snap.UpcomingHTML, err = d.captureTab(browserCtx, upcomingTabStrategies, "upcoming")
	if err != nil {
		return nil, err
	}

	snap.RecentHTML, err = d.captureTab(browserCtx, recentTabStrategies, "recent")
	if err != nil {
		return nil, err
	}

	return snap, nil
}

// navigate loads the base URL with a bounded timeout per attempt and a
// small bounded retry budget.
func (d *Driver) navigate(ctx context.Context) error {
	attempt := func() error {
		navCtx, cancel := context.WithTimeout(ctx, d.cfg.NavigationTimeout)
		defer cancel()
		return chromedp.Run(navCtx,
			chromedp.Navigate(d.cfg.BaseURL),
			chromedp.WaitReady("body", chromedp.ByQuery),
		)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), navigationRetries), ctx)
	return backoff.Retry(attempt, policy)
}

// captureTab activates a content tab, exhausts its lazy loading, and
// returns the rendered markup. A tab that cannot be located is a soft
// degradation: the currently visible content is still captured.
func (d *Driver) captureTab(ctx context.Context, strategies []Strategy, tab string) (string, error) {
	if name := d.tryStrategies(ctx, strategies); name != "" {
		logger.Info("Activated tab", logger.Fields{"tab": tab, "strategy": name})
		_ = chromedp.Run(ctx, chromedp.Sleep(d.cfg.SettleDelay))
	} else {
		logger.Warn("Tab locator not found, capturing current content", logger.Fields{"tab": tab})
	}

	d.exhaustLazyLoad(ctx)

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("reading %s tab markup: %w", tab, err)
	}
	return html, nil
}

// tryStrategies walks an ordered locator list and clicks the first target
// that becomes clickable within the bounded wait. Returns the winning
// strategy name, or "" when the list is exhausted.
func (d *Driver) tryStrategies(ctx context.Context, strategies []Strategy) string {
	for _, s := range strategies {
		sctx, cancel := context.WithTimeout(ctx, d.cfg.LocatorTimeout)
		err := chromedp.Run(sctx,
			chromedp.WaitVisible(s.XPath, chromedp.BySearch),
			chromedp.ScrollIntoView(s.XPath, chromedp.BySearch),
			chromedp.Click(s.XPath, chromedp.BySearch),
		)
		cancel()
		if err == nil {
			return s.Name
		}
		logger.Debug("Locator strategy missed", logger.Fields{"strategy": s.Name})
	}
	return ""
}

// exhaustLazyLoad scrolls to the bottom until the document height stops
// growing or the attempt ceiling is hit, bounding worst-case latency while
// maximizing recall of lazy-loaded rows.
func (d *Driver) exhaustLazyLoad(ctx context.Context) {
	var lastHeight int64
	if err := chromedp.Run(ctx, chromedp.Evaluate("document.body.scrollHeight", &lastHeight)); err != nil {
		return
	}

	for i := 0; i < d.cfg.MaxScrolls; i++ {
		var height int64
		err := chromedp.Run(ctx,
			chromedp.Evaluate("window.scrollTo(0, document.body.scrollHeight)", nil),
			chromedp.Sleep(d.cfg.SettleDelay),
			chromedp.Evaluate("document.body.scrollHeight", &height),
		)
		if err != nil || height == lastHeight {
			logger.Debug("Lazy load settled", logger.Fields{"scrolls": i + 1})
			return
		}
		lastHeight = height
	}
}
