package scraper

import (
	"context"
	"time"

	"github.com/google/logger"
	"github.com/playwright-community/playwright-go"

	"powerball-news/internal/apperrors"
)

// Fetcher returns the rendered HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// BrowserOptions configures the headless Chromium used by BrowserFetcher.
type BrowserOptions struct {
	// ExecutablePath overrides the Chromium binary installed by playwright.
	ExecutablePath string
	// NavigationTimeout of zero keeps the playwright default.
	NavigationTimeout time.Duration
	WindowWidth       int
	WindowHeight      int
}

// BrowserFetcher renders pages in a fresh headless Chromium per call.
// Nothing is shared between calls, so concurrent Fetch calls are safe.
type BrowserFetcher struct {
	opts BrowserOptions
}

// NewBrowserFetcher creates a BrowserFetcher.
func NewBrowserFetcher(opts BrowserOptions) *BrowserFetcher {
	if opts.WindowWidth <= 0 {
		opts.WindowWidth = 1920
	}
	if opts.WindowHeight <= 0 {
		opts.WindowHeight = 1080
	}
	return &BrowserFetcher{opts: opts}
}

// Fetch starts a browser, loads url, waits for the network to go idle so
// client side scripts have filled in the page, and returns the document.
// The browser and the playwright driver are torn down on every path.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperrors.New(apperrors.KindFetch, "start", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return "", apperrors.New(apperrors.KindFetch, "start playwright", err)
	}
	defer func() {
		if err := pw.Stop(); err != nil {
			logger.Warningf("Failed to stop playwright driver: %v", err)
		}
	}()

	browser, err := pw.Chromium.Launch(f.launchOptions())
	if err != nil {
		return "", apperrors.New(apperrors.KindFetch, "launch browser", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			logger.Warningf("Failed to close browser: %v", err)
		}
	}()

	page, err := browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{Width: f.opts.WindowWidth, Height: f.opts.WindowHeight},
	})
	if err != nil {
		return "", apperrors.New(apperrors.KindFetch, "open page", err)
	}

	gotoOpts := playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}
	if f.opts.NavigationTimeout > 0 {
		gotoOpts.Timeout = playwright.Float(float64(f.opts.NavigationTimeout.Milliseconds()))
	}

	logger.V(1).Infof("Navigating to %s", url)
	if _, err := page.Goto(url, gotoOpts); err != nil {
		return "", apperrors.New(apperrors.KindFetch, "navigate", err)
	}

	html, err := page.Content()
	if err != nil {
		return "", apperrors.New(apperrors.KindFetch, "read page content", err)
	}
	return html, nil
}

func (f *BrowserFetcher) launchOptions() playwright.BrowserTypeLaunchOptions {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     []string{"--no-sandbox"},
	}
	if f.opts.ExecutablePath != "" {
		opts.ExecutablePath = playwright.String(f.opts.ExecutablePath)
	}
	return opts
}

// InstallBrowser downloads the playwright driver and Chromium.
func InstallBrowser() error {
	return playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  true,
	})
}
