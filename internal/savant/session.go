package savant

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// Session owns one headless browser used for all clip locations in a run.
// It is stateful and must be used by one logical operation at a time; the
// compilation pipeline guarantees this by strict sequencing.
type Session struct {
	baseURL     string
	browserCtx  context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc

	// Fixed settle delays for page and player render readiness.
	settleSearch time.Duration
	settleClick  time.Duration
}

// SessionConfig configures the browser session.
type SessionConfig struct {
	BaseURL      string
	Headless     bool
	SettleSearch time.Duration
	SettleClick  time.Duration
}

// NewSession starts the browser. Callers must Close it, including on early
// failure.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.SettleSearch == 0 {
		cfg.SettleSearch = 3 * time.Second
	}
	if cfg.SettleClick == 0 {
		cfg.SettleClick = 5 * time.Second
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	// Start the browser now so a missing Chrome fails the run up front
	// instead of on the first clip.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	return &Session{
		baseURL:      cfg.BaseURL,
		browserCtx:   browserCtx,
		cancelCtx:    cancelCtx,
		cancelAlloc:  cancelAlloc,
		settleSearch: cfg.SettleSearch,
		settleClick:  cfg.SettleClick,
	}, nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	s.cancelCtx()
	s.cancelAlloc()
}

// Locate resolves a pitch to a playable video source URL. Returns
// ErrClipNotFound (wrapped) when the search yields nothing.
func (s *Session) Locate(ctx context.Context, q Search) (string, error) {
	searchURL, err := SearchURL(s.baseURL, q)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClipNotFound, err)
	}

	runCtx := s.browserCtx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(runCtx, deadline)
		defer cancel()
	}

	var resultsHTML string
	err = chromedp.Run(runCtx,
		chromedp.Navigate(searchURL),
		chromedp.Sleep(s.settleSearch),
		chromedp.Click(".player_name", chromedp.ByQuery),
		chromedp.Sleep(s.settleClick),
		chromedp.OuterHTML("html", &resultsHTML, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("%w: search page: %v", ErrClipNotFound, err)
	}

	link, err := resultsLink(resultsHTML)
	if err != nil {
		return "", err
	}

	var clipHTML string
	err = chromedp.Run(runCtx,
		chromedp.Navigate(s.baseURL+link),
		chromedp.Sleep(s.settleSearch),
		chromedp.OuterHTML("html", &clipHTML, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("%w: clip page: %v", ErrClipNotFound, err)
	}

	if q.Away {
		if html, err := s.switchToAwayFeed(runCtx); err != nil {
			// Away feed is best effort; fall back to the default feed.
			log.Printf("Away feed unavailable, using default feed: %v", err)
		} else {
			clipHTML = html
		}
	}

	return videoSource(clipHTML)
}

// switchToAwayFeed clicks the away broadcast tab and returns the re-rendered
// page.
func (s *Session) switchToAwayFeed(ctx context.Context) (string, error) {
	clickCtx, cancel := context.WithTimeout(ctx, s.settleClick+2*time.Second)
	defer cancel()

	var html string
	err := chromedp.Run(clickCtx,
		chromedp.Click("#sporty-feeds .away-feed", chromedp.ByQuery),
		chromedp.Sleep(s.settleSearch),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}
