package rod

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/overviewer"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// blockedResourceTypes are sub-resources that are never loaded. Only the
// document and the scripts that render it are fetched.
var blockedResourceTypes = []proto.NetworkResourceType{
	proto.NetworkResourceTypeImage,
	proto.NetworkResourceTypeStylesheet,
	proto.NetworkResourceTypeFont,
	proto.NetworkResourceTypeMedia,
	proto.NetworkResourceTypeWebSocket,
}

// Ensure Browser implements overviewer.Fetcher at compile time.
var _ overviewer.Fetcher = (*Browser)(nil)

// Browser renders pages in one running headless Chrome.
// Every Fetch opens its own page and closes it before returning.
// Browser is safe for concurrent use by multiple goroutines.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	navigationTimeout time.Duration
	settleDelay       time.Duration
	userAgent         string
	stealth           bool

	mu     sync.Mutex
	closed bool
}

// Fetch navigates to url and returns the rendered markup.
// All failures are reported as overviewer.FailureRender.
func (b *Browser) Fetch(ctx context.Context, url string) (*overviewer.Markup, error) {
	html, err := b.render(ctx, url)
	if err != nil {
		return nil, &overviewer.FetchError{Kind: overviewer.FailureRender, URL: url, Err: err}
	}
	if strings.TrimSpace(html) == "" {
		return nil, &overviewer.FetchError{
			Kind: overviewer.FailureRender,
			URL:  url,
			Err:  errors.New("empty document"),
		}
	}
	return &overviewer.Markup{Body: []byte(html)}, nil
}

func (b *Browser) render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if b.isClosed() {
		return "", overviewer.Errorf(overviewer.EINVALID, "browser is closed")
	}

	page, err := b.newPage()
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	defer page.Close()

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.userAgent}); err != nil {
		return "", fmt.Errorf("set user agent: %w", err)
	}

	router := page.HijackRequests()
	for _, rt := range blockedResourceTypes {
		if err := router.Add("*", rt, func(h *rod.Hijack) {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		}); err != nil {
			return "", fmt.Errorf("block %s requests: %w", rt, err)
		}
	}
	go router.Run()
	defer func() { _ = router.Stop() }()

	navCtx, cancel := context.WithTimeout(ctx, b.navigationTimeout)
	defer cancel()
	nav := page.Context(navCtx)

	wait := nav.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := nav.Navigate(url); err != nil {
		return "", fmt.Errorf("navigate to %s: %w", url, err)
	}
	wait()
	if err := navCtx.Err(); err != nil {
		return "", fmt.Errorf("wait for DOMContentLoaded: %w", err)
	}

	timer := time.NewTimer(b.settleDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	html, err := page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("get HTML from %s: %w", url, err)
	}
	return html, nil
}

func (b *Browser) newPage() (*rod.Page, error) {
	if b.stealth {
		return stealth.Page(b.browser)
	}
	return b.browser.Page(proto.TargetCreateTarget{})
}

func (b *Browser) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Close shuts down the browser and kills its process.
// Close is safe to call multiple times.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	err := b.browser.Close()
	b.launcher.Kill()
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (b *Browser) LauncherPID() int {
	return b.launcher.PID()
}
