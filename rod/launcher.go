// Package rod provides the dynamic fetch strategy: pages are rendered in a
// headless Chrome driven by go-rod, so content produced by JavaScript is
// visible to the scraper.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/overviewer"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultNavigationTimeout bounds navigation up to DOMContentLoaded.
const DefaultNavigationTimeout = 45 * time.Second

// DefaultSettleDelay is the unconditional wait after DOMContentLoaded that
// lets page scripts run before the markup is read.
const DefaultSettleDelay = 2 * time.Second

// Ensure Launcher implements overviewer.BrowserLauncher at compile time.
var _ overviewer.BrowserLauncher = (*Launcher)(nil)

// Launcher starts headless Chrome instances. Each Launch starts a separate
// browser process owned by the returned Browser.
type Launcher struct {
	navigationTimeout time.Duration
	settleDelay       time.Duration
	userAgent         string
	stealth           bool
	noSandbox         bool
	bin               string
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithNavigationTimeout sets the page load timeout.
// Defaults to DefaultNavigationTimeout (45s) if not specified.
func WithNavigationTimeout(d time.Duration) Option {
	return func(l *Launcher) {
		l.navigationTimeout = d
	}
}

// WithSettleDelay sets the wait after DOMContentLoaded.
// Defaults to DefaultSettleDelay (2s) if not specified.
func WithSettleDelay(d time.Duration) Option {
	return func(l *Launcher) {
		l.settleDelay = d
	}
}

// WithUserAgent overrides overviewer.UserAgent.
func WithUserAgent(ua string) Option {
	return func(l *Launcher) {
		l.userAgent = ua
	}
}

// WithStealth opens pages with go-rod/stealth evasions applied.
func WithStealth(enabled bool) Option {
	return func(l *Launcher) {
		l.stealth = enabled
	}
}

// WithNoSandbox disables the Chrome sandbox, which is required when
// running as root in containers.
func WithNoSandbox(enabled bool) Option {
	return func(l *Launcher) {
		l.noSandbox = enabled
	}
}

// WithBin sets the Chrome binary. By default rod finds or downloads one.
func WithBin(path string) Option {
	return func(l *Launcher) {
		l.bin = path
	}
}

// NewLauncher creates a Launcher.
func NewLauncher(opts ...Option) *Launcher {
	l := &Launcher{
		navigationTimeout: DefaultNavigationTimeout,
		settleDelay:       DefaultSettleDelay,
		userAgent:         overviewer.UserAgent,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts a headless browser with stability flags.
// The returned Browser must be closed to stop the browser process.
func (l *Launcher) Launch(ctx context.Context) (overviewer.Fetcher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("disable-gpu").
		NoSandbox(l.noSandbox).
		Leakless(true).
		Headless(true)
	if l.bin != "" {
		lnchr = lnchr.Bin(l.bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Browser{
		browser:           browser,
		launcher:          lnchr,
		navigationTimeout: l.navigationTimeout,
		settleDelay:       l.settleDelay,
		userAgent:         l.userAgent,
		stealth:           l.stealth,
	}, nil
}
