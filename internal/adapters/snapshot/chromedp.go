// Package snapshot renders published card pages to PNG with headless Chrome.
package snapshot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"bizcard/pkg/log"
)

// Options configures the browser pool.
type Options struct {
	// ChromePath overrides the Chrome/Chromium binary.
	ChromePath string
	// RemoteURL connects to an already running Chrome DevTools endpoint
	// (ws://host:9222/...) instead of launching a local process.
	RemoteURL string
	// MaxTabs bounds concurrent tabs. Defaults to 1.
	MaxTabs int
	// ExtraFlags are appended to the default allocator options.
	ExtraFlags []chromedp.ExecAllocatorOption
}

// BrowserPool manages a single Chrome process and bounds how many tabs run
// at once. Waiting callers queue on a semaphore.
type BrowserPool struct {
	opts      []chromedp.ExecAllocatorOption
	remoteURL string

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	tabSem chan struct{}
}

// NewBrowserPool starts Chrome (or connects to RemoteURL) and waits until
// it answers.
func NewBrowserPool(o Options) (*BrowserPool, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),

		// Memory / CPU reduction
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-component-update", true),
		chromedp.Flag("disable-features", "Translate,BackForwardCache"),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("no-first-run", true),
	)
	opts = append(opts, o.ExtraFlags...)

	if o.ChromePath != "" {
		log.GlobalInfo("browser pool using custom chrome path", "path", o.ChromePath)
		opts = append(opts, chromedp.ExecPath(o.ChromePath))
	}

	bp := newPool(o.MaxTabs)
	bp.opts = opts
	bp.remoteURL = o.RemoteURL

	if err := bp.start(); err != nil {
		return nil, err
	}
	return bp, nil
}

func newPool(maxTabs int) *BrowserPool {
	if maxTabs < 1 {
		maxTabs = 1
	}
	return &BrowserPool{tabSem: make(chan struct{}, maxTabs)}
}

// start launches or relaunches the browser.
func (bp *BrowserPool) start() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.cancel != nil {
		bp.cancel()
	}

	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)
	if bp.remoteURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.Background(), bp.remoteURL)
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(), bp.opts...)
	}
	ctx, ctxCancel := chromedp.NewContext(allocCtx)

	// Force the browser to start now rather than on first use.
	if err := chromedp.Run(ctx); err != nil {
		ctxCancel()
		allocCancel()
		return err
	}

	bp.ctx = ctx
	bp.cancel = func() {
		ctxCancel()
		allocCancel()
	}

	log.GlobalInfo("browser pool chrome started", "remote", bp.remoteURL != "")
	return nil
}

// acquire takes a tab slot, giving up if ctx ends first.
func (bp *BrowserPool) acquire(ctx context.Context) (release func(), err error) {
	select {
	case bp.tabSem <- struct{}{}:
		return func() { <-bp.tabSem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// WithTab runs fn in a fresh tab once a slot is free. The tab is closed when
// fn returns or ctx is canceled.
func (bp *BrowserPool) WithTab(ctx context.Context, fn func(tabCtx context.Context) error) error {
	release, err := bp.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	tabCtx, tabCancel, err := bp.acquireTab()
	if err != nil {
		return err
	}
	defer tabCancel()

	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	return fn(tabCtx)
}

// acquireTab opens a tab and health-checks it, restarting Chrome once if
// the browser has died.
func (bp *BrowserPool) acquireTab() (context.Context, context.CancelFunc, error) {
	bp.mu.Lock()
	if bp.ctx == nil {
		bp.mu.Unlock()
		return nil, nil, errors.New("browser pool is closed")
	}
	tabCtx, tabCancel := chromedp.NewContext(bp.ctx)
	bp.mu.Unlock()

	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		log.GlobalWarn("browser pool tab failed, restarting chrome", "error", err)

		if restartErr := bp.start(); restartErr != nil {
			return nil, nil, restartErr
		}

		bp.mu.Lock()
		tabCtx, tabCancel = chromedp.NewContext(bp.ctx)
		bp.mu.Unlock()
	}

	return tabCtx, tabCancel, nil
}

// Close shuts the browser down.
func (bp *BrowserPool) Close() {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.cancel != nil {
		bp.cancel()
		bp.cancel = nil
		bp.ctx = nil
		log.GlobalInfo("browser pool chrome stopped")
	}
}

// Snapshotter captures the ".card" element of a page as PNG.
type Snapshotter struct {
	pool     *BrowserPool
	width    int64
	height   int64
	timeout  time.Duration
	selector string
}

const defaultCaptureTimeout = 15 * time.Second

// NewSnapshotter renders pages in a width x height viewport, failing any
// capture that takes longer than timeout.
func NewSnapshotter(pool *BrowserPool, width, height int64, timeout time.Duration) *Snapshotter {
	if timeout <= 0 {
		timeout = defaultCaptureTimeout
	}
	return &Snapshotter{pool: pool, width: width, height: height, timeout: timeout, selector: ".card"}
}

func (s *Snapshotter) Capture(ctx context.Context, url string) ([]byte, error) {
	var png []byte
	err := s.pool.WithTab(ctx, func(tabCtx context.Context) error {
		tabCtx, cancel := context.WithTimeout(tabCtx, s.timeout)
		defer cancel()

		return chromedp.Run(tabCtx,
			chromedp.EmulateViewport(s.width, s.height),
			chromedp.Navigate(url),
			chromedp.WaitVisible(s.selector, chromedp.ByQuery),
			chromedp.Screenshot(s.selector, &png, chromedp.NodeVisible, chromedp.ByQuery),
		)
	})
	if err != nil {
		return nil, err
	}

	log.GlobalDebugCtx(ctx, "card snapshot captured", "url", url, "bytes", len(png))
	return png, nil
}
