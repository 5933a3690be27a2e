package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png" // PNG decoder for image.DecodeConfig
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Image is a captured raster image.
type Image struct {
	Data   []byte
	Format string // "PNG"
	Width  int    // pixels
	Height int    // pixels
}

// CaptureOptions controls how the preview element is captured.
type CaptureOptions struct {
	Selector      string  // element to capture
	Scale         float64 // device pixel ratio of the capture
	ViewportWidth int64   // CSS pixels
}

// DefaultCaptureOptions captures the preview root at twice its CSS size.
func DefaultCaptureOptions() CaptureOptions {
	return CaptureOptions{Selector: "#cv-preview", Scale: 2, ViewportWidth: 794}
}

// Rasterizer captures rendered HTML as an image.
type Rasterizer interface {
	Ready() bool
	Capture(ctx context.Context, html string, opts CaptureOptions) (Image, error)
}

// ChromeConfig configures the headless browser.
type ChromeConfig struct {
	ExecPath  string // empty uses the first Chrome found on PATH
	NoSandbox bool
}

// ChromeRasterizer captures pages with a shared headless Chrome instance.
// Each capture runs in its own tab.
type ChromeRasterizer struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	ready     atomic.Bool
	closeOnce sync.Once
}

// NewChromeRasterizer prepares a browser. Nothing is launched until Start.
func NewChromeRasterizer(cfg ChromeConfig) *ChromeRasterizer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	return &ChromeRasterizer{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}
}

// Start launches the browser and blocks until it answers or ctx is done.
func (r *ChromeRasterizer) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- chromedp.Run(r.browserCtx) }()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start browser: %w", err)
		}
		r.ready.Store(true)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready reports whether the browser has started.
func (r *ChromeRasterizer) Ready() bool {
	return r.ready.Load()
}

// Close shuts the browser down. Safe to call more than once.
func (r *ChromeRasterizer) Close() error {
	r.closeOnce.Do(func() {
		r.ready.Store(false)
		r.browserCancel()
		r.allocCancel()
	})
	return nil
}

type elementBox struct {
	Found   bool    `json:"found"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	ScrollY float64 `json:"scrollY"`
}

// measureScript returns the element's box in page coordinates, using its
// full scrollHeight so content below the fold is included.
func measureScript(selector string) string {
	sel, _ := json.Marshal(selector)
	return fmt.Sprintf(`(() => {
	const el = document.querySelector(%s);
	if (!el) return {found: false};
	const r = el.getBoundingClientRect();
	return {found: true, x: r.left + window.scrollX, y: r.top, width: r.width, height: el.scrollHeight, scrollY: window.scrollY};
})()`, sel)
}

// Capture renders html in a new tab and screenshots the selected element.
func (r *ChromeRasterizer) Capture(ctx context.Context, html string, opts CaptureOptions) (Image, error) {
	if !r.Ready() {
		return Image{}, ErrNotReady
	}

	dir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return Image{}, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	htmlPath := filepath.Join(dir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return Image{}, fmt.Errorf("failed to write page: %w", err)
	}

	tabCtx, cancel := chromedp.NewContext(r.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var box elementBox
	var buf []byte
	err = chromedp.Run(tabCtx,
		chromedp.EmulateViewport(opts.ViewportWidth, 1123),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady(opts.Selector, chromedp.ByQuery),
		chromedp.Evaluate(measureScript(opts.Selector), &box),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if !box.Found {
				return fmt.Errorf("element %s not found", opts.Selector)
			}
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithCaptureBeyondViewport(true).
				WithClip(&page.Viewport{
					X:      box.X,
					Y:      box.Y + box.ScrollY,
					Width:  box.Width,
					Height: box.Height,
					Scale:  opts.Scale,
				}).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return Image{}, ctx.Err()
		}
		return Image{}, fmt.Errorf("capture failed: %w", err)
	}

	return decodeImage(buf)
}

func decodeImage(data []byte) (Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode capture: %w", err)
	}
	if format != "png" {
		return Image{}, fmt.Errorf("unexpected capture format %q", format)
	}
	return Image{Data: data, Format: "PNG", Width: cfg.Width, Height: cfg.Height}, nil
}
