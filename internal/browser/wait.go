package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

func (b *PlaywrightBrowser) WaitFor(ctx context.Context, selector string, timeout time.Duration) (Handle, error) {
	return b.waitState(selector, timeout, playwright.WaitForSelectorStateAttached)
}

func (b *PlaywrightBrowser) WaitVisible(ctx context.Context, selector string, timeout time.Duration) (Handle, error) {
	return b.waitState(selector, timeout, playwright.WaitForSelectorStateVisible)
}

func (b *PlaywrightBrowser) waitState(selector string, timeout time.Duration, state *playwright.WaitForSelectorState) (Handle, error) {
	page := b.getPage()
	if page == nil {
		return nil, fmt.Errorf("браузер не запущен")
	}

	if timeout == 0 {
		timeout = b.cfg.Timeout
	}

	opts := playwright.PageWaitForSelectorOptions{
		State:   state,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}

	el, err := page.WaitForSelector(selector, opts)
	if err != nil {
		return nil, fmt.Errorf("элемент %s не найден: %w", selector, err)
	}
	if el == nil {
		return nil, fmt.Errorf("элемент %s не найден", selector)
	}
	return el, nil
}

func (b *PlaywrightBrowser) WaitForLoadState(ctx context.Context, state string) error {
	page := b.getPage()
	if page == nil {
		return fmt.Errorf("браузер не запущен")
	}

	var loadState *playwright.LoadState
	switch state {
	case "load":
		loadState = playwright.LoadStateLoad
	case "domcontentloaded":
		loadState = playwright.LoadStateDomcontentloaded
	case "networkidle":
		loadState = playwright.LoadStateNetworkidle
	default:
		loadState = playwright.LoadStateLoad
	}

	opts := playwright.PageWaitForLoadStateOptions{
		State:   loadState,
		Timeout: playwright.Float(float64(b.cfg.Timeout.Milliseconds())),
	}

	return page.WaitForLoadState(opts)
}
