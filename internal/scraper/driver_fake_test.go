package scraper

import (
	"context"
	"fmt"
	"time"

	"evdsScraper/internal/browser"
)

// fakeEl — элемент фейковой страницы.
type fakeEl struct {
	text   string
	attrs  map[string]string
	clicks int
}

// fakeDriver — реализация browser.Driver поверх статической карты
// селекторов, для юнит-тестов без браузера.
type fakeDriver struct {
	selectors map[string][]*fakeEl
	children  map[*fakeEl]map[string][]*fakeEl

	filled       map[*fakeEl]string
	selectValues []string
	scrolls      int
	navigated    []string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		selectors: make(map[string][]*fakeEl),
		children:  make(map[*fakeEl]map[string][]*fakeEl),
		filled:    make(map[*fakeEl]string),
	}
}

func (d *fakeDriver) Navigate(ctx context.Context, url string) error {
	d.navigated = append(d.navigated, url)
	return nil
}

func (d *fakeDriver) List(ctx context.Context, selector string) ([]browser.Handle, error) {
	els := d.selectors[selector]
	handles := make([]browser.Handle, 0, len(els))
	for _, el := range els {
		handles = append(handles, el)
	}
	return handles, nil
}

func (d *fakeDriver) ListIn(ctx context.Context, parent browser.Handle, selector string) ([]browser.Handle, error) {
	el, ok := parent.(*fakeEl)
	if !ok {
		return nil, fmt.Errorf("невалидный handle")
	}
	els := d.children[el][selector]
	handles := make([]browser.Handle, 0, len(els))
	for _, child := range els {
		handles = append(handles, child)
	}
	return handles, nil
}

func (d *fakeDriver) Text(h browser.Handle) (string, error) {
	el, ok := h.(*fakeEl)
	if !ok {
		return "", fmt.Errorf("невалидный handle")
	}
	return el.text, nil
}

func (d *fakeDriver) Attr(h browser.Handle, name string) (string, error) {
	el, ok := h.(*fakeEl)
	if !ok {
		return "", fmt.Errorf("невалидный handle")
	}
	return el.attrs[name], nil
}

func (d *fakeDriver) Click(ctx context.Context, h browser.Handle) error {
	el, ok := h.(*fakeEl)
	if !ok {
		return fmt.Errorf("невалидный handle")
	}
	el.clicks++
	return nil
}

func (d *fakeDriver) Fill(ctx context.Context, h browser.Handle, text string) error {
	el, ok := h.(*fakeEl)
	if !ok {
		return fmt.Errorf("невалидный handle")
	}
	d.filled[el] = text
	return nil
}

func (d *fakeDriver) SetSelectValue(ctx context.Context, h browser.Handle, value string) error {
	d.selectValues = append(d.selectValues, value)
	return nil
}

func (d *fakeDriver) ScrollBy(ctx context.Context, container browser.Handle, delta int) error {
	d.scrolls++
	return nil
}

func (d *fakeDriver) WaitFor(ctx context.Context, selector string, timeout time.Duration) (browser.Handle, error) {
	els := d.selectors[selector]
	if len(els) == 0 {
		return nil, fmt.Errorf("элемент %s не найден", selector)
	}
	return els[0], nil
}

func (d *fakeDriver) WaitVisible(ctx context.Context, selector string, timeout time.Duration) (browser.Handle, error) {
	return d.WaitFor(ctx, selector, timeout)
}

func (d *fakeDriver) IsVisible(h browser.Handle) (bool, error) {
	return true, nil
}
