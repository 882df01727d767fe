package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

func asElement(h Handle) (playwright.ElementHandle, error) {
	el, ok := h.(playwright.ElementHandle)
	if !ok || el == nil {
		return nil, fmt.Errorf("невалидный handle элемента")
	}
	return el, nil
}

func (b *PlaywrightBrowser) List(ctx context.Context, selector string) ([]Handle, error) {
	page := b.getPage()
	if page == nil {
		return nil, fmt.Errorf("браузер не запущен")
	}

	elements, err := page.QuerySelectorAll(selector)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска элементов %s: %w", selector, err)
	}

	handles := make([]Handle, 0, len(elements))
	for _, el := range elements {
		handles = append(handles, el)
	}
	return handles, nil
}

func (b *PlaywrightBrowser) ListIn(ctx context.Context, parent Handle, selector string) ([]Handle, error) {
	el, err := asElement(parent)
	if err != nil {
		return nil, err
	}

	elements, err := el.QuerySelectorAll(selector)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска вложенных элементов %s: %w", selector, err)
	}

	handles := make([]Handle, 0, len(elements))
	for _, child := range elements {
		handles = append(handles, child)
	}
	return handles, nil
}

func (b *PlaywrightBrowser) Text(h Handle) (string, error) {
	el, err := asElement(h)
	if err != nil {
		return "", err
	}
	text, err := el.TextContent()
	if err != nil {
		return "", err
	}
	return text, nil
}

func (b *PlaywrightBrowser) Attr(h Handle, name string) (string, error) {
	el, err := asElement(h)
	if err != nil {
		return "", err
	}
	value, err := el.GetAttribute(name)
	if err != nil {
		// Отсутствие атрибута — не ошибка
		return "", nil
	}
	return value, nil
}

// Click кликает по элементу через JS, минуя перехват событий оверлеями.
// Небольшая пауза после клика дает странице время на реакцию.
func (b *PlaywrightBrowser) Click(ctx context.Context, h Handle) error {
	el, err := asElement(h)
	if err != nil {
		return err
	}

	// Прокрутка не критична, элемент может быть уже в зоне видимости
	_ = el.ScrollIntoViewIfNeeded(playwright.ElementHandleScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(5000),
	})

	if _, err := el.Evaluate(`el => el.click()`); err != nil {
		return fmt.Errorf("ошибка клика: %w", err)
	}
	time.Sleep(500 * time.Millisecond)
	return nil
}

func (b *PlaywrightBrowser) Fill(ctx context.Context, h Handle, text string) error {
	el, err := asElement(h)
	if err != nil {
		return err
	}

	// Fill сначала очищает поле, затем вводит текст
	if err := el.Fill(text); err != nil {
		return fmt.Errorf("ошибка ввода текста: %w", err)
	}
	time.Sleep(500 * time.Millisecond)
	return nil
}

// SetSelectValue выставляет значение <select> напрямую и диспатчит change,
// как это делает страница EVDS при выборе частоты.
func (b *PlaywrightBrowser) SetSelectValue(ctx context.Context, h Handle, value string) error {
	el, err := asElement(h)
	if err != nil {
		return err
	}

	_, err = el.Evaluate(`(el, value) => {
		el.value = value;
		el.dispatchEvent(new Event('change'));
	}`, value)
	if err != nil {
		return fmt.Errorf("ошибка установки значения select: %w", err)
	}
	time.Sleep(500 * time.Millisecond)
	return nil
}

func (b *PlaywrightBrowser) IsVisible(h Handle) (bool, error) {
	el, err := asElement(h)
	if err != nil {
		return false, err
	}
	return el.IsVisible()
}
