package browser

import (
	"context"
	"fmt"
	"time"
)

// ScrollBy прокручивает контейнер с виртуализированными строками.
// Используется читателем таблицы для подгрузки следующих строк.
func (b *PlaywrightBrowser) ScrollBy(ctx context.Context, container Handle, delta int) error {
	el, err := asElement(container)
	if err != nil {
		return err
	}

	_, err = el.Evaluate(`(el, delta) => { el.scrollTop += delta; }`, delta)
	if err != nil {
		return fmt.Errorf("ошибка прокрутки контейнера: %w", err)
	}

	// Даем виртуализированной таблице время отрисовать новые строки
	time.Sleep(500 * time.Millisecond)
	return nil
}
