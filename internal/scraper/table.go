package scraper

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ReadOptions ограничивает цикл чтения таблицы.
type ReadOptions struct {
	// ScrollBudget — максимум прокруток до целевого ключа.
	// Исчерпание бюджета возвращает накопленные строки и ошибку
	// вместо бесконечного ожидания.
	ScrollBudget int
	Log          *zap.Logger
}

const defaultScrollBudget = 200

// ReadUntil инкрементально читает виртуализированную таблицу: на каждой
// итерации забирает видимые строки, накапливает еще не виденные
// (дедупликация по ключу — тексту первой ячейки) и прокручивает
// контейнер, пока не встретит targetKey или его альтернативную форму.
//
// fetch возвращает тексты ячеек видимых строк, advance прокручивает
// контейнер вперед. Строка короче заголовка попадает в результат с
// частичным отображением, лишние ячейки игнорируются. Повторное чтение
// уже виденного ключа не дублирует и не изменяет строку.
func ReadUntil(targetKey string, columns []string, fetch func() ([][]string, error), advance func() error, opts ReadOptions) (*Frame, error) {
	budget := opts.ScrollBudget
	if budget <= 0 {
		budget = defaultScrollBudget
	}

	alt := alternateKey(targetKey)

	seen := make(map[string]struct{})
	frame := &Frame{Columns: columns}

	for scrolls := 0; ; scrolls++ {
		rows, err := fetch()
		if err != nil {
			if opts.Log != nil {
				opts.Log.Warn("Ошибка чтения видимых строк", zap.Error(err))
			}
			rows = nil
		}

		for _, cells := range rows {
			if len(cells) == 0 {
				continue
			}
			key := strings.TrimSpace(cells[0])
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			row := make(TableRow, len(columns))
			for i, col := range columns {
				if i < len(cells) {
					row[col] = strings.TrimSpace(cells[i])
				}
			}
			frame.Rows = append(frame.Rows, row)

			if key == targetKey || (alt != "" && key == alt) {
				if opts.Log != nil {
					opts.Log.Info("Найдена целевая дата", zap.String("key", key))
				}
				return frame, nil
			}
		}

		if scrolls >= budget {
			return frame, &ScrapeError{
				Kind: KindElementNotFound,
				Step: "table",
				Msg:  fmt.Sprintf("дата %q не найдена за %d прокруток", targetKey, budget),
			}
		}

		if err := advance(); err != nil {
			return frame, &ScrapeError{
				Kind: KindParse,
				Step: "table",
				Msg:  fmt.Sprintf("ошибка прокрутки: %v", err),
				Err:  err,
			}
		}
	}
}

// alternateKey возвращает ключ с переставленными компонентами для целей
// вида MM-YYYY: месячная частота отображает даты то как месяц-год, то
// как год-месяц. Альтернатива выводится только из цели, ключи строк
// всегда сравниваются буквально; цели с другим числом дефисов или иной
// формой компонентов (кварталы, дни) альтернативы не получают.
func alternateKey(key string) string {
	parts := strings.Split(key, "-")
	if len(parts) != 2 {
		return ""
	}
	month, year := parts[0], parts[1]
	if !allDigits(month) || !allDigits(year) {
		return ""
	}
	if len(month) > 2 || len(year) != 4 {
		return ""
	}
	return year + "-" + month
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
