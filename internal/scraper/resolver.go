package scraper

import (
	"fmt"
	"strconv"
	"strings"

	"evdsScraper/internal/browser"
)

// Candidate — запись, привязанная к элементу UI: отображаемый текст и
// handle для активации. Список кандидатов строится заново при каждом
// вызове резолвера и нигде не сохраняется.
type Candidate struct {
	Text   string
	Handle browser.Handle
}

// Target — цель выбора: порядковый номер (с единицы) или текст.
type Target struct {
	isOrdinal bool
	ordinal   int
	text      string
}

func ByOrdinal(n int) Target {
	return Target{isOrdinal: true, ordinal: n}
}

func ByText(s string) Target {
	return Target{text: s}
}

func (t Target) String() string {
	if t.isOrdinal {
		return fmt.Sprintf("#%d", t.ordinal)
	}
	return t.text
}

// Resolve выбирает не более одного кандидата и вызывает activate.
// Политика сопоставления в строгом порядке приоритета:
//  1. порядковый номер n в диапазоне [1, len] — candidates[n-1],
//     текст не сравнивается; номер вне диапазона сравнивается дальше
//     как текст своей десятичной записи;
//  2. текст: первое точное совпадение по порядку списка
//     (с учетом регистра, без обрезки);
//  3. иначе первое двустороннее вхождение: текст кандидата содержит
//     цель или цель содержит текст кандидата — допускает и частичный,
//     и избыточный ввод.
//
// При неудаче activate не вызывается, возвращается ошибка
// selection-not-found. Повторы и паузы — забота вызывающего.
func Resolve(target Target, candidates []Candidate, activate func(Candidate) (string, error)) (string, error) {
	var selected *Candidate

	text := target.text
	if target.isOrdinal {
		if target.ordinal >= 1 && target.ordinal <= len(candidates) {
			selected = &candidates[target.ordinal-1]
		} else {
			text = strconv.Itoa(target.ordinal)
		}
	}

	if selected == nil {
		for i := range candidates {
			if candidates[i].Text == text {
				selected = &candidates[i]
				break
			}
		}
	}
	if selected == nil {
		for i := range candidates {
			if strings.Contains(candidates[i].Text, text) ||
				strings.Contains(text, candidates[i].Text) {
				selected = &candidates[i]
				break
			}
		}
	}

	if selected == nil {
		return "", selectionNotFound(target.String())
	}

	return activate(*selected)
}
