package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Сбор кандидатов с живой страницы. Списки строятся заново перед каждым
// вызовом резолвера: элементы виртуальны и устаревают после кликов.

func (s *Session) categoryCandidates(ctx context.Context) ([]Candidate, error) {
	handles, err := s.drv.List(ctx, selCategories)
	if err != nil {
		return nil, err
	}

	cands := make([]Candidate, 0, len(handles))
	for _, h := range handles {
		text, err := s.drv.Text(h)
		if err != nil {
			continue
		}
		cands = append(cands, Candidate{Text: strings.TrimSpace(text), Handle: h})
	}
	return cands, nil
}

func (s *Session) subcategoryCandidates(ctx context.Context) ([]Candidate, error) {
	handles, err := s.drv.List(ctx, selSubcategories)
	if err != nil {
		return nil, err
	}

	cands := make([]Candidate, 0, len(handles))
	for _, h := range handles {
		text, err := s.drv.Text(h)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		cands = append(cands, Candidate{Text: text, Handle: h})
	}
	return cands, nil
}

// prepareItems снимает отметки с ранее выбранных показателей,
// чтобы в корзину не попали остатки прошлого выбора.
func (s *Session) prepareItems(ctx context.Context) error {
	checked, err := s.drv.List(ctx, selItemsChecked)
	if err != nil {
		return err
	}
	for _, h := range checked {
		if err := s.drv.Click(ctx, h); err != nil {
			s.log.Warn("Не удалось снять отметку показателя", zap.Error(err))
		}
	}
	return nil
}

func (s *Session) itemCandidates(ctx context.Context) ([]Candidate, error) {
	rows, err := s.drv.List(ctx, selItemRows)
	if err != nil {
		return nil, err
	}

	cands := make([]Candidate, 0, len(rows))
	for _, row := range rows {
		checkboxes, err := s.drv.ListIn(ctx, row, selItemCheckbox)
		if err != nil || len(checkboxes) == 0 {
			continue
		}
		cells, err := s.drv.ListIn(ctx, row, selItemText)
		if err != nil || len(cells) == 0 {
			continue
		}
		text, err := s.drv.Text(cells[0])
		if err != nil {
			continue
		}
		// Активация кликает по чекбоксу, текст берется из ячейки
		cands = append(cands, Candidate{Text: strings.TrimSpace(text), Handle: checkboxes[0]})
	}
	return cands, nil
}

// prepareCalcTypes открывает выпадающий список типов расчета и снимает
// прошлые отметки. Вызывается один раз перед сбором кандидатов:
// повторный клик по кнопке закрыл бы список.
func (s *Session) prepareCalcTypes(ctx context.Context) error {
	dropdown, err := s.drv.WaitFor(ctx, selCalcDropdown, 5*time.Second)
	if err != nil {
		return err
	}
	if err := s.drv.Click(ctx, dropdown); err != nil {
		return err
	}

	checked, err := s.drv.List(ctx, selCalcChecked)
	if err != nil {
		return err
	}
	for _, h := range checked {
		if err := s.drv.Click(ctx, h); err != nil {
			s.log.Warn("Не удалось снять отметку типа расчета", zap.Error(err))
		}
	}
	return nil
}

func (s *Session) calcTypeCandidates(ctx context.Context) ([]Candidate, error) {
	options, err := s.drv.List(ctx, selCalcOptions)
	if err != nil {
		return nil, err
	}

	cands := make([]Candidate, 0, len(options))
	for _, opt := range options {
		labels, err := s.drv.ListIn(ctx, opt, selCalcLabel)
		if err != nil || len(labels) == 0 {
			continue
		}
		checkboxes, err := s.drv.ListIn(ctx, opt, selCalcCheckbox)
		if err != nil || len(checkboxes) == 0 {
			continue
		}
		text, err := s.drv.Text(labels[0])
		if err != nil {
			continue
		}
		cands = append(cands, Candidate{Text: strings.TrimSpace(text), Handle: checkboxes[0]})
	}
	return cands, nil
}

// activateCategory раскрывает панель категории. Если панель уже
// раскрыта, повторный клик не выполняется — предварительная проверка
// принадлежит стратегии активации, а не резолверу.
func (s *Session) activateCategory(ctx context.Context) func(Candidate) (string, error) {
	return func(c Candidate) (string, error) {
		code, err := s.drv.Attr(c.Handle, "categorycode")
		if err != nil {
			return "", err
		}
		panelSel := fmt.Sprintf("#collapse_%s", code)

		expanded := false
		if panel, err := s.drv.WaitFor(ctx, panelSel, 3*time.Second); err == nil {
			class, _ := s.drv.Attr(panel, "class")
			expanded = strings.Contains(class, "in")
		}

		if !expanded {
			if err := s.drv.Click(ctx, c.Handle); err != nil {
				return "", err
			}
			if _, err := s.drv.WaitVisible(ctx, panelSel, 10*time.Second); err != nil {
				return "", err
			}
		}
		return c.Text, nil
	}
}

// activateClick — обычная активация кликом по handle кандидата.
func (s *Session) activateClick(ctx context.Context) func(Candidate) (string, error) {
	return func(c Candidate) (string, error) {
		if err := s.drv.Click(ctx, c.Handle); err != nil {
			return "", err
		}
		return c.Text, nil
	}
}

// activateCalcType отмечает чекбокс и кликом по body закрывает
// выпадающий список.
func (s *Session) activateCalcType(ctx context.Context) func(Candidate) (string, error) {
	return func(c Candidate) (string, error) {
		if err := s.drv.Click(ctx, c.Handle); err != nil {
			return "", err
		}
		if body, err := s.drv.WaitFor(ctx, selBody, 3*time.Second); err == nil {
			_ = s.drv.Click(ctx, body)
		}
		return c.Text, nil
	}
}

// waitCandidates опрашивает сборщик, пока список не станет непустым и
// стабильным между двумя чтениями. Страница не дает события готовности
// после клика, ограниченный опрос заменяет фиксированную паузу.
func (s *Session) waitCandidates(ctx context.Context, collect func(context.Context) ([]Candidate, error), timeout time.Duration) ([]Candidate, error) {
	deadline := time.Now().Add(timeout)
	prev := -1

	for {
		cands, err := collect(ctx)
		if err == nil && len(cands) > 0 && len(cands) == prev {
			return cands, nil
		}
		if err == nil {
			prev = len(cands)
		} else {
			prev = -1
		}

		if time.Now().After(deadline) {
			if err != nil {
				return nil, err
			}
			return cands, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(300 * time.Millisecond):
		}
	}
}
