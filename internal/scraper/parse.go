package scraper

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ParseTable читает таблицу отчета, прокручивая ее до начальной даты.
// Полный сбой подготовки (нет заголовка или контейнера прокрутки)
// деградирует до пустого фрейма: пустой результат — сигнал вызывающему,
// исключения здесь не бросаются.
func (s *Session) ParseTable(ctx context.Context, beginDate string) *Frame {
	empty := &Frame{Columns: []string{}, Rows: []TableRow{}}

	if s.phase < PhaseReportGenerated {
		s.log.Warn("Чтение таблицы до построения отчета", zap.Stringer("phase", s.phase))
		return empty
	}

	if _, err := s.drv.WaitFor(ctx, selTableContent, 15*time.Second); err != nil {
		s.log.Warn("Содержимое таблицы не появилось", zap.Error(err))
		return empty
	}

	// Заголовок читается один раз при открытии таблицы и задает
	// порядок колонок для всех строк
	headerHandles, err := s.drv.List(ctx, selTableHeaders)
	if err != nil || len(headerHandles) == 0 {
		s.log.Warn("Заголовок таблицы не найден", zap.Error(err))
		return empty
	}
	columns := make([]string, 0, len(headerHandles))
	for _, h := range headerHandles {
		text, err := s.drv.Text(h)
		if err != nil {
			continue
		}
		columns = append(columns, strings.TrimSpace(text))
	}

	container, err := s.drv.WaitFor(ctx, selScrollContainer, 10*time.Second)
	if err != nil {
		s.log.Warn("Контейнер прокрутки не найден", zap.Error(err))
		return empty
	}

	fetch := func() ([][]string, error) {
		rowHandles, err := s.drv.List(ctx, selTableRows)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(rowHandles))
		for _, row := range rowHandles {
			cellHandles, err := s.drv.ListIn(ctx, row, selTableCells)
			if err != nil {
				s.log.Warn("Ошибка разбора строки", zap.Error(err))
				continue
			}
			cells := make([]string, 0, len(cellHandles))
			for _, c := range cellHandles {
				text, err := s.drv.Text(c)
				if err != nil {
					text = ""
				}
				cells = append(cells, text)
			}
			rows = append(rows, cells)
		}
		return rows, nil
	}

	advance := func() error {
		return s.drv.ScrollBy(ctx, container, 100)
	}

	frame, err := ReadUntil(beginDate, columns, fetch, advance, ReadOptions{
		ScrollBudget: s.cfg.ScrollBudget,
		Log:          s.log,
	})
	if err != nil {
		// Бюджет прокрутки исчерпан: отдаем накопленное
		s.log.Warn("Таблица прочитана не полностью", zap.Error(err))
	}

	s.log.Info("Таблица прочитана",
		zap.Int("rows", len(frame.Rows)),
		zap.Int("columns", len(frame.Columns)),
	)
	return frame
}
