package scraper

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"evdsScraper/internal/browser"
)

// ParseExplanations разбирает панель пояснений отчета: по одной записи
// на переменную, соответствие позиционное. Любой сбой деградирует до
// пустого списка, отдельные нечитаемые секции пропускаются.
func (s *Session) ParseExplanations(ctx context.Context) []Explanation {
	if _, err := s.drv.WaitFor(ctx, selExplanationTab, 10*time.Second); err != nil {
		s.log.Warn("Вкладка пояснений не найдена", zap.Error(err))
		return []Explanation{}
	}

	sections, err := s.drv.List(ctx, selExplanationSections)
	if err != nil {
		s.log.Warn("Секции пояснений не найдены", zap.Error(err))
		return []Explanation{}
	}

	explanations := make([]Explanation, 0, len(sections))
	for _, section := range sections {
		expl, ok := s.parseExplanationSection(ctx, section)
		if !ok {
			continue
		}
		explanations = append(explanations, expl)
	}

	s.log.Info("Пояснения разобраны", zap.Int("count", len(explanations)))
	return explanations
}

func (s *Session) parseExplanationSection(ctx context.Context, section browser.Handle) (Explanation, bool) {
	codes, err := s.drv.ListIn(ctx, section, selExplanationCode)
	if err != nil || len(codes) == 0 {
		return Explanation{}, false
	}
	code, err := s.drv.Text(codes[0])
	if err != nil {
		return Explanation{}, false
	}

	containers, err := s.drv.ListIn(ctx, section, selExplanationDesc)
	if err != nil || len(containers) == 0 {
		return Explanation{}, false
	}
	container := containers[0]

	descs, err := s.drv.ListIn(ctx, container, selExplanationText)
	if err != nil || len(descs) == 0 {
		return Explanation{}, false
	}
	descText, err := s.drv.Text(descs[0])
	if err != nil {
		return Explanation{}, false
	}
	descText = strings.TrimSpace(descText)

	additionalInfo := ""
	if infos, err := s.drv.ListIn(ctx, container, selExplanationInfo); err == nil && len(infos) > 0 {
		if text, err := s.drv.Text(infos[0]); err == nil {
			additionalInfo = strings.TrimSpace(text)
		}
	}

	// Описание содержит тип расчета последним сегментом через дефис
	parts := strings.Split(descText, "-")
	mainDesc := strings.TrimSpace(parts[0])
	calcType := ""
	if len(parts) > 1 {
		calcType = strings.TrimSpace(parts[len(parts)-1])
		calcType = strings.TrimSuffix(strings.TrimPrefix(calcType, "<i>"), "</i>")
	}

	return Explanation{
		Code:            strings.TrimSpace(code),
		Description:     mainDesc,
		CalculationType: calcType,
		AdditionalInfo:  additionalInfo,
	}, true
}
