package scraper

import (
	"errors"
	"fmt"
)

// ErrorKind — таксономия ошибок сессии. Политика распространения:
// поисковые пути деградируют до пустого результата, конфигурация и
// критические шаги (даты, загрузка страницы) фатальны для всего запуска.
type ErrorKind int

const (
	// KindElementNotFound — необязательный элемент не найден,
	// вызывающий получает пустой результат.
	KindElementNotFound ErrorKind = iota
	// KindSelectionNotFound — резолвер не нашел кандидата,
	// текущая переменная прерывается, пакет продолжается.
	KindSelectionNotFound
	// KindConfig — ошибка конфигурации, фатальна для запуска.
	KindConfig
	// KindCritical — сбой критического шага, фатален после логирования.
	KindCritical
	// KindParse — сбой разбора таблицы или пояснений,
	// деградирует до пустой структуры.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindElementNotFound:
		return "element-not-found"
	case KindSelectionNotFound:
		return "selection-not-found"
	case KindConfig:
		return "config"
	case KindCritical:
		return "critical"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

type ScrapeError struct {
	Kind ErrorKind
	Step string
	Msg  string
	Err  error
}

func (e *ScrapeError) Error() string {
	if e.Step != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Step, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

func configError(format string, args ...any) *ScrapeError {
	return &ScrapeError{Kind: KindConfig, Msg: fmt.Sprintf(format, args...)}
}

func criticalError(step string, err error) *ScrapeError {
	return &ScrapeError{Kind: KindCritical, Step: step, Msg: err.Error(), Err: err}
}

func selectionNotFound(target string) *ScrapeError {
	return &ScrapeError{Kind: KindSelectionNotFound, Msg: fmt.Sprintf("выбор не найден: %q", target)}
}

func kindOf(err error) (ErrorKind, bool) {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

// IsSelectionNotFound — не найден кандидат, единица работы прерывается.
func IsSelectionNotFound(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindSelectionNotFound
}

// IsConfigError — ошибка конфигурации, запуск останавливается.
func IsConfigError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindConfig
}

// IsCritical — фатальная ошибка критического шага.
func IsCritical(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindCritical
}
