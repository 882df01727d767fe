package scraper

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"evdsScraper/internal/browser"
)

// Phase — фаза жизненного цикла сессии. Явная машина состояний
// определяет, какие операции допустимы: назначение дат возможно только
// до построения отчета, чтение таблицы и экспорт — только после.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseSelecting
	PhaseFrequencyAndDates
	PhaseReportGenerated
	PhaseExporting
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseSelecting:
		return "selecting"
	case PhaseFrequencyAndDates:
		return "frequency-and-dates"
	case PhaseReportGenerated:
		return "report-generated"
	case PhaseExporting:
		return "exporting"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// PromptFunc читает строку от пользователя. nil — чисто автоматический
// режим, любая попытка интерактивного ввода станет ошибкой конфигурации.
type PromptFunc func(prompt string) (string, error)

// Session — одна сессия выгрузки. Владеет единственным разделяемым
// ресурсом — страницей браузера — и не рассчитана на параллельное
// использование: на каждую параллельную сессию нужен свой браузер.
type Session struct {
	drv    browser.Driver
	cfg    *Config
	log    *zap.Logger
	prompt PromptFunc
	out    io.Writer

	phase     Phase
	freqToken string
	selected  []Variable   // журнал выбора интерактивного режима
	steps     []StepResult // исходы по переменным для журнала запусков
}

func NewSession(drv browser.Driver, cfg *Config, log *zap.Logger, prompt PromptFunc) *Session {
	return &Session{
		drv:    drv,
		cfg:    cfg,
		log:    log,
		prompt: prompt,
		out:    os.Stdout,
		phase:  PhaseInitializing,
	}
}

// SetOutput перенаправляет интерактивный вывод (списки, подсказки).
func (s *Session) SetOutput(w io.Writer) {
	s.out = w
}

func (s *Session) Phase() Phase {
	return s.phase
}

// SelectedVariables — журнал выбора интерактивного режима,
// для последующего экспорта конфигурации.
func (s *Session) SelectedVariables() []Variable {
	return s.selected
}

// Steps — исходы обработки переменных за сессию.
func (s *Session) Steps() []StepResult {
	return s.steps
}

// Initialize открывает страницу рынка серий и переключает язык.
// Кнопка языка показывает язык, на который произойдет переключение.
func (s *Session) Initialize(ctx context.Context) error {
	if err := s.drv.Navigate(ctx, BaseURL); err != nil {
		return criticalError("navigate", err)
	}

	langButton, err := s.drv.WaitFor(ctx, selLanguageButton, 10*time.Second)
	if err != nil {
		s.log.Warn("Кнопка языка не найдена", zap.Error(err))
		return nil
	}

	current, err := s.drv.Text(langButton)
	if err != nil {
		return nil
	}
	current = strings.TrimSpace(current)

	lang := strings.ToLower(s.cfg.Language)
	if (lang == "english" && current == "EN") || (lang == "turkish" && current == "TR") {
		if err := s.drv.Click(ctx, langButton); err != nil {
			s.log.Warn("Не удалось переключить язык", zap.Error(err))
		}
	}
	return nil
}

// Run выполняет полный цикл: выбор переменных, частота и даты,
// построение отчета и выдача результата в настроенном формате.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}

	// Предусловие загрузки страницы: меню категорий должно появиться
	if _, err := s.drv.WaitFor(ctx, selCategoryMenu, 15*time.Second); err != nil {
		return nil, criticalError("page-load", fmt.Errorf("страница не загрузилась: %w", err))
	}
	s.phase = PhaseSelecting

	if len(s.cfg.Variables) > 0 {
		if err := s.ProcessVariables(ctx); err != nil {
			return nil, err
		}
	} else {
		if err := s.selectInteractively(ctx); err != nil {
			return nil, err
		}
	}

	s.phase = PhaseFrequencyAndDates
	if _, err := s.SelectFrequency(ctx); err != nil {
		return nil, err
	}

	beginDate, _, err := s.SetDates(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.CreateReport(ctx); err != nil {
		return nil, err
	}
	s.phase = PhaseReportGenerated

	return s.buildResult(ctx, beginDate)
}

func (s *Session) buildResult(ctx context.Context, beginDate string) (*Result, error) {
	s.phase = PhaseExporting
	defer func() { s.phase = PhaseDone }()

	if s.cfg.OutputFormat == FormatExcel {
		ok := s.ExportExcel(ctx)
		return &Result{Format: FormatExcel, ExcelExported: ok}, nil
	}

	frame := s.ParseTable(ctx, beginDate)
	if s.cfg.IncludeExplanations {
		frame.Explanations = s.ParseExplanations(ctx)
	}

	if s.cfg.OutputFormat == FormatDataFrame {
		return &Result{Format: FormatDataFrame, Frame: frame}, nil
	}

	dict := map[string]any{
		"data":    frame.Rows,
		"columns": frame.Columns,
	}
	if len(frame.Explanations) > 0 {
		dict["explanations"] = frame.Explanations
	}
	return &Result{Format: FormatDict, Frame: frame, Dict: dict}, nil
}

// ProcessVariable проводит одну переменную через четыре шага выбора и
// добавляет ее в корзину. Ненайденный кандидат прерывает переменную,
// но не пакет.
func (s *Session) ProcessVariable(ctx context.Context, v Variable) bool {
	s.log.Info("Обработка переменной",
		zap.String("category", v.Category),
		zap.String("subcategory", v.Subcategory),
		zap.String("item", v.ItemName),
		zap.String("calc_type", v.CalculationType),
	)

	fail := func(step string, err error) bool {
		s.log.Warn("Переменная пропущена",
			zap.String("step", step),
			zap.String("item", v.ItemName),
			zap.Error(err),
		)
		s.steps = append(s.steps, StepResult{Variable: v, OK: false, Message: fmt.Sprintf("%s: %v", step, err)})
		return false
	}

	// Шаг 1: категория
	categories, err := s.categoryCandidates(ctx)
	if err != nil || len(categories) == 0 {
		return fail("категория", fmt.Errorf("список категорий пуст: %v", err))
	}
	if _, err := Resolve(ByText(v.Category), categories, s.activateCategory(ctx)); err != nil {
		return fail("категория", err)
	}

	// Шаг 2: подкатегория (ждем, пока список загрузится и стабилизируется)
	subcategories, err := s.waitCandidates(ctx, s.subcategoryCandidates, 5*time.Second)
	if err != nil || len(subcategories) == 0 {
		return fail("подкатегория", fmt.Errorf("список подкатегорий пуст: %v", err))
	}
	if _, err := Resolve(ByText(v.Subcategory), subcategories, s.activateClick(ctx)); err != nil {
		return fail("подкатегория", err)
	}

	// Шаг 3: показатель
	if err := s.prepareItems(ctx); err != nil {
		return fail("показатель", err)
	}
	items, err := s.waitCandidates(ctx, s.itemCandidates, 8*time.Second)
	if err != nil || len(items) == 0 {
		return fail("показатель", fmt.Errorf("список показателей пуст: %v", err))
	}
	if _, err := Resolve(ByText(v.ItemName), items, s.activateClick(ctx)); err != nil {
		return fail("показатель", err)
	}

	// Шаг 4: тип расчета
	if err := s.prepareCalcTypes(ctx); err != nil {
		return fail("тип расчета", err)
	}
	calcTypes, err := s.waitCandidates(ctx, s.calcTypeCandidates, 5*time.Second)
	if err != nil || len(calcTypes) == 0 {
		return fail("тип расчета", fmt.Errorf("список типов расчета пуст: %v", err))
	}
	if _, err := Resolve(ByText(v.CalculationType), calcTypes, s.activateCalcType(ctx)); err != nil {
		return fail("тип расчета", err)
	}

	if err := s.AddToCart(ctx); err != nil {
		return fail("корзина", err)
	}

	s.steps = append(s.steps, StepResult{Variable: v, OK: true, Message: "добавлена в корзину"})
	return true
}

// ProcessVariables обрабатывает пакет переменных из конфига.
// Частичный успех допустим, полный провал фатален.
func (s *Session) ProcessVariables(ctx context.Context) error {
	total := len(s.cfg.Variables)
	success := 0

	for i, v := range s.cfg.Variables {
		s.log.Info("Переменная", zap.Int("n", i+1), zap.Int("total", total))
		if s.ProcessVariable(ctx, v) {
			success++
		}
	}

	s.log.Info("Пакет обработан", zap.Int("success", success), zap.Int("total", total))
	if success == 0 {
		return criticalError("variables", fmt.Errorf("ни одна из %d переменных не обработана", total))
	}
	return nil
}

// selectInteractively собирает переменные через нумерованные списки,
// пока пользователь не откажется добавлять следующую.
func (s *Session) selectInteractively(ctx context.Context) error {
	if s.prompt == nil {
		return configError("переменные не заданы, а интерактивный ввод недоступен")
	}

	for {
		category, err := s.chooseInteractive(ctx, "Доступные категории", s.categoryCandidates, s.activateCategory(ctx))
		if err != nil {
			return err
		}

		subcategory, err := s.chooseInteractive(ctx, "Доступные подкатегории",
			func(ctx context.Context) ([]Candidate, error) {
				return s.waitCandidates(ctx, s.subcategoryCandidates, 5*time.Second)
			}, s.activateClick(ctx))
		if err != nil {
			return err
		}

		if err := s.prepareItems(ctx); err != nil {
			return err
		}
		item, err := s.chooseInteractive(ctx, "Доступные показатели",
			func(ctx context.Context) ([]Candidate, error) {
				return s.waitCandidates(ctx, s.itemCandidates, 8*time.Second)
			}, s.activateClick(ctx))
		if err != nil {
			return err
		}

		if err := s.prepareCalcTypes(ctx); err != nil {
			return err
		}
		calcType, err := s.chooseInteractive(ctx, "Доступные типы расчета", s.calcTypeCandidates, s.activateCalcType(ctx))
		if err != nil {
			return err
		}

		if err := s.AddToCart(ctx); err != nil {
			return err
		}

		v := Variable{Category: category, Subcategory: subcategory, ItemName: item, CalculationType: calcType}
		s.selected = append(s.selected, v)
		s.steps = append(s.steps, StepResult{Variable: v, OK: true, Message: "добавлена в корзину"})

		answer, err := s.prompt("\nДобавить еще переменные? (y/n): ")
		if err != nil {
			return err
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			return nil
		}
	}
}

func (s *Session) chooseInteractive(ctx context.Context, title string, collect func(context.Context) ([]Candidate, error), activate func(Candidate) (string, error)) (string, error) {
	cands, err := collect(ctx)
	if err != nil {
		return "", err
	}
	if len(cands) == 0 {
		return "", &ScrapeError{Kind: KindElementNotFound, Msg: title + ": список пуст"}
	}

	fmt.Fprintf(s.out, "\n%s:\n", title)
	for i, c := range cands {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, c.Text)
	}

	n, err := s.userChoice(len(cands))
	if err != nil {
		return "", err
	}
	return Resolve(ByOrdinal(n), cands, activate)
}

// userChoice запрашивает номер, пока не получит число в диапазоне.
func (s *Session) userChoice(max int) (int, error) {
	for {
		line, err := s.prompt("\nВведите номер: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(s.out, "Введите корректное число")
			continue
		}
		if n < 1 || n > max {
			fmt.Fprintf(s.out, "Введите число от 1 до %d\n", max)
			continue
		}
		return n, nil
	}
}

// SelectFrequency выбирает частоту: по конфигу через словарь Frequencies
// либо интерактивно из живого списка. Неизвестный ключ или отсутствие
// значения в списке — ошибка конфигурации.
func (s *Session) SelectFrequency(ctx context.Context) (string, error) {
	freqSelect, err := s.drv.WaitFor(ctx, selFrequency, 10*time.Second)
	if err != nil {
		return "", criticalError("frequency", err)
	}

	options, err := s.drv.ListIn(ctx, freqSelect, selFrequencyOpts)
	if err != nil {
		return "", criticalError("frequency", err)
	}

	if s.cfg.Frequency != "" {
		token, ok := Frequencies[strings.ToLower(s.cfg.Frequency)]
		if !ok {
			return "", configError("неизвестная частота %q, доступны: %s",
				s.cfg.Frequency, strings.Join(frequencyKeys(), ", "))
		}

		var values []string
		var chosen browser.Handle
		var chosenText string
		for _, opt := range options {
			value, _ := s.drv.Attr(opt, "value")
			values = append(values, value)
			if value == token {
				chosen = opt
				text, _ := s.drv.Text(opt)
				chosenText = strings.TrimSpace(text)
			}
		}
		if chosen == nil {
			return "", configError("частота %q недоступна в списке, есть: %s",
				token, strings.Join(values, ", "))
		}

		if err := s.drv.SetSelectValue(ctx, freqSelect, token); err != nil {
			return "", criticalError("frequency", err)
		}
		s.freqToken = token
		s.log.Info("Выбрана частота", zap.String("frequency", chosenText))
		return chosenText, nil
	}

	// Интерактивный режим
	if s.prompt == nil {
		return "", configError("частота не задана, а интерактивный ввод недоступен")
	}

	fmt.Fprintln(s.out, "\nДоступные частоты:")
	type option struct {
		value string
		text  string
	}
	opts := make([]option, 0, len(options))
	for _, h := range options {
		value, _ := s.drv.Attr(h, "value")
		text, _ := s.drv.Text(h)
		opts = append(opts, option{value: value, text: strings.TrimSpace(text)})
	}
	for i, o := range opts {
		fmt.Fprintf(s.out, "%d. %s (%s)\n", i+1, o.text, o.value)
	}

	n, err := s.userChoice(len(opts))
	if err != nil {
		return "", err
	}
	chosen := opts[n-1]
	if err := s.drv.SetSelectValue(ctx, freqSelect, chosen.value); err != nil {
		return "", criticalError("frequency", err)
	}
	s.freqToken = chosen.value
	s.log.Info("Выбрана частота", zap.String("frequency", chosen.text))
	return chosen.text, nil
}

func frequencyKeys() []string {
	keys := make([]string, 0, len(Frequencies))
	for k := range Frequencies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DateFormatFor — ожидаемый формат даты для значения частоты.
// Формат только сообщается, валидации перед отправкой нет:
// некорректная дата проявится на стороне портала.
func DateFormatFor(freqToken string) string {
	if f, ok := DateFormats[freqToken]; ok {
		return f
	}
	return "MM-YYYY"
}

// AvailableDates читает доступный диапазон дат из подписей к полям.
// Сбой не фатален: подписи нужны только для подсказки пользователю.
func (s *Session) AvailableDates(ctx context.Context) (string, string) {
	begin, err := s.drv.WaitFor(ctx, selBeginDateLabel, 5*time.Second)
	if err != nil {
		s.log.Warn("Подпись диапазона дат не найдена", zap.Error(err))
		return "", ""
	}
	end, err := s.drv.WaitFor(ctx, selEndDateLabel, 5*time.Second)
	if err != nil {
		return "", ""
	}

	beginText, _ := s.drv.Text(begin)
	endText, _ := s.drv.Text(end)
	return strings.Trim(strings.TrimSpace(beginText), "()"), strings.Trim(strings.TrimSpace(endText), "()")
}

// SetDates назначает диапазон дат. Шаг критический: любая ошибка
// эскалируется. Допустим только до построения отчета.
func (s *Session) SetDates(ctx context.Context) (string, string, error) {
	if s.phase >= PhaseReportGenerated {
		return "", "", criticalError("dates", fmt.Errorf("назначение дат недопустимо в фазе %s", s.phase))
	}

	var beginDate, endDate string
	if s.cfg.DateModeAutomatic() {
		beginDate, endDate = s.cfg.BeginDate, s.cfg.EndDate
		s.log.Info("Используются даты из конфигурации",
			zap.String("begin", beginDate), zap.String("end", endDate))
	} else {
		if s.prompt == nil {
			return "", "", configError("даты не заданы, а интерактивный ввод недоступен")
		}

		availBegin, availEnd := s.AvailableDates(ctx)
		if availBegin != "" {
			fmt.Fprintf(s.out, "\nДанные доступны с %s по %s\n", availBegin, availEnd)
		}
		fmt.Fprintf(s.out, "Формат даты: %s\n", DateFormatFor(s.freqToken))

		var err error
		if beginDate, err = s.prompt("Начальная дата: "); err != nil {
			return "", "", criticalError("dates", err)
		}
		if endDate, err = s.prompt("Конечная дата: "); err != nil {
			return "", "", criticalError("dates", err)
		}
		beginDate = strings.TrimSpace(beginDate)
		endDate = strings.TrimSpace(endDate)
	}

	beginField, err := s.drv.WaitFor(ctx, selBeginDate, 10*time.Second)
	if err != nil {
		return "", "", criticalError("dates", err)
	}
	if err := s.drv.Fill(ctx, beginField, beginDate); err != nil {
		return "", "", criticalError("dates", err)
	}

	endField, err := s.drv.WaitFor(ctx, selEndDate, 10*time.Second)
	if err != nil {
		return "", "", criticalError("dates", err)
	}
	if err := s.drv.Fill(ctx, endField, endDate); err != nil {
		return "", "", criticalError("dates", err)
	}

	return beginDate, endDate, nil
}

// AddToCart добавляет текущий выбор в корзину отчета.
func (s *Session) AddToCart(ctx context.Context) error {
	button, err := s.drv.WaitFor(ctx, selAddToCart, 10*time.Second)
	if err != nil {
		return err
	}
	return s.drv.Click(ctx, button)
}

// CreateReport запускает построение отчета.
func (s *Session) CreateReport(ctx context.Context) error {
	button, err := s.drv.WaitFor(ctx, selReportButton, 10*time.Second)
	if err != nil {
		return criticalError("report", err)
	}
	if err := s.drv.Click(ctx, button); err != nil {
		return criticalError("report", err)
	}
	return nil
}

// ExportExcel нажимает экспорт на портале и подтверждает скачивание.
// Возвращает исход, не ошибку: провал экспорта не критичен.
func (s *Session) ExportExcel(ctx context.Context) bool {
	if s.phase < PhaseReportGenerated {
		s.log.Warn("Экспорт до построения отчета", zap.Stringer("phase", s.phase))
		return false
	}

	excelButton, err := s.drv.WaitFor(ctx, selExcelButton, 10*time.Second)
	if err != nil {
		s.log.Warn("Кнопка экспорта не найдена", zap.Error(err))
		return false
	}
	if err := s.drv.Click(ctx, excelButton); err != nil {
		s.log.Warn("Ошибка клика по кнопке экспорта", zap.Error(err))
		return false
	}

	download, err := s.drv.WaitFor(ctx, selDownloadButton, 10*time.Second)
	if err != nil {
		s.log.Warn("Кнопка скачивания не найдена", zap.Error(err))
		return false
	}
	if err := s.drv.Click(ctx, download); err != nil {
		s.log.Warn("Ошибка клика по кнопке скачивания", zap.Error(err))
		return false
	}

	// Даем скачиванию время начаться
	time.Sleep(2 * time.Second)
	s.log.Info("Экспорт Excel завершен")
	return true
}
