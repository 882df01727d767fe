package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"evdsScraper/internal/browser"
	"evdsScraper/internal/cli/ui"
	"evdsScraper/internal/config"
	"evdsScraper/internal/database"
	"evdsScraper/internal/logger"
	"evdsScraper/internal/scraper"
)

// ScrapeHandler запускает сессии выгрузки и хранит результат последней.
type ScrapeHandler struct {
	cfg      *config.Cfg
	repo     *database.RunRepository
	log      *logger.Zap
	readLine func() (string, error)

	lastFrame    *scraper.Frame
	lastSelected []scraper.Variable
}

func NewScrapeHandler(cfg *config.Cfg, repo *database.RunRepository, log *logger.Zap, readLine func() (string, error)) *ScrapeHandler {
	return &ScrapeHandler{
		cfg:      cfg,
		repo:     repo,
		log:      log,
		readLine: readLine,
	}
}

// buildScraperConfig собирает конфигурацию сессии из окружения и,
// если задан, из JSON-файла с переменными.
func (h *ScrapeHandler) buildScraperConfig() (*scraper.Config, error) {
	sc := &scraper.Config{
		Language:            h.cfg.Scraper.Language,
		IncludeExplanations: h.cfg.Scraper.IncludeExplanations,
		OutputFormat:        scraper.ParseOutputFormat(h.cfg.Scraper.OutputFormat),
		Frequency:           h.cfg.Scraper.Frequency,
		BeginDate:           h.cfg.Scraper.BeginDate,
		EndDate:             h.cfg.Scraper.EndDate,
		ScrollBudget:        h.cfg.Scraper.ScrollBudget,
	}

	if h.cfg.Scraper.VariablesFile != "" {
		language, variables, err := scraper.LoadVariables(h.cfg.Scraper.VariablesFile)
		if err != nil {
			return nil, err
		}
		if language != "" {
			sc.Language = language
		}
		sc.Variables = variables
	}
	return sc, nil
}

// Run выполняет один запуск выгрузки с записью в журнал.
func (h *ScrapeHandler) Run(ctx context.Context) {
	sc, err := h.buildScraperConfig()
	if err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка конфигурации:"+ui.ColorReset+" %v\n", err)
		return
	}

	mode := "interactive"
	if len(sc.Variables) > 0 {
		mode = "automatic"
	}

	run := &database.ScrapeRun{
		Mode:         mode,
		OutputFormat: string(sc.OutputFormat),
		Status:       "running",
	}
	if err := h.repo.CreateRun(run); err != nil {
		h.log.Warn("Не удалось создать запись запуска", zap.Error(err))
	}

	fmt.Println(ui.ColorCyan + ui.IconGlobe + " Запуск браузера..." + ui.ColorReset)
	br := browser.New(browser.Config{
		Headless:     h.cfg.Browser.Headless,
		UserDataDir:  h.cfg.Browser.UserDataDir,
		BrowsersPath: h.cfg.Browser.BrowsersPath,
		Display:      h.cfg.Browser.Display,
	})
	if err := br.Launch(ctx); err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка запуска браузера:"+ui.ColorReset+" %v\n", err)
		h.finishRun(run, "failed", fmt.Sprintf("браузер: %v", err), 0)
		return
	}
	defer br.Close()

	var prompt scraper.PromptFunc
	if h.readLine != nil {
		prompt = func(p string) (string, error) {
			fmt.Print(p)
			return h.readLine()
		}
	}

	session := scraper.NewSession(br, sc, h.log.Logger, prompt)

	fmt.Println(ui.ColorCyan + ui.IconPlay + " Выгрузка начата..." + ui.ColorReset)
	result, err := session.Run(ctx)

	h.persistSteps(run.ID, session.Steps())
	h.lastSelected = session.SelectedVariables()

	if err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Выгрузка завершилась ошибкой:"+ui.ColorReset+" %v\n", err)
		h.finishRun(run, "failed", err.Error(), 0)
		return
	}

	h.printResult(result)

	rowCount := 0
	summary := "экспорт на портале"
	if result.Frame != nil {
		h.lastFrame = result.Frame
		rowCount = len(result.Frame.Rows)
		summary = fmt.Sprintf("строк: %d, колонок: %d", rowCount, len(result.Frame.Columns))
	}
	h.finishRun(run, "completed", summary, rowCount)
}

func (h *ScrapeHandler) printResult(result *scraper.Result) {
	switch result.Format {
	case scraper.FormatExcel:
		if result.ExcelExported {
			fmt.Println(ui.ColorGreen + ui.IconCheckmark + " Экспорт Excel на портале завершен" + ui.ColorReset)
		} else {
			fmt.Println(ui.ColorYellow + ui.IconCross + " Экспорт Excel не удался" + ui.ColorReset)
		}
	case scraper.FormatDataFrame, scraper.FormatDict:
		frame := result.Frame
		if frame == nil && result.Dict != nil {
			fmt.Printf(ui.ColorGreen+ui.IconCheckmark+" Получен словарь с %d ключами\n"+ui.ColorReset, len(result.Dict))
			return
		}
		fmt.Printf(ui.ColorGreen+ui.IconCheckmark+" Прочитано строк: %d, колонок: %d"+ui.ColorReset+"\n",
			len(frame.Rows), len(frame.Columns))
		if len(frame.Explanations) > 0 {
			fmt.Printf(ui.ColorGray+"Пояснений: %d"+ui.ColorReset+"\n", len(frame.Explanations))
		}
	}
}

func (h *ScrapeHandler) persistSteps(runID uint, steps []scraper.StepResult) {
	for i, step := range steps {
		rec := &database.ScrapeStep{
			RunID:           runID,
			StepNo:          i + 1,
			Category:        step.Variable.Category,
			Subcategory:     step.Variable.Subcategory,
			ItemName:        step.Variable.ItemName,
			CalculationType: step.Variable.CalculationType,
			Success:         step.OK,
			Message:         step.Message,
		}
		if err := h.repo.CreateStep(rec); err != nil {
			h.log.Warn("Не удалось сохранить шаг", zap.Error(err))
		}
	}
}

func (h *ScrapeHandler) finishRun(run *database.ScrapeRun, status, summary string, rowCount int) {
	if err := h.repo.UpdateRunStatus(run.ID, status, summary, rowCount); err != nil {
		h.log.Warn("Не удалось обновить статус запуска", zap.Error(err))
	}
}

// LoadConfig подключает JSON-файл переменных для последующих запусков.
func (h *ScrapeHandler) LoadConfig(path string) {
	_, variables, err := scraper.LoadVariables(path)
	if err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка загрузки:"+ui.ColorReset+" %v\n", err)
		return
	}
	h.cfg.Scraper.VariablesFile = path
	fmt.Printf(ui.ColorGreen+ui.IconCheckmark+" Загружено переменных: %d"+ui.ColorReset+"\n", len(variables))
}

// ExportConfig сохраняет выбранные в последней сессии переменные.
func (h *ScrapeHandler) ExportConfig(path string) {
	if len(h.lastSelected) == 0 {
		fmt.Println(ui.ColorYellow + "Нет выбранных переменных: выполните интерактивную выгрузку" + ui.ColorReset)
		return
	}
	if err := scraper.ExportConfiguration(path, h.cfg.Scraper.Language, h.lastSelected); err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка экспорта:"+ui.ColorReset+" %v\n", err)
		return
	}
	fmt.Printf(ui.ColorGreen+ui.IconCheckmark+" Конфигурация сохранена: %s"+ui.ColorReset+"\n", path)
}

// ExportXLSX сохраняет таблицу последнего запуска в локальный файл.
func (h *ScrapeHandler) ExportXLSX(path string) {
	if h.lastFrame == nil {
		fmt.Println(ui.ColorYellow + "Нет данных: выполните выгрузку в формате dataframe или dict" + ui.ColorReset)
		return
	}
	if err := scraper.WriteXLSX(h.lastFrame, path); err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка записи XLSX:"+ui.ColorReset+" %v\n", err)
		return
	}
	fmt.Printf(ui.ColorGreen+ui.IconCheckmark+" Таблица сохранена: %s"+ui.ColorReset+"\n", path)
}
