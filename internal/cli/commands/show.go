package commands

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"evdsScraper/internal/cli/ui"
	"evdsScraper/internal/database"
)

// ShowHandler обрабатывает команды просмотра журнала запусков
type ShowHandler struct {
	repo *database.RunRepository
	log  *zap.Logger
}

func NewShowHandler(repo *database.RunRepository, log *zap.Logger) *ShowHandler {
	return &ShowHandler{
		repo: repo,
		log:  log,
	}
}

// List выводит последние запуски
func (h *ShowHandler) List() {
	runs, err := h.repo.ListRuns(20, 0)
	if err != nil {
		h.log.Error("Ошибка получения запусков", zap.Error(err))
		fmt.Println(ui.ColorRed + ui.IconCross + " Ошибка получения запусков" + ui.ColorReset)
		return
	}

	if len(runs) == 0 {
		fmt.Println(ui.ColorGray + "Запусков пока нет" + ui.ColorReset)
		return
	}

	fmt.Println("\n" + ui.ColorBold + "=== " + ui.IconList + " Запуски ===" + ui.ColorReset)
	for _, run := range runs {
		icon, color, statusText := ui.FormatStatus(run.Status)
		fmt.Printf("%s#%d%s %s%s %s%s  %s  %s(%s, %s)%s\n",
			ui.ColorBold, run.ID, ui.ColorReset,
			color, icon, statusText, ui.ColorReset,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			ui.ColorGray, run.Mode, run.OutputFormat, ui.ColorReset,
		)
	}
	fmt.Println()
}

// Show выводит детали запуска со всеми шагами
func (h *ShowHandler) Show(idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		fmt.Println(ui.ColorRed + ui.IconCross + " Неверный ID запуска" + ui.ColorReset)
		return
	}
	run, err := h.repo.GetRunByID(uint(id))
	if err != nil {
		fmt.Println(ui.ColorRed + ui.IconCross + " Запуск не найден" + ui.ColorReset)
		return
	}

	_, _, statusText := ui.FormatStatus(run.Status)

	fmt.Printf("\n"+ui.ColorBold+"=== Запуск #%d ==="+ui.ColorReset+"\n", run.ID)
	fmt.Printf(ui.ColorCyan+ui.IconChart+" Режим:"+ui.ColorReset+" %s, формат: %s\n", run.Mode, run.OutputFormat)
	fmt.Printf(ui.ColorCyan+ui.IconDocument+" Статус:"+ui.ColorReset+" %s\n", statusText)
	fmt.Printf(ui.ColorCyan+ui.IconTime+" Создан:"+ui.ColorReset+" %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	if run.Summary != "" {
		fmt.Printf(ui.ColorCyan+" Результат:"+ui.ColorReset+" %s\n", run.Summary)
	}

	steps, err := h.repo.GetStepsByRunID(run.ID)
	if err != nil {
		h.log.Error("Ошибка получения шагов", zap.Error(err))
		fmt.Println(ui.ColorRed + ui.IconCross + " Ошибка получения шагов" + ui.ColorReset)
		return
	}

	if len(steps) > 0 {
		fmt.Printf("\n"+ui.ColorYellow+ui.IconLoop+" Переменные (%d):"+ui.ColorReset+"\n", len(steps))
		for _, step := range steps {
			icon := ui.ColorGreen + ui.IconCheckmark
			if !step.Success {
				icon = ui.ColorRed + ui.IconCross
			}
			fmt.Printf("\n%s"+ui.ColorReset+" "+ui.ColorBold+"[%d]"+ui.ColorReset+" %s / %s / %s\n",
				icon, step.StepNo, step.Category, step.Subcategory, step.ItemName)
			if step.CalculationType != "" {
				fmt.Printf("  "+ui.ColorGray+"Тип расчета:"+ui.ColorReset+" %s\n", step.CalculationType)
			}
			if step.Message != "" {
				fmt.Printf("  "+ui.ColorGray+"Сообщение:"+ui.ColorReset+" %s\n", step.Message)
			}
		}
	} else {
		fmt.Println("\n" + ui.ColorGray + "Шаги не найдены" + ui.ColorReset)
	}
	fmt.Println()
}
