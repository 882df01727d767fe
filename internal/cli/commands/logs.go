package commands

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"evdsScraper/internal/cli/ui"
	"evdsScraper/internal/database"
)

// LogsHandler выводит компактную ленту шагов запуска
type LogsHandler struct {
	repo *database.RunRepository
	log  *zap.Logger
}

func NewLogsHandler(repo *database.RunRepository, log *zap.Logger) *LogsHandler {
	return &LogsHandler{
		repo: repo,
		log:  log,
	}
}

// Show выводит шаги запуска
func (h *LogsHandler) Show(idStr string) {
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

	fmt.Printf("\n"+ui.ColorBold+"=== "+ui.IconList+" Шаги запуска #%d ==="+ui.ColorReset+"\n", run.ID)
	fmt.Printf(ui.ColorCyan+"Статус:"+ui.ColorReset+" %s\n\n", run.Status)

	steps, err := h.repo.GetStepsByRunID(run.ID)
	if err != nil {
		h.log.Error("Ошибка получения шагов", zap.Error(err))
		fmt.Println(ui.ColorRed + ui.IconCross + " Ошибка получения шагов" + ui.ColorReset)
		return
	}

	if len(steps) == 0 {
		fmt.Println(ui.ColorGray + "Шаги не найдены" + ui.ColorReset)
		return
	}

	for _, step := range steps {
		fmt.Printf(ui.ColorGray+"[%s]"+ui.ColorReset+" "+ui.ColorCyan+"%s"+ui.ColorReset,
			step.CreatedAt.Format("15:04:05"), step.ItemName)
		fmt.Println()
		if step.Success {
			fmt.Printf("  "+ui.ColorGreen+"[OK]"+ui.ColorReset+" %s\n", step.Message)
		} else {
			fmt.Printf("  "+ui.ColorRed+"[ОШИБКА]"+ui.ColorReset+" %s\n", step.Message)
		}
	}
	fmt.Println()
}
