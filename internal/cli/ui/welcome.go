package ui

import "fmt"

// PrintWelcome выводит приветствие
func PrintWelcome() {
	fmt.Println(ColorBold + IconChart + " EVDS Scraper v0.1.0" + ColorReset)
	fmt.Println(ColorGray + "Выгрузка статистических серий с портала EVDS (ЦБ Турции)" + ColorReset)
	fmt.Println()
	PrintHelp()
	fmt.Println(ColorCyan + IconBulb + " Совет:" + ColorReset + " Задайте " + ColorYellow + "EVDS_VARIABLES_FILE" + ColorReset + " или выполните " + ColorYellow + "config load <файл>" + ColorReset + " для автоматического режима")
	fmt.Println()
}

// PrintHelp выводит список доступных команд
func PrintHelp() {
	fmt.Println(ColorYellow + IconList + " Доступные команды:" + ColorReset)
	fmt.Println("  " + ColorGreen + "scrape" + ColorReset + "              - Запустить выгрузку (автоматически или интерактивно)")
	fmt.Println("  " + ColorGreen + "config load" + ColorReset + " <файл>  - Загрузить переменные из JSON-файла")
	fmt.Println("  " + ColorGreen + "config export" + ColorReset + " <файл>- Сохранить выбранные переменные в JSON")
	fmt.Println("  " + ColorGreen + "export xlsx" + ColorReset + " <файл>  - Сохранить последнюю таблицу в XLSX")
	fmt.Println("  " + ColorGreen + "runs" + ColorReset + "                - Список запусков")
	fmt.Println("  " + ColorGreen + "show" + ColorReset + " <id>           - Детали запуска")
	fmt.Println("  " + ColorGreen + "logs" + ColorReset + " <id>           - Шаги запуска")
	fmt.Println("  " + ColorGreen + "open" + ColorReset + " <url>          - Открыть URL в браузере")
	fmt.Println("  " + ColorGreen + "open-persistent" + ColorReset + "     - Открыть браузер для ручной настройки")
	fmt.Println("  " + ColorGreen + "serve" + ColorReset + "               - Запустить HTTP API над журналом запусков")
	fmt.Println("  " + ColorGreen + "clear" + ColorReset + "               - Очистить экран")
	fmt.Println("  " + ColorGreen + "exit" + ColorReset + "                - Выход")
	fmt.Println()
}
