// Package scraper реализует сессию выгрузки статистики с портала EVDS:
// выбор серий данных (категория → подкатегория → показатель → тип расчета),
// настройку частоты и диапазона дат, построение отчета и чтение таблицы.
package scraper

// BaseURL — страница рынка серий данных EVDS.
const BaseURL = "https://evds2.tcmb.gov.tr/index.php?/evds/serieMarket"

// Variable — одна полностью определенная серия данных.
// Неизменяема после создания, единица работы автоматического режима.
type Variable struct {
	Category        string `json:"category"`
	Subcategory     string `json:"subcategory"`
	ItemName        string `json:"item_name"`
	CalculationType string `json:"calculation_type"`
}

type OutputFormat string

const (
	FormatExcel     OutputFormat = "excel"
	FormatDataFrame OutputFormat = "dataframe"
	FormatDict      OutputFormat = "dict"
)

// ParseOutputFormat нормализует строку формата вывода.
func ParseOutputFormat(s string) OutputFormat {
	switch s {
	case "df", "dataframe":
		return FormatDataFrame
	case "dict":
		return FormatDict
	default:
		return FormatExcel
	}
}

// Config — конфигурация сессии. Создается один раз при старте,
// далее только читается.
type Config struct {
	Language            string
	IncludeExplanations bool
	OutputFormat        OutputFormat
	Variables           []Variable
	Frequency           string
	BeginDate           string
	EndDate             string
	ScrollBudget        int
}

// DateModeAutomatic — истинно, когда частота и обе даты заданы в конфиге
// и интерактивный запрос дат не нужен.
func (c *Config) DateModeAutomatic() bool {
	return c.Frequency != "" && c.BeginDate != "" && c.EndDate != ""
}

// Frequencies — фиксированный словарь частот: ключ конфига → значение
// выпадающего списка на странице. Неизвестный ключ — ошибка конфигурации.
var Frequencies = map[string]string{
	"daily":      "Date",
	"workday":    "WORKDAY",
	"weekly":     "YEARWEEK",
	"monthly":    "MONTH",
	"quarterly":  "QUARTER",
	"semiannual": "SEMIYEAR",
	"annual":     "YEAR",
}

// DateFormats — ожидаемый формат даты для каждого значения частоты.
// Формат сообщается пользователю, но не валидируется перед отправкой.
var DateFormats = map[string]string{
	"Date":     "DD-MM-YYYY",
	"WORKDAY":  "DD-MM-YYYY",
	"YEARWEEK": "DD-MM-YYYY",
	"MONTH":    "MM-YYYY",
	"QUARTER":  "Q[1-4]-YYYY",
	"SEMIYEAR": "S[1-2]-YYYY",
	"YEAR":     "YYYY",
}

// TableRow — строка таблицы: имя колонки → текст ячейки.
// Строка короче заголовка дает частичное отображение.
type TableRow map[string]string

// Frame — упорядоченный результат чтения таблицы. Порядок строк —
// порядок первого наблюдения при прокрутке, дубликаты по ключу
// (тексту первой колонки) отброшены.
type Frame struct {
	Columns      []string
	Rows         []TableRow
	Explanations []Explanation
}

// Explanation — пояснение к одной серии из боковой панели отчета.
type Explanation struct {
	Code            string `json:"code"`
	Description     string `json:"description"`
	CalculationType string `json:"calculation_type"`
	AdditionalInfo  string `json:"additional_info"`
}

// Result — итог сессии в одном из трех форматов вывода.
type Result struct {
	Format        OutputFormat
	ExcelExported bool           // формат excel: успех экспорта на портале
	Frame         *Frame         // форматы dataframe и dict
	Dict          map[string]any // формат dict
}

// StepResult — исход обработки одной переменной, для журнала запусков.
type StepResult struct {
	Variable Variable
	OK       bool
	Message  string
}
