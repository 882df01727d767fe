package scraper

// CSS-селекторы страницы EVDS. Структура страницы стабильна,
// селекторы зафиксированы константами.
const (
	selLanguageButton = "#languageBut"

	selCategoryMenu = "h4.panel-title.serie-market-menu-category"
	selCategories   = "h4.panel-title.serie-market-menu-category a.accordion-toggle"

	selSubcategories = "a.serieMarketDataGroupItemLink"

	selItemRows     = "tr.fcsable"
	selItemCheckbox = "input.checkboxes"
	selItemsChecked = "input.checkboxes:checked"
	selItemText     = "td.ws_enabled"

	selCalcDropdown = "button.multiselect.dropdown-toggle"
	selCalcChecked  = "ul.multiselect-container li.active input[type='checkbox']"
	selCalcOptions  = "ul.multiselect-container li"
	selCalcLabel    = "label.checkbox"
	selCalcCheckbox = "input[type='checkbox']"

	selAddToCart    = "a[href*='addToCart']"
	selReportButton = ".serieMarketReportButton"

	selFrequency      = "#frekansSelect"
	selFrequencyOpts  = "option"
	selBeginDate      = "#beginDate"
	selEndDate        = "#endDate"
	selBeginDateLabel = "#beginDateLabel"
	selEndDateLabel   = "#endDateLabel"

	selTableContent    = ".dx-datagrid-content"
	selTableHeaders    = "td[role='columnheader'] .dx-datagrid-text-content"
	selScrollContainer = "div.dx-scrollable-container"
	selTableRows       = "tr.dx-row.dx-data-row"
	selTableCells      = "td"

	selExcelButton    = "div#excelButton_"
	selDownloadButton = "#evdsDscModalButtonDownload"

	selExplanationTab      = "#tab_6_1_"
	selExplanationSections = "#tab_6_1_ .col-md-12"
	selExplanationCode     = ".col-md-4 h6 p"
	selExplanationDesc     = ".col-md-4:nth-child(2) h6"
	selExplanationText     = "p"
	selExplanationInfo     = "div[id^='infoD_']"

	selBody = "body"
)
