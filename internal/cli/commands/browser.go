package commands

import (
	"context"
	"fmt"
	"strings"

	"evdsScraper/internal/browser"
	"evdsScraper/internal/cli/ui"
	"evdsScraper/internal/config"
)

// BrowserHandler обрабатывает команды браузера
type BrowserHandler struct {
	cfg      *config.Cfg
	readLine func() (string, error)
}

func NewBrowserHandler(cfg *config.Cfg, readLine func() (string, error)) *BrowserHandler {
	return &BrowserHandler{
		cfg:      cfg,
		readLine: readLine,
	}
}

func (h *BrowserHandler) newBrowser() *browser.PlaywrightBrowser {
	return browser.New(browser.Config{
		Headless:     h.cfg.Browser.Headless,
		UserDataDir:  h.cfg.Browser.UserDataDir,
		BrowsersPath: h.cfg.Browser.BrowsersPath,
		Display:      h.cfg.Browser.Display,
	})
}

// OpenPersistent открывает браузер в persistent режиме для ручной
// настройки (логин, язык, cookies)
func (h *BrowserHandler) OpenPersistent(ctx context.Context) {
	br := h.newBrowser()

	fmt.Println(ui.ColorCyan + ui.IconGlobe + " Запуск браузера в persistent режиме..." + ui.ColorReset)
	if err := br.Launch(ctx); err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка запуска:"+ui.ColorReset+" %v\n", err)
		return
	}

	fmt.Println(ui.ColorGreen + ui.IconCheckmark + " Браузер открыт с сохранением сессии" + ui.ColorReset)
	fmt.Println(ui.ColorGray + "Вы можете вручную настроить портал, затем используйте '" + ui.ColorYellow + "scrape" + ui.ColorGray + "'" + ui.ColorReset)
	fmt.Println(ui.ColorYellow + "⏎ Нажмите Enter для закрытия браузера..." + ui.ColorReset)
	h.readLine()
	br.Close()
	fmt.Println(ui.ColorGreen + ui.IconCheckmark + " Сессия сохранена" + ui.ColorReset)
}

// Open открывает URL в браузере
func (h *BrowserHandler) Open(ctx context.Context, url string) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	br := h.newBrowser()

	fmt.Println(ui.ColorCyan + ui.IconGlobe + " Запуск браузера..." + ui.ColorReset)
	if err := br.Launch(ctx); err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка запуска:"+ui.ColorReset+" %v\n", err)
		return
	}

	fmt.Printf(ui.ColorCyan+ui.IconArrow+" Открытие %s..."+ui.ColorReset+"\n", url)
	if err := br.Navigate(ctx, url); err != nil {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка навигации:"+ui.ColorReset+" %v\n", err)
		br.Close()
		return
	}

	fmt.Println(ui.ColorGreen + ui.IconCheckmark + " Страница открыта" + ui.ColorReset)
	fmt.Println(ui.ColorYellow + "⏎ Нажмите Enter для закрытия браузера..." + ui.ColorReset)
	h.readLine()
	br.Close()
	fmt.Println(ui.ColorGray + "Браузер закрыт" + ui.ColorReset)
}
