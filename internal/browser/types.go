package browser

import (
	"context"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Handle — непрозрачная ссылка на элемент страницы.
// Ядро скрейпера работает только с Handle и интерфейсом Driver,
// не зная о конкретном движке автоматизации.
type Handle any

// Driver — минимальный набор возможностей браузера, от которого
// зависит логика скрейпера. Реализуется PlaywrightBrowser и
// фейковым драйвером в тестах.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	// List возвращает все элементы по селектору, не дожидаясь их появления.
	List(ctx context.Context, selector string) ([]Handle, error)
	// ListIn ищет элементы внутри родительского элемента.
	ListIn(ctx context.Context, parent Handle, selector string) ([]Handle, error)
	Text(h Handle) (string, error)
	Attr(h Handle, name string) (string, error)
	Click(ctx context.Context, h Handle) error
	Fill(ctx context.Context, h Handle, text string) error
	// SetSelectValue выставляет значение <select> и диспатчит событие change.
	SetSelectValue(ctx context.Context, h Handle, value string) error
	// ScrollBy прокручивает контейнер на delta пикселей вниз.
	ScrollBy(ctx context.Context, container Handle, delta int) error
	// WaitFor ждет появления элемента в DOM с ограничением по времени.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) (Handle, error)
	// WaitVisible ждет видимости элемента.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) (Handle, error)
	IsVisible(h Handle) (bool, error)
}

type PlaywrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	cfg     Config
	mu      sync.RWMutex
}

type Config struct {
	Headless        bool
	UserDataDir     string
	BrowsersPath    string
	Display         string
	Timeout         time.Duration
	NavigateTimeout time.Duration
	ActionTimeout   time.Duration
}
