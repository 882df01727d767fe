package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"evdsScraper/internal/cli/commands"
	"evdsScraper/internal/cli/ui"
	"evdsScraper/internal/config"
	"evdsScraper/internal/database"
	"evdsScraper/internal/logger"
	"evdsScraper/internal/server"
)

type CLI struct {
	cfg  *config.Cfg
	repo *database.RunRepository
	log  *logger.Zap
	srv  *server.Server
	rl   *readline.Instance

	scrapeHandler  *commands.ScrapeHandler
	showHandler    *commands.ShowHandler
	logsHandler    *commands.LogsHandler
	browserHandler *commands.BrowserHandler
}

func New(cfg *config.Cfg, repo *database.RunRepository, log *logger.Zap, srv *server.Server) *CLI {
	cli := &CLI{
		cfg:  cfg,
		repo: repo,
		log:  log,
		srv:  srv,
	}

	// Инициализация handlers
	cli.scrapeHandler = commands.NewScrapeHandler(cfg, repo, log, cli.readLine)
	cli.showHandler = commands.NewShowHandler(repo, log.Logger)
	cli.logsHandler = commands.NewLogsHandler(repo, log.Logger)
	cli.browserHandler = commands.NewBrowserHandler(cfg, cli.readLine)

	// Инициализация readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".evds-scraper-history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Warn("Не удалось инициализировать readline, будет использован fallback режим")
	} else {
		cli.rl = rl
	}

	return cli
}

func (c *CLI) readLine() (string, error) {
	if c.rl != nil {
		return c.rl.Readline()
	}
	// Fallback для работы без readline
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *CLI) closeReadline() {
	if c.rl != nil {
		c.rl.Close()
	}
}

func (c *CLI) Run(ctx context.Context) {
	ui.PrintWelcome()
	defer c.closeReadline()

	for {
		// Проверка отмены контекста
		select {
		case <-ctx.Done():
			println("\n" + ui.ColorCyan + ui.IconWave + " Получен сигнал завершения..." + ui.ColorReset)
			return
		default:
		}

		line, err := c.readLine()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			break
		}

		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		c.handleCommand(ctx, line)
	}
}

func (c *CLI) handleCommand(ctx context.Context, line string) {
	switch {
	case line == "exit":
		println(ui.ColorCyan + ui.IconWave + " До свидания!" + ui.ColorReset)
		os.Exit(0)

	case line == "clear":
		ui.ClearScreen()

	case line == "scrape":
		c.scrapeHandler.Run(ctx)

	case strings.HasPrefix(line, "config load "):
		path := strings.TrimPrefix(line, "config load ")
		c.scrapeHandler.LoadConfig(strings.TrimSpace(path))

	case strings.HasPrefix(line, "config export "):
		path := strings.TrimPrefix(line, "config export ")
		c.scrapeHandler.ExportConfig(strings.TrimSpace(path))

	case strings.HasPrefix(line, "export xlsx "):
		path := strings.TrimPrefix(line, "export xlsx ")
		c.scrapeHandler.ExportXLSX(strings.TrimSpace(path))

	case line == "runs":
		c.showHandler.List()

	case strings.HasPrefix(line, "show "):
		idStr := strings.TrimPrefix(line, "show ")
		c.showHandler.Show(idStr)

	case strings.HasPrefix(line, "logs "):
		idStr := strings.TrimPrefix(line, "logs ")
		c.logsHandler.Show(idStr)

	case line == "open-persistent":
		c.browserHandler.OpenPersistent(ctx)

	case strings.HasPrefix(line, "open "):
		url := strings.TrimPrefix(line, "open ")
		c.browserHandler.Open(ctx, url)

	case line == "serve":
		println(ui.ColorCyan + ui.IconGlobe + " HTTP API на " + c.cfg.Server.Addr + " (Ctrl+C для остановки)" + ui.ColorReset)
		if err := c.srv.Run(ctx); err != nil {
			println(ui.ColorRed + ui.IconCross + " Ошибка сервера: " + err.Error() + ui.ColorReset)
		}

	default:
		ui.PrintHelp()
	}
}
