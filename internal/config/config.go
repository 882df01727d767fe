package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Cfg struct {
	Database   Database
	Logger     Logger
	Browser    Browser
	Scraper    Scraper
	Server     Server
	Migrations Migrations
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

type Migrations struct {
	Path string
}

type Logger struct {
	Env   string
	Level string
}

type Browser struct {
	Display      string
	Headless     bool
	UserDataDir  string
	BrowsersPath string
}

type Server struct {
	Addr string
}

// Scraper — настройки сессии скрейпинга EVDS.
// Частота и даты опциональны: если заданы все три, включается
// автоматический режим дат, иначе даты запрашиваются интерактивно.
type Scraper struct {
	Language            string
	IncludeExplanations bool
	OutputFormat        string
	Frequency           string
	BeginDate           string
	EndDate             string
	VariablesFile       string // JSON-файл с переменными (пусто = интерактивный режим)
	ScrollBudget        int    // Лимит прокруток таблицы до целевой даты
}

func Load() (*Cfg, error) {
	_ = godotenv.Load()

	cfg := &Cfg{
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
		},
		Browser: Browser{
			Display:      env("DISPLAY", ":0"),
			Headless:     envBool("PW_HEADLESS"),
			UserDataDir:  env("PW_USER_DATA_DIR", ""),
			BrowsersPath: env("PLAYWRIGHT_BROWSERS_PATH", ""),
		},
		Scraper: Scraper{
			Language:            env("EVDS_LANGUAGE", "english"),
			IncludeExplanations: envBoolDefault("EVDS_EXPLANATIONS", true),
			OutputFormat:        env("EVDS_OUTPUT_FORMAT", "excel"),
			Frequency:           os.Getenv("EVDS_FREQUENCY"),
			BeginDate:           os.Getenv("EVDS_BEGIN_DATE"),
			EndDate:             os.Getenv("EVDS_END_DATE"),
			VariablesFile:       os.Getenv("EVDS_VARIABLES_FILE"),
			ScrollBudget:        envInt("EVDS_SCROLL_BUDGET", 200),
		},
		Server: Server{
			Addr: env("SERVER_ADDR", ":8080"),
		},
		Migrations: Migrations{
			Path: env("MIGRATIONS_PATH", "file://migrations"),
		},
	}

	return cfg, nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}

func envBoolDefault(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	v = strings.ToLower(v)
	return v == "true" || v == "1" || v == "yes"
}
