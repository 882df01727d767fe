// Package database предоставляет модели данных и репозиторий для работы с PostgreSQL.
// Использует GORM ORM с prepared statements для защиты от SQL injection.
package database

import "time"

// ScrapeRun представляет один запуск сессии скрейпинга.
// Статусы: pending, running, completed, failed.
type ScrapeRun struct {
	ID           uint      `gorm:"primaryKey"`
	Mode         string    `gorm:"type:varchar(16);not null"`                   // Режим (automatic, interactive)
	OutputFormat string    `gorm:"type:varchar(16);not null"`                   // Формат вывода (excel, dataframe, dict)
	Status       string    `gorm:"type:varchar(32);not null;default:'pending'"` // Статус выполнения
	RowCount     int       // Количество прочитанных строк таблицы
	Summary      string    `gorm:"type:text"` // Итоговый результат запуска
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// ScrapeStep представляет обработку одной переменной в рамках запуска.
type ScrapeStep struct {
	ID              uint      `gorm:"primaryKey"`
	RunID           uint      `gorm:"index;not null"`             // ID запуска
	StepNo          int       `gorm:"not null"`                   // Номер переменной в пакете
	Category        string    `gorm:"type:text"`                  // Категория
	Subcategory     string    `gorm:"type:text"`                  // Подкатегория
	ItemName        string    `gorm:"type:text"`                  // Показатель
	CalculationType string    `gorm:"type:text"`                  // Тип расчета
	Success         bool      `gorm:"not null;default:false"`     // Исход обработки
	Message         string    `gorm:"type:text"`                  // Сообщение об исходе
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}
