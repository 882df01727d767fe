package database

import "gorm.io/gorm"

type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) CreateRun(run *ScrapeRun) error {
	return r.db.Create(run).Error
}

func (r *RunRepository) GetRunByID(id uint) (*ScrapeRun, error) {
	var run ScrapeRun
	if err := r.db.First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *RunRepository) ListRuns(limit, offset int) ([]ScrapeRun, error) {
	var runs []ScrapeRun
	if err := r.db.Order("id DESC").Limit(limit).Offset(offset).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *RunRepository) UpdateRunStatus(id uint, status, summary string, rowCount int) error {
	return r.db.Model(&ScrapeRun{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":    status,
			"summary":   summary,
			"row_count": rowCount,
		}).Error
}

func (r *RunRepository) CreateStep(step *ScrapeStep) error {
	return r.db.Create(step).Error
}

func (r *RunRepository) GetStepsByRunID(runID uint) ([]ScrapeStep, error) {
	var steps []ScrapeStep
	if err := r.db.Where("run_id = ?", runID).Order("step_no ASC").Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}
