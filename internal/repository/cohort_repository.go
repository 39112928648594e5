package repository

import (
	"errors"
	"resilience_backend/internal/model"

	"gorm.io/gorm"
)

type CohortRepository struct {
	DB *gorm.DB
}

func NewCohortRepository(db *gorm.DB) *CohortRepository {
	return &CohortRepository{DB: db}
}

func (r *CohortRepository) Create(cohort *model.Cohort) error {
	return r.DB.Create(cohort).Error
}

func (r *CohortRepository) FindByID(id uint) (*model.Cohort, error) {
	var c model.Cohort
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *CohortRepository) List(page, limit int) ([]model.Cohort, int64, error) {
	var cohorts []model.Cohort
	var total int64
	query := r.DB.Model(&model.Cohort{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&cohorts).Error
	return cohorts, total, err
}

func (r *CohortRepository) Update(cohort *model.Cohort) error {
	return r.DB.Save(cohort).Error
}

func (r *CohortRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Cohort{}, id).Error
}

// Code methods

func (r *CohortRepository) CreateCodes(codes []model.AssessmentCode) error {
	return r.DB.Create(&codes).Error
}

func (r *CohortRepository) FindCodeByID(id uint) (*model.AssessmentCode, error) {
	var c model.AssessmentCode
	err := r.DB.Preload("Cohort").First(&c, id).Error
	return &c, err
}

// FindCodeWithCohort resolves a code string. A missing code returns
// (nil, nil): "not found" is an expected validation outcome, not a
// persistence failure.
func (r *CohortRepository) FindCodeWithCohort(code string) (*model.AssessmentCode, error) {
	var c model.AssessmentCode
	err := r.DB.Preload("Cohort").Where("code = ?", code).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CohortRepository) ListCodes(cohortID uint, page, limit int) ([]model.AssessmentCode, int64, error) {
	var codes []model.AssessmentCode
	var total int64
	query := r.DB.Model(&model.AssessmentCode{}).Where("cohort_id = ?", cohortID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&codes).Error
	return codes, total, err
}

func (r *CohortRepository) UpdateCode(code *model.AssessmentCode) error {
	return r.DB.Save(code).Error
}

func (r *CohortRepository) SetCodeStatus(id uint, status string) error {
	return r.DB.Model(&model.AssessmentCode{}).Where("id = ?", id).Update("status", status).Error
}
