package repository

import (
	"resilience_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("SubAreas").First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) ListByArea(areaID uint, activeOnly bool) ([]model.Question, error) {
	var qs []model.Question
	query := r.DB.Preload("SubAreas").Where("area_id = ?", areaID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("display_order asc, created_at asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) List(page, limit int) ([]model.Question, int64, error) {
	var qs []model.Question
	var total int64
	query := r.DB.Model(&model.Question{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := r.DB.Preload("SubAreas").Order("area_id asc, display_order asc").
		Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.QuestionSubArea{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

// SetSubAreas replaces a question's sub-area assignments.
func (r *QuestionRepository) SetSubAreas(questionID uint, subAreaIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&model.QuestionSubArea{}).Error; err != nil {
			return err
		}
		for _, saID := range subAreaIDs {
			link := model.QuestionSubArea{QuestionID: questionID, SubAreaID: saID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
