package repository

import (
	"resilience_backend/internal/model"

	"gorm.io/gorm"
)

type AreaRepository struct {
	DB *gorm.DB
}

func NewAreaRepository(db *gorm.DB) *AreaRepository {
	return &AreaRepository{DB: db}
}

func (r *AreaRepository) Create(area *model.ResilienceArea) error {
	return r.DB.Create(area).Error
}

func (r *AreaRepository) FindByID(id uint) (*model.ResilienceArea, error) {
	var a model.ResilienceArea
	err := r.DB.Preload("SubAreas").Preload("ScoreRanges").First(&a, id).Error
	return &a, err
}

func (r *AreaRepository) List() ([]model.ResilienceArea, error) {
	var areas []model.ResilienceArea
	err := r.DB.Preload("SubAreas").Order("display_order asc, created_at asc").Find(&areas).Error
	return areas, err
}

func (r *AreaRepository) Update(area *model.ResilienceArea) error {
	return r.DB.Save(area).Error
}

func (r *AreaRepository) Delete(id uint) error {
	return r.DB.Delete(&model.ResilienceArea{}, id).Error
}

// Sub-area methods

func (r *AreaRepository) CreateSubArea(sub *model.SubArea) error {
	return r.DB.Create(sub).Error
}

func (r *AreaRepository) FindSubAreaByID(id uint) (*model.SubArea, error) {
	var s model.SubArea
	err := r.DB.Preload("ScoreRanges").First(&s, id).Error
	return &s, err
}

func (r *AreaRepository) ListSubAreas(areaID uint) ([]model.SubArea, error) {
	var subs []model.SubArea
	err := r.DB.Where("area_id = ?", areaID).Order("display_order asc, created_at asc").Find(&subs).Error
	return subs, err
}

func (r *AreaRepository) UpdateSubArea(sub *model.SubArea) error {
	return r.DB.Save(sub).Error
}

func (r *AreaRepository) DeleteSubArea(id uint) error {
	return r.DB.Delete(&model.SubArea{}, id).Error
}

// Score range methods. Replacements are transactional so readers never
// observe a partially written partition.

func (r *AreaRepository) ReplaceAreaRanges(areaID uint, ranges []model.ScoreRange) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var oldIDs []uint
		if err := tx.Model(&model.ScoreRange{}).Where("area_id = ?", areaID).Pluck("id", &oldIDs).Error; err != nil {
			return err
		}
		if len(oldIDs) > 0 {
			if err := tx.Where("score_range_id IN ?", oldIDs).Delete(&model.FeedbackContent{}).Error; err != nil {
				return err
			}
			if err := tx.Where("area_id = ?", areaID).Delete(&model.ScoreRange{}).Error; err != nil {
				return err
			}
		}
		for i := range ranges {
			ranges[i].AreaID = areaID
			if err := tx.Create(&ranges[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AreaRepository) ReplaceSubAreaRanges(subAreaID uint, ranges []model.SubAreaScoreRange) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sub_area_id = ?", subAreaID).Delete(&model.SubAreaScoreRange{}).Error; err != nil {
			return err
		}
		for i := range ranges {
			ranges[i].SubAreaID = subAreaID
			if err := tx.Create(&ranges[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AreaRepository) FindRangeByID(id uint) (*model.ScoreRange, error) {
	var sr model.ScoreRange
	err := r.DB.First(&sr, id).Error
	return &sr, err
}

func (r *AreaRepository) UpsertFeedbackContent(content *model.FeedbackContent) error {
	var existing model.FeedbackContent
	err := r.DB.Where("score_range_id = ? AND content_type = ?", content.ScoreRangeID, content.ContentType).
		First(&existing).Error
	if err == nil {
		existing.Body = content.Body
		return r.DB.Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.DB.Create(content).Error
}

// Overall feedback band methods

func (r *AreaRepository) ListOverallFeedback() ([]model.OverallFeedbackContent, error) {
	var contents []model.OverallFeedbackContent
	err := r.DB.Order("min_overall_score asc").Find(&contents).Error
	return contents, err
}

func (r *AreaRepository) ReplaceOverallFeedback(contents []model.OverallFeedbackContent) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.OverallFeedbackContent{}).Error; err != nil {
			return err
		}
		for i := range contents {
			if err := tx.Create(&contents[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
