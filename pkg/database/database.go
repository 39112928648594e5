package database

import (
	"fmt"
	"log"
	"resilience_backend/internal/config"
	"resilience_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.ResilienceArea{},
		&model.SubArea{},
		&model.Question{},
		&model.QuestionSubArea{},
		&model.ScoreRange{},
		&model.SubAreaScoreRange{},
		&model.FeedbackContent{},
		&model.OverallFeedbackContent{},
		&model.AreaFeedbackRule{},
		&model.RuleCondition{},
		&model.Cohort{},
		&model.AssessmentCode{},
		&model.AssessmentSession{},
		&model.SessionResponse{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Bootstrap admin so a fresh install is reachable.
	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err == nil {
			db.Create(&model.User{
				Name:     "Administrator",
				Email:    "admin@resilience.local",
				Password: string(hash),
				Role:     model.Admin,
			})
			log.Println("Seeded default admin account (admin@resilience.local)")
		}
	}

	// Default overall feedback bands aligned with the fixed level tiers.
	// Admins can edit the prose and band edges afterwards.
	var bandCount int64
	db.Model(&model.OverallFeedbackContent{}).Count(&bandCount)
	if bandCount == 0 {
		defaults := []model.OverallFeedbackContent{
			{MinOverallScore: 0, MaxOverallScore: 40, ContentType: model.ContentTypeSummary, Body: "Your overall resilience is still developing. Focus on the growth areas highlighted in each section."},
			{MinOverallScore: 40, MaxOverallScore: 60, ContentType: model.ContentTypeSummary, Body: "Your overall resilience is emerging. You have a base to build on in several areas."},
			{MinOverallScore: 60, MaxOverallScore: 80, ContentType: model.ContentTypeSummary, Body: "Your overall resilience is strong. Keep reinforcing the habits that got you here."},
			{MinOverallScore: 80, MaxOverallScore: 100, ContentType: model.ContentTypeSummary, Body: "Your overall resilience is exceptional. Consider mentoring others in the areas where you excel."},
		}
		for _, b := range defaults {
			db.Create(&b)
		}
	}

	return db, nil
}
