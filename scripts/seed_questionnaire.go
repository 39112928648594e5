// Seeds a starter questionnaire: three resilience areas with
// sub-areas, questions and four-tier score ranges. Intended for a
// fresh deployment so the respondent flow works before an admin has
// configured anything.
//
// Usage: go run scripts/seed_questionnaire.go

package main

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"resilience_backend/internal/config"
	"resilience_backend/internal/model"
	"resilience_backend/pkg/database"
	"resilience_backend/pkg/logger"
)

type seedArea struct {
	name      string
	subAreas  []string
	questions []seedQuestion
}

type seedQuestion struct {
	text     string
	reversed bool
	subAreas []int // indexes into subAreas
}

var seedAreas = []seedArea{
	{
		name:     "Adaptability",
		subAreas: []string{"Flexibility", "Openness to Change"},
		questions: []seedQuestion{
			{text: "I adjust easily when plans change unexpectedly.", subAreas: []int{0}},
			{text: "I find it hard to let go of how things used to be.", reversed: true, subAreas: []int{1}},
			{text: "I look for new approaches when the usual one stops working.", subAreas: []int{0, 1}},
		},
	},
	{
		name:     "Emotional Regulation",
		subAreas: []string{"Stress Response", "Self-Awareness"},
		questions: []seedQuestion{
			{text: "I stay calm under pressure.", subAreas: []int{0}},
			{text: "Small setbacks tend to ruin my whole day.", reversed: true, subAreas: []int{0}},
			{text: "I notice my emotions before they take over.", subAreas: []int{1}},
		},
	},
	{
		name:     "Support Networks",
		subAreas: []string{"Seeking Help"},
		questions: []seedQuestion{
			{text: "I have people I can turn to when things get difficult.", subAreas: []int{0}},
			{text: "I prefer to struggle alone rather than ask for help.", reversed: true, subAreas: []int{0}},
		},
	},
}

var seedTiers = []struct {
	min, max float64
	name     string
	code     string
	color    string
}{
	{0, 40, "Developing", "developing", "#e53935"},
	{40, 60, "Emerging", "emerging", "#f9a825"},
	{60, 80, "Strong", "strong", "#1976d2"},
	{80, 100, "Exceptional", "exceptional", "#2e7d32"},
}

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var existing int64
	db.Model(&model.ResilienceArea{}).Count(&existing)
	if existing > 0 {
		log.Println("areas already present, nothing to seed")
		return
	}

	for order, sa := range seedAreas {
		area := model.ResilienceArea{Name: sa.name, DisplayOrder: order + 1, IsActive: true}
		if err := db.Create(&area).Error; err != nil {
			log.Fatalf("failed to create area %q: %v", sa.name, err)
		}

		subs := make([]model.SubArea, len(sa.subAreas))
		for i, name := range sa.subAreas {
			subs[i] = model.SubArea{AreaID: area.ID, Name: name, DisplayOrder: i + 1}
			if err := db.Create(&subs[i]).Error; err != nil {
				log.Fatalf("failed to create sub-area %q: %v", name, err)
			}
			for _, t := range seedTiers {
				db.Create(&model.SubAreaScoreRange{
					SubAreaID: subs[i].ID,
					MinScore:  t.min,
					MaxScore:  t.max,
					LevelName: t.name,
					LevelCode: t.code,
					Color:     t.color,
				})
			}
		}

		for qOrder, sq := range sa.questions {
			q := model.Question{
				AreaID:          area.ID,
				Text:            sq.text,
				QuestionType:    model.QuestionTypeLikert5,
				Weight:          1,
				IsReverseScored: sq.reversed,
				DisplayOrder:    qOrder + 1,
				IsActive:        true,
			}
			if err := db.Create(&q).Error; err != nil {
				log.Fatalf("failed to create question: %v", err)
			}
			for _, idx := range sq.subAreas {
				db.Create(&model.QuestionSubArea{QuestionID: q.ID, SubAreaID: subs[idx].ID})
			}
		}

		for _, t := range seedTiers {
			db.Create(&model.ScoreRange{
				AreaID:    area.ID,
				MinScore:  t.min,
				MaxScore:  t.max,
				LevelName: t.name,
				LevelCode: t.code,
				Color:     t.color,
			})
		}
	}

	log.Println("seed complete")
}
