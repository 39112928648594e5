package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"resilience_backend/internal/repository"
)

type ExportService struct {
	Cohorts  *repository.CohortRepository
	Sessions *repository.SessionRepository
	Areas    *repository.AreaRepository
	Storage  *StorageService
}

func NewExportService(cohorts *repository.CohortRepository, sessions *repository.SessionRepository, areas *repository.AreaRepository, storage *StorageService) *ExportService {
	return &ExportService{Cohorts: cohorts, Sessions: sessions, Areas: areas, Storage: storage}
}

type ExportResult struct {
	Filename     string `json:"filename"`
	URL          string `json:"url"`
	SessionCount int    `json:"sessionCount"`
}

// ExportCohortResults writes one CSV row per completed session of a
// cohort and uploads it to the configured storage backend. Area score
// columns come from the cached score map written on completion, so an
// export never triggers a bulk rescore.
func (s *ExportService) ExportCohortResults(ctx context.Context, cohortID uint) (*ExportResult, error) {
	cohort, err := s.Cohorts.FindByID(cohortID)
	if err != nil {
		return nil, err
	}
	areas, err := s.Areas.List()
	if err != nil {
		return nil, err
	}
	sessions, err := s.Sessions.ListCompletedByCohort(cohortID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"code", "attempt", "completed_at", "overall_score"}
	for _, area := range areas {
		header = append(header, "area_"+area.Name)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, session := range sessions {
		var cache struct {
			Areas map[string]float64 `json:"areas"`
		}
		if len(session.AreaScores) > 0 {
			if err := json.Unmarshal(session.AreaScores, &cache); err != nil {
				return nil, err
			}
		}

		code := ""
		if session.Code != nil {
			code = session.Code.Code
		}
		completedAt := ""
		if session.CompletedAt != nil {
			completedAt = session.CompletedAt.Format(time.RFC3339)
		}
		overall := ""
		if session.OverallScore != nil {
			overall = strconv.FormatFloat(*session.OverallScore, 'f', 2, 64)
		}

		row := []string{code, strconv.Itoa(session.AttemptNumber), completedAt, overall}
		for _, area := range areas {
			score, ok := cache.Areas[strconv.FormatUint(uint64(area.ID), 10)]
			if ok {
				row = append(row, strconv.FormatFloat(score, 'f', 2, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("cohort_%d_results_%s.csv", cohort.ID, time.Now().Format("20060102_150405"))
	url, err := s.Storage.Upload(ctx, filename, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "text/csv")
	if err != nil {
		return nil, err
	}

	return &ExportResult{Filename: filename, URL: url, SessionCount: len(sessions)}, nil
}
