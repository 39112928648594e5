package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resilience_backend/internal/model"
	"resilience_backend/internal/repository"
)

type CohortService struct {
	Repo     *repository.CohortRepository
	Sessions *repository.SessionRepository
}

func NewCohortService(repo *repository.CohortRepository, sessions *repository.SessionRepository) *CohortService {
	return &CohortService{Repo: repo, Sessions: sessions}
}

type CohortRequest struct {
	Name               string     `json:"name" binding:"required"`
	Description        string     `json:"description"`
	AllowRetakes       bool       `json:"allowRetakes"`
	MaxRetakes         int        `json:"maxRetakes"`
	RetakeCooldownDays int        `json:"retakeCooldownDays"`
	AccessStartDate    *time.Time `json:"accessStartDate"`
	AccessEndDate      *time.Time `json:"accessEndDate"`
	IsActive           *bool      `json:"isActive"`
}

func (s *CohortService) validateWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return errors.New("access end date precedes the start date")
	}
	return nil
}

func (s *CohortService) CreateCohort(req CohortRequest) (*model.Cohort, error) {
	if err := s.validateWindow(req.AccessStartDate, req.AccessEndDate); err != nil {
		return nil, err
	}
	if req.MaxRetakes < 0 || req.RetakeCooldownDays < 0 {
		return nil, errors.New("retake limits cannot be negative")
	}

	cohort := &model.Cohort{
		Name:               req.Name,
		Description:        req.Description,
		AllowRetakes:       req.AllowRetakes,
		MaxRetakes:         req.MaxRetakes,
		RetakeCooldownDays: req.RetakeCooldownDays,
		AccessStartDate:    req.AccessStartDate,
		AccessEndDate:      req.AccessEndDate,
		IsActive:           true,
	}
	if req.IsActive != nil {
		cohort.IsActive = *req.IsActive
	}
	if err := s.Repo.Create(cohort); err != nil {
		return nil, err
	}
	return cohort, nil
}

func (s *CohortService) GetCohort(id uint) (*model.Cohort, error) {
	return s.Repo.FindByID(id)
}

func (s *CohortService) ListCohorts(page, limit int) ([]model.Cohort, int64, error) {
	return s.Repo.List(page, limit)
}

func (s *CohortService) UpdateCohort(id uint, req CohortRequest) (*model.Cohort, error) {
	cohort, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateWindow(req.AccessStartDate, req.AccessEndDate); err != nil {
		return nil, err
	}
	if req.MaxRetakes < 0 || req.RetakeCooldownDays < 0 {
		return nil, errors.New("retake limits cannot be negative")
	}

	cohort.Name = req.Name
	cohort.Description = req.Description
	cohort.AllowRetakes = req.AllowRetakes
	cohort.MaxRetakes = req.MaxRetakes
	cohort.RetakeCooldownDays = req.RetakeCooldownDays
	cohort.AccessStartDate = req.AccessStartDate
	cohort.AccessEndDate = req.AccessEndDate
	if req.IsActive != nil {
		cohort.IsActive = *req.IsActive
	}
	if err := s.Repo.Update(cohort); err != nil {
		return nil, err
	}
	return cohort, nil
}

func (s *CohortService) DeleteCohort(id uint) error {
	return s.Repo.Delete(id)
}

type GenerateCodesRequest struct {
	Count     int        `json:"count" binding:"required,min=1,max=1000"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// GenerateCodes mints a batch of single-use assessment codes for a
// cohort. Codes are uppercase random tokens with no embedded meaning.
func (s *CohortService) GenerateCodes(cohortID uint, req GenerateCodesRequest) ([]model.AssessmentCode, error) {
	if _, err := s.Repo.FindByID(cohortID); err != nil {
		return nil, err
	}

	codes := make([]model.AssessmentCode, req.Count)
	for i := range codes {
		token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
		codes[i] = model.AssessmentCode{
			CohortID:  cohortID,
			Code:      token,
			Status:    model.CodeStatusActive,
			ExpiresAt: req.ExpiresAt,
		}
	}
	if err := s.Repo.CreateCodes(codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func (s *CohortService) ListCodes(cohortID uint, page, limit int) ([]model.AssessmentCode, int64, error) {
	return s.Repo.ListCodes(cohortID, page, limit)
}

func (s *CohortService) DisableCode(codeID uint) error {
	if _, err := s.Repo.FindCodeByID(codeID); err != nil {
		return err
	}
	return s.Repo.SetCodeStatus(codeID, model.CodeStatusDisabled)
}

func (s *CohortService) EnableCode(codeID uint) error {
	if _, err := s.Repo.FindCodeByID(codeID); err != nil {
		return err
	}
	return s.Repo.SetCodeStatus(codeID, model.CodeStatusActive)
}

func (s *CohortService) CodeSessions(codeID uint) ([]model.AssessmentSession, error) {
	if _, err := s.Repo.FindCodeByID(codeID); err != nil {
		return nil, err
	}
	return s.Sessions.ListByCode(codeID)
}

func (s *CohortService) CompletedSessions(cohortID uint) ([]model.AssessmentSession, error) {
	if _, err := s.Repo.FindByID(cohortID); err != nil {
		return nil, err
	}
	return s.Sessions.ListCompletedByCohort(cohortID)
}
