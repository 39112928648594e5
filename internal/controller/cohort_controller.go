package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resilience_backend/internal/service"
	"resilience_backend/internal/util"
)

type CohortController struct {
	CohortService *service.CohortService
	ExportService *service.ExportService
}

func NewCohortController(cohortService *service.CohortService, exportService *service.ExportService) *CohortController {
	return &CohortController{CohortService: cohortService, ExportService: exportService}
}

// CreateCohort godoc
// @Summary Create a cohort
// @Tags cohorts
// @Accept  json
// @Produce  json
// @Param   body body service.CohortRequest true "cohort"
// @Success 201 {object} util.Response{data=model.Cohort}
// @Router /api/admin/cohorts [post]
func (c *CohortController) CreateCohort(ctx *gin.Context) {
	var req service.CohortRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	cohort, err := c.CohortService.CreateCohort(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, cohort)
}

// ListCohorts godoc
// @Summary List cohorts
// @Tags cohorts
// @Produce  json
// @Param   page query int false "page"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/cohorts [get]
func (c *CohortController) ListCohorts(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	cohorts, total, err := c.CohortService.ListCohorts(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: cohorts, Total: total, Page: page, Limit: limit})
}

// GetCohort godoc
// @Summary Get one cohort
// @Tags cohorts
// @Produce  json
// @Param   id path int true "cohort id"
// @Success 200 {object} util.Response{data=model.Cohort}
// @Failure 404 {object} util.Response
// @Router /api/admin/cohorts/{id} [get]
func (c *CohortController) GetCohort(ctx *gin.Context) {
	cohort, err := c.CohortService.GetCohort(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, cohort)
}

// UpdateCohort godoc
// @Summary Update a cohort and its retake policy
// @Tags cohorts
// @Accept  json
// @Produce  json
// @Param   id path int true "cohort id"
// @Param   body body service.CohortRequest true "cohort"
// @Success 200 {object} util.Response{data=model.Cohort}
// @Failure 404 {object} util.Response
// @Router /api/admin/cohorts/{id} [put]
func (c *CohortController) UpdateCohort(ctx *gin.Context) {
	var req service.CohortRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	cohort, err := c.CohortService.UpdateCohort(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, cohort)
}

// DeleteCohort godoc
// @Summary Delete a cohort
// @Tags cohorts
// @Produce  json
// @Param   id path int true "cohort id"
// @Success 200 {object} util.Response
// @Router /api/admin/cohorts/{id} [delete]
func (c *CohortController) DeleteCohort(ctx *gin.Context) {
	if err := c.CohortService.DeleteCohort(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GenerateCodes godoc
// @Summary Generate assessment codes for a cohort
// @Tags cohorts
// @Accept  json
// @Produce  json
// @Param   id path int true "cohort id"
// @Param   body body service.GenerateCodesRequest true "batch"
// @Success 201 {object} util.Response{data=[]model.AssessmentCode}
// @Failure 404 {object} util.Response
// @Router /api/admin/cohorts/{id}/codes [post]
func (c *CohortController) GenerateCodes(ctx *gin.Context) {
	var req service.GenerateCodesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	codes, err := c.CohortService.GenerateCodes(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, codes)
}

// ListCodes godoc
// @Summary List a cohort's codes
// @Tags cohorts
// @Produce  json
// @Param   id path int true "cohort id"
// @Param   page query int false "page"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/cohorts/{id}/codes [get]
func (c *CohortController) ListCodes(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	codes, total, err := c.CohortService.ListCodes(util.MustParseUint(ctx.Param("id")), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: codes, Total: total, Page: page, Limit: limit})
}

// DisableCode godoc
// @Summary Disable an assessment code
// @Tags cohorts
// @Produce  json
// @Param   id path int true "code id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/codes/{id}/disable [post]
func (c *CohortController) DisableCode(ctx *gin.Context) {
	if err := c.CohortService.DisableCode(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// EnableCode godoc
// @Summary Re-enable an assessment code
// @Tags cohorts
// @Produce  json
// @Param   id path int true "code id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/codes/{id}/enable [post]
func (c *CohortController) EnableCode(ctx *gin.Context) {
	if err := c.CohortService.EnableCode(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// CodeSessions godoc
// @Summary List all sessions of a code
// @Tags cohorts
// @Produce  json
// @Param   id path int true "code id"
// @Success 200 {object} util.Response{data=[]model.AssessmentSession}
// @Failure 404 {object} util.Response
// @Router /api/admin/codes/{id}/sessions [get]
func (c *CohortController) CodeSessions(ctx *gin.Context) {
	sessions, err := c.CohortService.CodeSessions(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, sessions)
}

// CohortSessions godoc
// @Summary List a cohort's completed sessions
// @Tags cohorts
// @Produce  json
// @Param   id path int true "cohort id"
// @Success 200 {object} util.Response{data=[]model.AssessmentSession}
// @Failure 404 {object} util.Response
// @Router /api/admin/cohorts/{id}/sessions [get]
func (c *CohortController) CohortSessions(ctx *gin.Context) {
	sessions, err := c.CohortService.CompletedSessions(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, sessions)
}

// ExportResults godoc
// @Summary Export a cohort's completed sessions as CSV
// @Tags cohorts
// @Produce  json
// @Param   id path int true "cohort id"
// @Success 200 {object} util.Response{data=service.ExportResult}
// @Failure 404 {object} util.Response
// @Router /api/admin/cohorts/{id}/export [post]
func (c *CohortController) ExportResults(ctx *gin.Context) {
	result, err := c.ExportService.ExportCohortResults(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
