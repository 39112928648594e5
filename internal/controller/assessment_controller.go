package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"resilience_backend/internal/service"
	"resilience_backend/internal/util"
)

// AssessmentController serves the public respondent flow. Nothing here
// requires authentication; possession of a valid code is the credential.
type AssessmentController struct {
	SessionService *service.SessionService
	RetakeService  *service.RetakeService
}

func NewAssessmentController(sessionService *service.SessionService, retakeService *service.RetakeService) *AssessmentController {
	return &AssessmentController{SessionService: sessionService, RetakeService: retakeService}
}

// swagger:model ValidateCodeRequest
type ValidateCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidateCode godoc
// @Summary Validate an access code
// @Description Returns the code's retake verdict without creating anything
// @Tags assessment
// @Accept  json
// @Produce  json
// @Param   body body ValidateCodeRequest true "access code"
// @Success 200 {object} util.Response{data=service.RetakeValidation}
// @Router /api/assessment/validate [post]
func (c *AssessmentController) ValidateCode(ctx *gin.Context) {
	var req ValidateCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	validation, err := c.RetakeService.ValidateCode(req.Code)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, validation)
}

// swagger:model StartSessionRequest
type StartSessionRequest struct {
	Code     string `json:"code" binding:"required"`
	ForceNew bool   `json:"forceNew"`
}

// StartSession godoc
// @Summary Start or resume an assessment session
// @Description Resumes an in-progress session, or creates the next attempt. Set forceNew to confirm superseding a completed, retake-eligible session.
// @Tags assessment
// @Accept  json
// @Produce  json
// @Param   body body StartSessionRequest true "access code"
// @Success 200 {object} util.Response{data=model.AssessmentSession}
// @Failure 409 {object} util.Response "confirmation required"
// @Failure 422 {object} util.Response "code blocked"
// @Router /api/assessment/sessions [post]
func (c *AssessmentController) StartSession(ctx *gin.Context) {
	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.StartSession(req.Code, req.ForceNew)
	if err != nil {
		if errors.Is(err, service.ErrConfirmNewAttempt) {
			util.Error(ctx, 409, err.Error())
		} else {
			util.Error(ctx, 422, err.Error())
		}
		return
	}
	util.Success(ctx, session)
}

// Questionnaire godoc
// @Summary Fetch the active questionnaire
// @Description Active areas and questions in display order, without scoring internals
// @Tags assessment
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.QuestionnaireArea}
// @Router /api/assessment/questionnaire [get]
func (c *AssessmentController) Questionnaire(ctx *gin.Context) {
	areas, err := c.SessionService.Questionnaire()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, areas)
}

// swagger:model SaveResponseRequest
type SaveResponseRequest struct {
	QuestionID uint `json:"questionId" binding:"required"`
	Value      int  `json:"value" binding:"required"`
}

// SaveResponse godoc
// @Summary Record one answer
// @Description Overwrites any previous answer to the same question while the session is in progress
// @Tags assessment
// @Accept  json
// @Produce  json
// @Param   id path int true "session id"
// @Param   body body SaveResponseRequest true "answer"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/assessment/sessions/{id}/responses [put]
func (c *AssessmentController) SaveResponse(ctx *gin.Context) {
	var req SaveResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sessionID := util.MustParseUint(ctx.Param("id"))
	err := c.SessionService.SaveResponse(sessionID, req.QuestionID, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionComplete),
			errors.Is(err, util.ErrAnswerOutOfRange),
			errors.Is(err, util.ErrQuestionNotInScope):
			util.Error(ctx, 422, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// CompleteSession godoc
// @Summary Complete a session and compute scores
// @Tags assessment
// @Produce  json
// @Param   id path int true "session id"
// @Success 200 {object} util.Response{data=service.ScoringResult}
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/assessment/sessions/{id}/complete [post]
func (c *AssessmentController) CompleteSession(ctx *gin.Context) {
	sessionID := util.MustParseUint(ctx.Param("id"))
	result, err := c.SessionService.CompleteSession(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionComplete), errors.Is(err, util.ErrSessionIncomplete):
			util.Error(ctx, 422, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// Results godoc
// @Summary Fetch results for a completed session
// @Description Scores are recomputed from the stored responses on every call
// @Tags assessment
// @Produce  json
// @Param   id path int true "session id"
// @Success 200 {object} util.Response{data=service.ScoringResult}
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/assessment/sessions/{id}/results [get]
func (c *AssessmentController) Results(ctx *gin.Context) {
	sessionID := util.MustParseUint(ctx.Param("id"))
	result, err := c.SessionService.Results(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionIncomplete):
			util.Error(ctx, 422, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
