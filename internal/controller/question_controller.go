package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resilience_backend/internal/service"
	"resilience_backend/internal/util"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

func pageParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags questions
// @Accept  json
// @Produce  json
// @Param   body body service.QuestionRequest true "question"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q, err := c.QuestionService.CreateQuestion(req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, q)
}

// ListQuestions godoc
// @Summary List questions
// @Tags questions
// @Produce  json
// @Param   page query int false "page"
// @Param   limit query int false "page size"
// @Param   areaId query int false "filter by area"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	if areaID := ctx.Query("areaId"); areaID != "" {
		questions, err := c.QuestionService.ListByArea(util.MustParseUint(areaID))
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, questions)
		return
	}

	page, limit := pageParams(ctx)
	questions, total, err := c.QuestionService.ListQuestions(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: questions, Total: total, Page: page, Limit: limit})
}

// GetQuestion godoc
// @Summary Get one question
// @Tags questions
// @Produce  json
// @Param   id path int true "question id"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	q, err := c.QuestionService.GetQuestion(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, q)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags questions
// @Accept  json
// @Produce  json
// @Param   id path int true "question id"
// @Param   body body service.QuestionRequest true "question"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q, err := c.QuestionService.UpdateQuestion(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce  json
// @Param   id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuestionService.DeleteQuestion(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
