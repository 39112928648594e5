package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resilience_backend/internal/service"
	"resilience_backend/internal/util"
)

type AreaController struct {
	AreaService *service.AreaService
}

func NewAreaController(areaService *service.AreaService) *AreaController {
	return &AreaController{AreaService: areaService}
}

// CreateArea godoc
// @Summary Create a resilience area
// @Tags areas
// @Accept  json
// @Produce  json
// @Param   body body service.AreaRequest true "area"
// @Success 201 {object} util.Response{data=model.ResilienceArea}
// @Router /api/admin/areas [post]
func (c *AreaController) CreateArea(ctx *gin.Context) {
	var req service.AreaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	area, err := c.AreaService.CreateArea(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, area)
}

// ListAreas godoc
// @Summary List resilience areas
// @Tags areas
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.ResilienceArea}
// @Router /api/admin/areas [get]
func (c *AreaController) ListAreas(ctx *gin.Context) {
	areas, err := c.AreaService.ListAreas()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, areas)
}

// GetArea godoc
// @Summary Get one area with its questions, sub-areas and ranges
// @Tags areas
// @Produce  json
// @Param   id path int true "area id"
// @Success 200 {object} util.Response{data=model.ResilienceArea}
// @Failure 404 {object} util.Response
// @Router /api/admin/areas/{id} [get]
func (c *AreaController) GetArea(ctx *gin.Context) {
	area, err := c.AreaService.GetArea(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, area)
}

// UpdateArea godoc
// @Summary Update an area
// @Tags areas
// @Accept  json
// @Produce  json
// @Param   id path int true "area id"
// @Param   body body service.AreaRequest true "area"
// @Success 200 {object} util.Response{data=model.ResilienceArea}
// @Failure 404 {object} util.Response
// @Router /api/admin/areas/{id} [put]
func (c *AreaController) UpdateArea(ctx *gin.Context) {
	var req service.AreaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	area, err := c.AreaService.UpdateArea(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, area)
}

// DeleteArea godoc
// @Summary Delete an area
// @Tags areas
// @Produce  json
// @Param   id path int true "area id"
// @Success 200 {object} util.Response
// @Router /api/admin/areas/{id} [delete]
func (c *AreaController) DeleteArea(ctx *gin.Context) {
	if err := c.AreaService.DeleteArea(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateSubArea godoc
// @Summary Create a sub-area under an area
// @Tags areas
// @Accept  json
// @Produce  json
// @Param   id path int true "area id"
// @Param   body body service.SubAreaRequest true "sub-area"
// @Success 201 {object} util.Response{data=model.SubArea}
// @Failure 404 {object} util.Response
// @Router /api/admin/areas/{id}/sub-areas [post]
func (c *AreaController) CreateSubArea(ctx *gin.Context) {
	var req service.SubAreaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	sub, err := c.AreaService.CreateSubArea(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, sub)
}

// ListSubAreas godoc
// @Summary List sub-areas of an area
// @Tags areas
// @Produce  json
// @Param   id path int true "area id"
// @Success 200 {object} util.Response{data=[]model.SubArea}
// @Router /api/admin/areas/{id}/sub-areas [get]
func (c *AreaController) ListSubAreas(ctx *gin.Context) {
	subs, err := c.AreaService.ListSubAreas(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// UpdateSubArea godoc
// @Summary Update a sub-area
// @Tags areas
// @Accept  json
// @Produce  json
// @Param   id path int true "sub-area id"
// @Param   body body service.SubAreaRequest true "sub-area"
// @Success 200 {object} util.Response{data=model.SubArea}
// @Failure 404 {object} util.Response
// @Router /api/admin/sub-areas/{id} [put]
func (c *AreaController) UpdateSubArea(ctx *gin.Context) {
	var req service.SubAreaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	sub, err := c.AreaService.UpdateSubArea(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, sub)
}

// DeleteSubArea godoc
// @Summary Delete a sub-area
// @Tags areas
// @Produce  json
// @Param   id path int true "sub-area id"
// @Success 200 {object} util.Response
// @Router /api/admin/sub-areas/{id} [delete]
func (c *AreaController) DeleteSubArea(ctx *gin.Context) {
	if err := c.AreaService.DeleteSubArea(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// swagger:model SetRangesRequest
type SetRangesRequest struct {
	Ranges []service.ScoreRangeRequest `json:"ranges" binding:"required,min=1"`
}

// SetAreaRanges godoc
// @Summary Replace an area's score ranges
// @Description The set must partition 0-100 without gaps or overlaps
// @Tags areas
// @Accept  json
// @Produce  json
// @Param   id path int true "area id"
// @Param   body body SetRangesRequest true "ranges"
// @Success 200 {object} util.Response{data=[]model.ScoreRange}
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response "ranges do not partition 0-100"
// @Router /api/admin/areas/{id}/ranges [put]
func (c *AreaController) SetAreaRanges(ctx *gin.Context) {
	var req SetRangesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	ranges, err := c.AreaService.SetAreaRanges(util.MustParseUint(ctx.Param("id")), req.Ranges)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrRangesNotPartition):
			util.Error(ctx, 422, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, ranges)
}

// SetSubAreaRanges godoc
// @Summary Replace a sub-area's score ranges
// @Tags areas
// @Accept  json
// @Produce  json
// @Param   id path int true "sub-area id"
// @Param   body body SetRangesRequest true "ranges"
// @Success 200 {object} util.Response{data=[]model.SubAreaScoreRange}
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/admin/sub-areas/{id}/ranges [put]
func (c *AreaController) SetSubAreaRanges(ctx *gin.Context) {
	var req SetRangesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	ranges, err := c.AreaService.SetSubAreaRanges(util.MustParseUint(ctx.Param("id")), req.Ranges)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrRangesNotPartition):
			util.Error(ctx, 422, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, ranges)
}

// SetFeedbackContent godoc
// @Summary Upsert feedback content for a score range
// @Tags areas
// @Accept  json
// @Produce  json
// @Param   id path int true "score range id"
// @Param   body body service.FeedbackContentRequest true "content"
// @Success 200 {object} util.Response{data=model.FeedbackContent}
// @Failure 404 {object} util.Response
// @Router /api/admin/ranges/{id}/feedback [put]
func (c *AreaController) SetFeedbackContent(ctx *gin.Context) {
	var req service.FeedbackContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	content, err := c.AreaService.SetFeedbackContent(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrBadContentType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, content)
}

// ListOverallFeedback godoc
// @Summary List overall feedback bands
// @Tags areas
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.OverallFeedbackContent}
// @Router /api/admin/overall-feedback [get]
func (c *AreaController) ListOverallFeedback(ctx *gin.Context) {
	contents, err := c.AreaService.ListOverallFeedback()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, contents)
}

// swagger:model SetOverallFeedbackRequest
type SetOverallFeedbackRequest struct {
	Contents []service.OverallFeedbackRequest `json:"contents" binding:"required,min=1"`
}

// SetOverallFeedback godoc
// @Summary Replace the overall feedback bands
// @Description Summary bands must partition 0-100
// @Tags areas
// @Accept  json
// @Produce  json
// @Param   body body SetOverallFeedbackRequest true "bands"
// @Success 200 {object} util.Response{data=[]model.OverallFeedbackContent}
// @Failure 422 {object} util.Response
// @Router /api/admin/overall-feedback [put]
func (c *AreaController) SetOverallFeedback(ctx *gin.Context) {
	var req SetOverallFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	contents, err := c.AreaService.SetOverallFeedback(req.Contents)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRangesNotPartition):
			util.Error(ctx, 422, err.Error())
		case errors.Is(err, util.ErrBadContentType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, contents)
}
