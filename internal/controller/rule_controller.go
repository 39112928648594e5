package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resilience_backend/internal/service"
	"resilience_backend/internal/util"
)

type RuleController struct {
	RuleService *service.RuleService
}

func NewRuleController(ruleService *service.RuleService) *RuleController {
	return &RuleController{RuleService: ruleService}
}

// CreateRule godoc
// @Summary Create a conditional feedback rule for an area
// @Tags rules
// @Accept  json
// @Produce  json
// @Param   id path int true "area id"
// @Param   body body service.RuleRequest true "rule"
// @Success 201 {object} util.Response{data=model.AreaFeedbackRule}
// @Failure 404 {object} util.Response
// @Router /api/admin/areas/{id}/rules [post]
func (c *RuleController) CreateRule(ctx *gin.Context) {
	var req service.RuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	rule, err := c.RuleService.CreateRule(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, rule)
}

// ListRules godoc
// @Summary List an area's rules in priority order
// @Tags rules
// @Produce  json
// @Param   id path int true "area id"
// @Success 200 {object} util.Response{data=[]model.AreaFeedbackRule}
// @Router /api/admin/areas/{id}/rules [get]
func (c *RuleController) ListRules(ctx *gin.Context) {
	rules, err := c.RuleService.ListRules(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rules)
}

// UpdateRule godoc
// @Summary Update a rule and its conditions
// @Tags rules
// @Accept  json
// @Produce  json
// @Param   id path int true "rule id"
// @Param   body body service.RuleRequest true "rule"
// @Success 200 {object} util.Response{data=model.AreaFeedbackRule}
// @Failure 404 {object} util.Response
// @Router /api/admin/rules/{id} [put]
func (c *RuleController) UpdateRule(ctx *gin.Context) {
	var req service.RuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	rule, err := c.RuleService.UpdateRule(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, rule)
}

// DeleteRule godoc
// @Summary Delete a rule
// @Tags rules
// @Produce  json
// @Param   id path int true "rule id"
// @Success 200 {object} util.Response
// @Router /api/admin/rules/{id} [delete]
func (c *RuleController) DeleteRule(ctx *gin.Context) {
	if err := c.RuleService.DeleteRule(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// swagger:model ReorderRulesRequest
type ReorderRulesRequest struct {
	RuleIDs []uint `json:"ruleIds" binding:"required,min=1"`
}

// ReorderRules godoc
// @Summary Rewrite rule priorities for an area
// @Description The list must contain every rule of the area exactly once
// @Tags rules
// @Accept  json
// @Produce  json
// @Param   id path int true "area id"
// @Param   body body ReorderRulesRequest true "ordered rule ids"
// @Success 200 {object} util.Response{data=[]model.AreaFeedbackRule}
// @Failure 400 {object} util.Response
// @Router /api/admin/areas/{id}/rules/reorder [put]
func (c *RuleController) ReorderRules(ctx *gin.Context) {
	var req ReorderRulesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	rules, err := c.RuleService.ReorderRules(util.MustParseUint(ctx.Param("id")), req.RuleIDs)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, rules)
}
