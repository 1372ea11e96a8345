package controller

import (
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CatalogController 分类与主题
type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// ListCategories godoc
// @Summary 分类列表
// @Tags 分类
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Category}
// @Router /api/categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	items, err := c.CatalogService.ListCategories(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// GetCategory godoc
// @Summary 分类详情
// @Tags 分类
// @Produce  json
// @Param id path int true "分类ID"
// @Success 200 {object} util.Response{data=model.Category}
// @Router /api/categories/{id} [get]
func (c *CatalogController) GetCategory(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	item, err := c.CatalogService.GetCategory(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// CreateCategory godoc
// @Summary 管理员：创建分类
// @Tags 管理-分类
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CategoryRequest true "分类"
// @Success 201 {object} util.Response{data=model.Category}
// @Router /api/admin/categories [post]
func (c *CatalogController) CreateCategory(ctx *gin.Context) {
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	item, err := c.CatalogService.CreateCategory(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, item)
}

// UpdateCategory godoc
// @Summary 管理员：更新分类
// @Tags 管理-分类
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "分类ID"
// @Param   body body service.CategoryRequest true "分类"
// @Success 200 {object} util.Response{data=model.Category}
// @Router /api/admin/categories/{id} [put]
func (c *CatalogController) UpdateCategory(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	item, err := c.CatalogService.UpdateCategory(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// DeleteCategory godoc
// @Summary 管理员：删除分类
// @Description 分类下仍有主题时拒绝删除
// @Tags 管理-分类
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "分类ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/categories/{id} [delete]
func (c *CatalogController) DeleteCategory(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if err := c.CatalogService.DeleteCategory(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListTopics godoc
// @Summary 主题列表
// @Tags 分类
// @Produce  json
// @Param categoryId query int false "分类ID"
// @Success 200 {object} util.Response{data=[]model.Topic}
// @Router /api/topics [get]
func (c *CatalogController) ListTopics(ctx *gin.Context) {
	items, err := c.CatalogService.ListTopics(ctx.Request.Context(), util.MustParseUint(ctx.Query("categoryId")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// GetTopic godoc
// @Summary 主题详情
// @Tags 分类
// @Produce  json
// @Param id path int true "主题ID"
// @Success 200 {object} util.Response{data=model.Topic}
// @Router /api/topics/{id} [get]
func (c *CatalogController) GetTopic(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	item, err := c.CatalogService.GetTopic(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// CreateTopic godoc
// @Summary 管理员：创建主题
// @Tags 管理-分类
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.TopicRequest true "主题"
// @Success 201 {object} util.Response{data=model.Topic}
// @Router /api/admin/topics [post]
func (c *CatalogController) CreateTopic(ctx *gin.Context) {
	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	item, err := c.CatalogService.CreateTopic(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, item)
}

// UpdateTopic godoc
// @Summary 管理员：更新主题
// @Tags 管理-分类
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "主题ID"
// @Param   body body service.TopicRequest true "主题"
// @Success 200 {object} util.Response{data=model.Topic}
// @Router /api/admin/topics/{id} [put]
func (c *CatalogController) UpdateTopic(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	item, err := c.CatalogService.UpdateTopic(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// DeleteTopic godoc
// @Summary 管理员：删除主题
// @Tags 管理-分类
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "主题ID"
// @Success 200 {object} util.Response
// @Router /api/admin/topics/{id} [delete]
func (c *CatalogController) DeleteTopic(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if err := c.CatalogService.DeleteTopic(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
