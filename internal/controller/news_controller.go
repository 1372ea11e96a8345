package controller

import (
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// NewsController 新闻与公告
type NewsController struct {
	NewsService *service.NewsService
}

func NewNewsController(newsService *service.NewsService) *NewsController {
	return &NewsController{NewsService: newsService}
}

// ListNews godoc
// @Summary 已发布新闻列表
// @Tags 新闻
// @Produce  json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/news [get]
func (c *NewsController) ListNews(ctx *gin.Context) {
	c.listNews(ctx, true)
}

// AdminListNews godoc
// @Summary 管理员：全部新闻
// @Tags 管理-新闻
// @Produce  json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/news [get]
func (c *NewsController) AdminListNews(ctx *gin.Context) {
	c.listNews(ctx, false)
}

func (c *NewsController) listNews(ctx *gin.Context, publishedOnly bool) {
	page, limit := util.Pagination(ctx)
	items, total, err := c.NewsService.ListNews(ctx.Request.Context(), publishedOnly, page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// GetNews godoc
// @Summary 新闻详情
// @Tags 新闻
// @Produce  json
// @Param id path int true "新闻ID"
// @Success 200 {object} util.Response{data=model.News}
// @Failure 404 {object} util.Response
// @Router /api/news/{id} [get]
func (c *NewsController) GetNews(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	user := util.GetUserFromContext(ctx)
	item, err := c.NewsService.GetNews(ctx.Request.Context(), id, !user.IsAdmin())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// CreateNews godoc
// @Summary 管理员：创建新闻
// @Tags 管理-新闻
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.NewsRequest true "新闻"
// @Success 201 {object} util.Response{data=model.News}
// @Router /api/admin/news [post]
func (c *NewsController) CreateNews(ctx *gin.Context) {
	var req service.NewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	item, err := c.NewsService.CreateNews(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, item)
}

// UpdateNews godoc
// @Summary 管理员：更新新闻
// @Tags 管理-新闻
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "新闻ID"
// @Param   body body service.NewsRequest true "新闻"
// @Success 200 {object} util.Response{data=model.News}
// @Router /api/admin/news/{id} [put]
func (c *NewsController) UpdateNews(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	var req service.NewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	item, err := c.NewsService.UpdateNews(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// DeleteNews godoc
// @Summary 管理员：删除新闻
// @Tags 管理-新闻
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "新闻ID"
// @Success 200 {object} util.Response
// @Router /api/admin/news/{id} [delete]
func (c *NewsController) DeleteNews(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if err := c.NewsService.DeleteNews(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListNotices godoc
// @Summary 有效公告列表
// @Tags 公告
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Notice}
// @Router /api/notices [get]
func (c *NewsController) ListNotices(ctx *gin.Context) {
	items, err := c.NewsService.ListActiveNotices(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// AdminListNotices godoc
// @Summary 管理员：全部公告
// @Tags 管理-公告
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Notice}
// @Router /api/admin/notices [get]
func (c *NewsController) AdminListNotices(ctx *gin.Context) {
	items, err := c.NewsService.ListAllNotices(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// CreateNotice godoc
// @Summary 管理员：创建公告
// @Tags 管理-公告
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.NoticeRequest true "公告"
// @Success 201 {object} util.Response{data=model.Notice}
// @Router /api/admin/notices [post]
func (c *NewsController) CreateNotice(ctx *gin.Context) {
	var req service.NoticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	item, err := c.NewsService.CreateNotice(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, item)
}

// UpdateNotice godoc
// @Summary 管理员：更新公告
// @Tags 管理-公告
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "公告ID"
// @Param   body body service.NoticeRequest true "公告"
// @Success 200 {object} util.Response{data=model.Notice}
// @Router /api/admin/notices/{id} [put]
func (c *NewsController) UpdateNotice(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	var req service.NoticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	item, err := c.NewsService.UpdateNotice(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// DeleteNotice godoc
// @Summary 管理员：删除公告
// @Tags 管理-公告
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "公告ID"
// @Success 200 {object} util.Response
// @Router /api/admin/notices/{id} [delete]
func (c *NewsController) DeleteNotice(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if err := c.NewsService.DeleteNotice(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
