package controller

import (
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController 文章与静态试卷
type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

func contentFilter(ctx *gin.Context) repository.ContentFilter {
	page, limit := util.Pagination(ctx)
	return repository.ContentFilter{
		TopicID: util.MustParseUint(ctx.Query("topicId")),
		Subject: ctx.Query("subject"),
		Search:  ctx.Query("search"),
		Page:    page,
		Limit:   limit,
	}
}

// ListEssays godoc
// @Summary 文章列表
// @Description 只返回元数据，不含正文
// @Tags 内容
// @Produce  json
// @Param topicId query int false "主题ID"
// @Param search query string false "标题关键字"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/essays [get]
func (c *ContentController) ListEssays(ctx *gin.Context) {
	f := contentFilter(ctx)
	items, total, err := c.ContentService.ListEssays(ctx.Request.Context(), f, util.GetUserFromContext(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: f.Page, Limit: f.Limit})
}

// GetEssay godoc
// @Summary 获取文章
// @Description 有订阅时返回 htmlContent，否则只返回 previewContent
// @Tags 内容
// @Produce  json
// @Param id path int true "文章ID"
// @Success 200 {object} util.Response{data=service.GatedEssay}
// @Failure 404 {object} util.Response
// @Router /api/essays/{id} [get]
func (c *ContentController) GetEssay(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	essay, err := c.ContentService.GetEssay(ctx.Request.Context(), id, util.GetUserFromContext(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, essay)
}

// ListExams godoc
// @Summary 试卷列表
// @Description 只返回元数据，不含正文
// @Tags 内容
// @Produce  json
// @Param topicId query int false "主题ID"
// @Param subject query string false "科目"
// @Param search query string false "标题关键字"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/exams [get]
func (c *ContentController) ListExams(ctx *gin.Context) {
	f := contentFilter(ctx)
	items, total, err := c.ContentService.ListExams(ctx.Request.Context(), f, util.GetUserFromContext(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: f.Page, Limit: f.Limit})
}

// GetExam godoc
// @Summary 获取试卷
// @Description 有订阅时返回 htmlContent，否则只返回 previewContent
// @Tags 内容
// @Produce  json
// @Param id path int true "试卷ID"
// @Success 200 {object} util.Response{data=service.GatedExam}
// @Failure 404 {object} util.Response
// @Router /api/exams/{id} [get]
func (c *ContentController) GetExam(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	exam, err := c.ContentService.GetExam(ctx.Request.Context(), id, util.GetUserFromContext(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// AdminGetEssay godoc
// @Summary 管理员：文章全文
// @Tags 管理-内容
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "文章ID"
// @Success 200 {object} util.Response{data=model.Essay}
// @Router /api/admin/essays/{id} [get]
func (c *ContentController) AdminGetEssay(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	essay, err := c.ContentService.GetEssayForAdmin(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, essay)
}

// CreateEssay godoc
// @Summary 管理员：创建文章
// @Tags 管理-内容
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.EssayRequest true "文章"
// @Success 201 {object} util.Response{data=model.Essay}
// @Router /api/admin/essays [post]
func (c *ContentController) CreateEssay(ctx *gin.Context) {
	var req service.EssayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	essay, err := c.ContentService.CreateEssay(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, essay)
}

// UpdateEssay godoc
// @Summary 管理员：更新文章
// @Tags 管理-内容
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "文章ID"
// @Param   body body service.EssayRequest true "文章"
// @Success 200 {object} util.Response{data=model.Essay}
// @Router /api/admin/essays/{id} [put]
func (c *ContentController) UpdateEssay(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	var req service.EssayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	essay, err := c.ContentService.UpdateEssay(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, essay)
}

// DeleteEssay godoc
// @Summary 管理员：删除文章
// @Tags 管理-内容
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "文章ID"
// @Success 200 {object} util.Response
// @Router /api/admin/essays/{id} [delete]
func (c *ContentController) DeleteEssay(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if err := c.ContentService.DeleteEssay(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AdminGetExam godoc
// @Summary 管理员：试卷全文
// @Tags 管理-内容
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "试卷ID"
// @Success 200 {object} util.Response{data=model.Exam}
// @Router /api/admin/exams/{id} [get]
func (c *ContentController) AdminGetExam(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	exam, err := c.ContentService.GetExamForAdmin(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// CreateExam godoc
// @Summary 管理员：创建试卷
// @Tags 管理-内容
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ExamRequest true "试卷"
// @Success 201 {object} util.Response{data=model.Exam}
// @Router /api/admin/exams [post]
func (c *ContentController) CreateExam(ctx *gin.Context) {
	var req service.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	exam, err := c.ContentService.CreateExam(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// UpdateExam godoc
// @Summary 管理员：更新试卷
// @Tags 管理-内容
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "试卷ID"
// @Param   body body service.ExamRequest true "试卷"
// @Success 200 {object} util.Response{data=model.Exam}
// @Router /api/admin/exams/{id} [put]
func (c *ContentController) UpdateExam(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	var req service.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	exam, err := c.ContentService.UpdateExam(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// DeleteExam godoc
// @Summary 管理员：删除试卷
// @Tags 管理-内容
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/admin/exams/{id} [delete]
func (c *ContentController) DeleteExam(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if err := c.ContentService.DeleteExam(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
