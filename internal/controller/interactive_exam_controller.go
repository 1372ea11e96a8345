package controller

import (
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InteractiveExamController struct {
	ExamService    *service.InteractiveExamService
	GradingService *service.GradingService
}

func NewInteractiveExamController(examService *service.InteractiveExamService, gradingService *service.GradingService) *InteractiveExamController {
	return &InteractiveExamController{ExamService: examService, GradingService: gradingService}
}

// ListExams godoc
// @Summary 已发布的交互式考试列表
// @Tags 交互式考试
// @Produce  json
// @Param subject query string false "科目"
// @Param grade query string false "年级"
// @Param difficulty query string false "难度" Enums(easy, medium, hard)
// @Success 200 {object} util.Response{data=[]service.InteractiveExamListItem}
// @Failure 400 {object} util.Response "过滤条件无效"
// @Router /api/interactive-exams [get]
func (c *InteractiveExamController) ListExams(ctx *gin.Context) {
	var query service.ExamListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	items, err := c.ExamService.ListPublished(ctx.Request.Context(), query)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// GetExam godoc
// @Summary 获取交互式考试及题目
// @Description 题目不包含正确答案和解析
// @Tags 交互式考试
// @Produce  json
// @Param id path string true "考试ID"
// @Success 200 {object} util.Response{data=service.InteractiveExamDetail}
// @Failure 404 {object} util.Response "考试不存在"
// @Router /api/interactive-exams/{id} [get]
func (c *InteractiveExamController) GetExam(ctx *gin.Context) {
	detail, err := c.ExamService.GetForTaker(ctx.Request.Context(), ctx.Param("id"), util.GetUserFromContext(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// SubmitResponse 提交结果，不包含逐题详情
type SubmitResponse struct {
	service.SubmitResult
	Message string `json:"message"`
}

// Submit godoc
// @Summary 提交交互式考试答案
// @Description 评分并保存答题记录，仅返回得分
// @Tags 交互式考试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SubmitRequest true "考试ID及答案"
// @Success 201 {object} util.Response{data=SubmitResponse}
// @Failure 400 {object} util.Response "参数错误、考试无题目或提交过快"
// @Failure 401 {object} util.Response "未登录或令牌过期"
// @Failure 404 {object} util.Response "考试不存在"
// @Router /api/interactive-exams/submit [post]
func (c *InteractiveExamController) Submit(ctx *gin.Context) {
	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GradingService.Submit(ctx.Request.Context(), util.GetUserFromContext(ctx), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, SubmitResponse{SubmitResult: *result, Message: "Exam submitted successfully"})
}

// GetSubmission godoc
// @Summary 获取答题详情
// @Description 仅答题者本人或管理员可查看，包含正确答案与解析
// @Tags 交互式考试
// @Produce  json
// @Security ApiKeyAuth
// @Param id path string true "答题记录ID"
// @Success 200 {object} util.Response{data=model.UserSubmission}
// @Failure 403 {object} util.Response "无权查看"
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/interactive-exams/submissions/{id} [get]
func (c *InteractiveExamController) GetSubmission(ctx *gin.Context) {
	submission, err := c.GradingService.GetSubmission(ctx.Request.Context(), ctx.Param("id"), util.GetUserFromContext(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

// ListMySubmissions godoc
// @Summary 我的答题记录
// @Tags 交互式考试
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.SubmissionSummary}
// @Router /api/interactive-exams/submissions/me [get]
func (c *InteractiveExamController) ListMySubmissions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	items, err := c.GradingService.ListMySubmissions(ctx.Request.Context(), user.ID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// AdminListExams godoc
// @Summary 管理员：全部交互式考试
// @Tags 管理-交互式考试
// @Produce  json
// @Security ApiKeyAuth
// @Param status query string false "状态" Enums(draft, published)
// @Success 200 {object} util.Response{data=[]service.AdminInteractiveExamListItem}
// @Router /api/admin/interactive-exams [get]
func (c *InteractiveExamController) AdminListExams(ctx *gin.Context) {
	items, err := c.ExamService.ListAll(ctx.Request.Context(), ctx.Query("status"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// AdminGetExam godoc
// @Summary 管理员：考试详情（含答案）
// @Tags 管理-交互式考试
// @Produce  json
// @Security ApiKeyAuth
// @Param id path string true "考试ID"
// @Success 200 {object} util.Response{data=service.AdminInteractiveExamDetail}
// @Router /api/admin/interactive-exams/{id} [get]
func (c *InteractiveExamController) AdminGetExam(ctx *gin.Context) {
	detail, err := c.ExamService.GetForAdmin(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// CreateExam godoc
// @Summary 管理员：创建交互式考试
// @Description 考试与题目在同一事务中创建
// @Tags 管理-交互式考试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateInteractiveExamRequest true "考试信息"
// @Success 201 {object} util.Response{data=service.AdminInteractiveExamDetail}
// @Failure 400 {object} util.Response "参数错误"
// @Router /api/admin/interactive-exams [post]
func (c *InteractiveExamController) CreateExam(ctx *gin.Context) {
	var req service.CreateInteractiveExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	detail, err := c.ExamService.Create(ctx.Request.Context(), user.ID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, detail)
}

// UpdateExam godoc
// @Summary 管理员：更新考试信息
// @Tags 管理-交互式考试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path string true "考试ID"
// @Param   body body service.UpdateInteractiveExamRequest true "要更新的字段"
// @Success 200 {object} util.Response{data=model.InteractiveExam}
// @Router /api/admin/interactive-exams/{id} [put]
func (c *InteractiveExamController) UpdateExam(ctx *gin.Context) {
	var req service.UpdateInteractiveExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// DeleteExam godoc
// @Summary 管理员：删除考试
// @Description 在同一事务中删除考试、题目和全部答题记录
// @Tags 管理-交互式考试
// @Produce  json
// @Security ApiKeyAuth
// @Param id path string true "考试ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/interactive-exams/{id} [delete]
func (c *InteractiveExamController) DeleteExam(ctx *gin.Context) {
	if err := c.ExamService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddQuestion godoc
// @Summary 管理员：添加题目
// @Tags 管理-交互式考试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path string true "考试ID"
// @Param   body body service.QuestionInput true "题目"
// @Success 201 {object} util.Response{data=model.Question}
// @Router /api/admin/interactive-exams/{id}/questions [post]
func (c *InteractiveExamController) AddQuestion(ctx *gin.Context) {
	var req service.QuestionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.ExamService.AddQuestion(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary 管理员：更新题目
// @Description 已有答题记录中的题目快照不受影响
// @Tags 管理-交互式考试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path string true "考试ID"
// @Param questionId path string true "题目ID"
// @Param   body body service.QuestionInput true "题目"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/admin/interactive-exams/{id}/questions/{questionId} [put]
func (c *InteractiveExamController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.ExamService.UpdateQuestion(ctx.Request.Context(), ctx.Param("id"), ctx.Param("questionId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary 管理员：删除题目
// @Tags 管理-交互式考试
// @Produce  json
// @Security ApiKeyAuth
// @Param id path string true "考试ID"
// @Param questionId path string true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/interactive-exams/{id}/questions/{questionId} [delete]
func (c *InteractiveExamController) DeleteQuestion(ctx *gin.Context) {
	if err := c.ExamService.DeleteQuestion(ctx.Request.Context(), ctx.Param("id"), ctx.Param("questionId")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListExamSubmissions godoc
// @Summary 管理员：考试的答题记录
// @Tags 管理-交互式考试
// @Produce  json
// @Security ApiKeyAuth
// @Param id path string true "考试ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/interactive-exams/{id}/submissions [get]
func (c *InteractiveExamController) ListExamSubmissions(ctx *gin.Context) {
	page, limit := util.Pagination(ctx)
	items, total, err := c.GradingService.ListExamSubmissions(ctx.Request.Context(), ctx.Param("id"), page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}
