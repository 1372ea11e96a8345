package controller

import (
	"errors"
	"io"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubscriptionController struct {
	SubscriptionService *service.SubscriptionService
}

func NewSubscriptionController(subscriptionService *service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{SubscriptionService: subscriptionService}
}

// bindSubscribe 请求体可选，空请求体表示不限期
func bindSubscribe(ctx *gin.Context) (service.SubscribeRequest, bool) {
	var req service.SubscribeRequest
	if ctx.Request.ContentLength == 0 {
		return req, true
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		// chunked 请求的空请求体没有 Content-Length
		if errors.Is(err, io.EOF) {
			return service.SubscribeRequest{}, true
		}
		util.BadRequest(ctx, err.Error())
		return req, false
	}
	return req, true
}

func (c *SubscriptionController) subscribeContent(ctx *gin.Context, contentType model.ContentType) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	req, ok := bindSubscribe(ctx)
	if !ok {
		return
	}

	user := util.GetUserFromContext(ctx)
	sub, err := c.SubscriptionService.SubscribeContent(ctx.Request.Context(), user, contentType, id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

// SubscribeEssay godoc
// @Summary 订阅文章
// @Tags 订阅
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "文章ID"
// @Param   body body service.SubscribeRequest false "订阅时长"
// @Success 201 {object} util.Response{data=model.UserSubscription}
// @Failure 400 {object} util.Response "已订阅"
// @Failure 404 {object} util.Response "文章不存在"
// @Router /api/subscriptions/essay/{id} [post]
func (c *SubscriptionController) SubscribeEssay(ctx *gin.Context) {
	c.subscribeContent(ctx, model.ContentEssay)
}

// SubscribeExam godoc
// @Summary 订阅试卷
// @Tags 订阅
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "试卷ID"
// @Param   body body service.SubscribeRequest false "订阅时长"
// @Success 201 {object} util.Response{data=model.UserSubscription}
// @Failure 400 {object} util.Response "已订阅"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/subscriptions/exam/{id} [post]
func (c *SubscriptionController) SubscribeExam(ctx *gin.Context) {
	c.subscribeContent(ctx, model.ContentExam)
}

// SubscribeFullAccess godoc
// @Summary 订阅全站访问
// @Tags 订阅
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SubscribeRequest false "订阅时长"
// @Success 201 {object} util.Response{data=model.UserSubscription}
// @Failure 400 {object} util.Response "已订阅"
// @Router /api/subscriptions/full-access [post]
func (c *SubscriptionController) SubscribeFullAccess(ctx *gin.Context) {
	req, ok := bindSubscribe(ctx)
	if !ok {
		return
	}

	user := util.GetUserFromContext(ctx)
	sub, err := c.SubscriptionService.SubscribeFullAccess(ctx.Request.Context(), user.ID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

// ListMine godoc
// @Summary 我的订阅
// @Tags 订阅
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.UserSubscription}
// @Router /api/subscriptions/me [get]
func (c *SubscriptionController) ListMine(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	subs, err := c.SubscriptionService.ListMine(ctx.Request.Context(), user.ID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// Cancel godoc
// @Summary 取消订阅
// @Description 仅订阅者本人或管理员可取消
// @Tags 订阅
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "订阅ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/subscriptions/{id} [delete]
func (c *SubscriptionController) Cancel(ctx *gin.Context) {
	id, err := util.ParamUint(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if err := c.SubscriptionService.Cancel(ctx.Request.Context(), id, util.GetUserFromContext(ctx)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AdminList godoc
// @Summary 管理员：全部订阅
// @Tags 管理-订阅
// @Produce  json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/subscriptions [get]
func (c *SubscriptionController) AdminList(ctx *gin.Context) {
	page, limit := util.Pagination(ctx)
	subs, total, err := c.SubscriptionService.List(ctx.Request.Context(), page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: subs, Total: total, Page: page, Limit: limit})
}
