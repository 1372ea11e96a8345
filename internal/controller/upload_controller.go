package controller

import (
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

// UploadImage godoc
// @Summary 管理员：上传图片
// @Description 用于封面图和题目配图，按文件内容校验类型
// @Tags 管理-上传
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param file formData file true "图片文件"
// @Success 201 {object} util.Response{data=service.UploadResult}
// @Failure 400 {object} util.Response "文件类型或大小不合法"
// @Router /api/admin/uploads/image [post]
func (c *UploadController) UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	result, err := c.StorageService.UploadImage(ctx.Request.Context(), file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
