package controller

import (
	"errors"
	"inbalance_quiz_backend/internal/repository"
	"inbalance_quiz_backend/internal/service"
	"inbalance_quiz_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ResponseController 后台响应数据的查询与导出
type ResponseController struct {
	Responses *repository.ResponseRepository
	Quiz      *service.QuizService
	Export    *service.ExportService
}

func NewResponseController(responses *repository.ResponseRepository, quiz *service.QuizService, export *service.ExportService) *ResponseController {
	return &ResponseController{
		Responses: responses,
		Quiz:      quiz,
		Export:    export,
	}
}

// @Summary 响应记录列表
// @Tags 后台
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param diagnosis query string false "诊断代码过滤"
// @Param waitlist query bool false "仅候补名单"
// @Param email query string false "邮箱模糊搜索"
// @Success 200 {object} util.Response
// @Router /admin/responses [get]
func (c *ResponseController) ListResponses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	waitlistOnly := ctx.Query("waitlist") == "true"

	rows, total, err := c.Responses.List(page, limit, ctx.Query("diagnosis"), waitlistOnly, ctx.Query("email"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  rows,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 响应记录详情
// @Tags 后台
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "响应ID"
// @Success 200 {object} util.Response
// @Router /admin/responses/{id} [get]
func (c *ResponseController) GetResponse(ctx *gin.Context) {
	response, err := c.Responses.FindByID(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, response)
}

// @Summary 各诊断标签的统计数量
// @Tags 后台
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /admin/responses/stats [get]
func (c *ResponseController) GetStats(ctx *gin.Context) {
	counts, err := c.Responses.CountByDiagnosis()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, counts)
}

// @Summary 导出全部响应为CSV
// @Description 生成CSV并上传至配置的存储后端，返回下载地址
// @Tags 后台
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /admin/responses/export [post]
func (c *ResponseController) ExportCSV(ctx *gin.Context) {
	url, err := c.Export.ExportCSV(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// @Summary 强制重新同步某条响应到外部表格
// @Tags 后台
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "响应ID"
// @Success 200 {object} util.Response
// @Router /admin/responses/{id}/resync [post]
func (c *ResponseController) ResyncResponse(ctx *gin.Context) {
	if err := c.Quiz.ResyncResponse(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrResponseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"queued": true})
}
