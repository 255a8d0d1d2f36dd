package controller

import (
	"science_nova_backend/internal/service"
	"science_nova_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// GetDashboardMetrics godoc
// @Summary 教师看板指标
// @Description 近7天活跃度、测验均分、课程浏览量及环比变化，附日趋势与学科分布
// @Tags 分析
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.DashboardMetrics} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Failure 403 {object} util.Response "无权限"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/teacher/metrics [get]
func (c *AnalyticsController) GetDashboardMetrics(ctx *gin.Context) {
	metrics, err := c.AnalyticsService.GetDashboardMetrics(time.Now().UTC())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, metrics)
}
