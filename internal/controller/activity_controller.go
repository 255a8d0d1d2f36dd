package controller

import (
	"science_nova_backend/internal/service"
	"science_nova_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	ActivityService *service.ActivityService
}

func NewActivityController(activityService *service.ActivityService) *ActivityController {
	return &ActivityController{ActivityService: activityService}
}

// RecordEvent godoc
// @Summary 上报学习活动事件
// @Description 记录课程浏览、心跳、测验提交等活动事件
// @Tags 学习活动
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.RecordEventInput true "活动事件"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/lessons/activity [post]
func (c *ActivityController) RecordEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.RecordEventInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.ActivityService.RecordEvent(claims.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrMissingLessonID) ||
			errors.Is(err, util.ErrMissingEventType) ||
			errors.Is(err, util.ErrUnknownEventType) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": event.ID})
}
