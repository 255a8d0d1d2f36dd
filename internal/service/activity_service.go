package service

import (
	"encoding/json"

	"science_nova_backend/internal/model"
	"science_nova_backend/internal/repository"
	"science_nova_backend/internal/util"
	"science_nova_backend/pkg/monitoring"
)

type ActivityService struct {
	EventRepo *repository.ActivityEventRepository
}

func NewActivityService(eventRepo *repository.ActivityEventRepository) *ActivityService {
	return &ActivityService{EventRepo: eventRepo}
}

// RecordEventInput 前端上报的一条学习活动
type RecordEventInput struct {
	LessonID  string          `json:"lessonId" binding:"required"`
	BlockID   string          `json:"blockId"`
	ToolKind  string          `json:"toolKind"`
	EventType string          `json:"eventType" binding:"required"`
	Data      json.RawMessage `json:"data"`
}

var knownEventTypes = map[string]struct{}{
	model.EventLessonView:      {},
	model.EventLessonHeartbeat: {},
	model.EventQuizSubmit:      {},
	model.EventQuizReset:       {},
	model.EventExplanationView: {},
}

// RecordEvent 落库一条活动事件，payload 原样保存，解析推迟到聚合阶段
func (s *ActivityService) RecordEvent(userID uint, input *RecordEventInput) (*model.ActivityEvent, error) {
	if input.LessonID == "" {
		return nil, util.ErrMissingLessonID
	}
	if input.EventType == "" {
		return nil, util.ErrMissingEventType
	}
	if _, ok := knownEventTypes[input.EventType]; !ok {
		return nil, util.ErrUnknownEventType
	}

	event := &model.ActivityEvent{
		UserID:    userID,
		LessonID:  input.LessonID,
		BlockID:   input.BlockID,
		ToolKind:  input.ToolKind,
		EventType: input.EventType,
		Payload:   input.Data,
	}
	if err := s.EventRepo.Create(event); err != nil {
		return nil, err
	}
	monitoring.ActivityEventCounter.WithLabelValues(event.EventType).Inc()
	return event, nil
}
