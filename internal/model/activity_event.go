package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// 学习活动事件类型
const (
	EventQuizSubmit      = "quiz_submit"
	EventQuizReset       = "quiz_reset"
	EventExplanationView = "explanation_view"
	EventLessonHeartbeat = "lesson_heartbeat"
	EventLessonView      = "lesson_view"
)

// ActivityEvent 学习活动事件，只追加不修改
// Payload 按事件类型携带不同结构（quiz_submit 带 {correct,total,pct}），可能缺失或损坏
type ActivityEvent struct {
	ID        string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    uint            `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	LessonID  string          `gorm:"index;type:varchar(36);not null" json:"lessonId"`
	BlockID   string          `gorm:"size:100" json:"blockId"`
	ToolKind  string          `gorm:"size:50" json:"toolKind"`
	EventType string          `gorm:"index;size:50;not null" json:"eventType"`
	Payload   json.RawMessage `gorm:"type:json" json:"payload"`
	CreatedAt time.Time       `gorm:"index" json:"occurredAt"`
}

func (ActivityEvent) TableName() string {
	return "lesson_activity_events"
}

func (e *ActivityEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = GenerateUUID()
	}
	return
}

// QuizSubmitPayload quiz_submit 事件的载荷
type QuizSubmitPayload struct {
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Pct     float64 `json:"pct"`
}
