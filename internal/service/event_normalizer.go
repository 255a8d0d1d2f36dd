package service

import (
	"encoding/json"
	"sort"
	"time"

	"science_nova_backend/internal/model"
)

// NormalizedEvent 归一化后的活动事件
// 按事件类型只保留相关字段，载荷解析失败只丢弃对应字段，事件本身保留
type NormalizedEvent struct {
	UserID     uint
	LessonID   string
	EventType  string
	OccurredAt time.Time

	// Quiz 仅在 quiz_submit 且载荷可解析时非空
	Quiz *model.QuizSubmitPayload
}

// NormalizeEvents 把原始事件行解析为按时间排序的归一化事件列表
// 任何载荷问题都不会导致事件被丢弃，日期/会话类统计始终计入该事件
func NormalizeEvents(rows []model.ActivityEvent) []NormalizedEvent {
	events := make([]NormalizedEvent, 0, len(rows))
	for _, row := range rows {
		ev := NormalizedEvent{
			UserID:     row.UserID,
			LessonID:   row.LessonID,
			EventType:  row.EventType,
			OccurredAt: row.CreatedAt,
		}

		// lesson_heartbeat 等其他事件按次计数，载荷无需解析
		if row.EventType == model.EventQuizSubmit {
			ev.Quiz = decodeQuizPayload(row.Payload)
		}

		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].OccurredAt.Before(events[j].OccurredAt)
	})
	return events
}

// decodeQuizPayload 解析测验载荷，兼容二次编码成字符串的JSON
func decodeQuizPayload(raw json.RawMessage) *model.QuizSubmitPayload {
	data := rawPayloadBytes(raw)
	if data == nil {
		return nil
	}

	var p model.QuizSubmitPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	return &p
}

// rawPayloadBytes 取出载荷字节，如果整体是一个JSON字符串则先解开一层
func rawPayloadBytes(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []byte(s)
	}
	return raw
}
