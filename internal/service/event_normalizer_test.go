package service

import (
	"encoding/json"
	"testing"
	"time"

	"science_nova_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEventsSortsByTime(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rows := []model.ActivityEvent{
		{UserID: 1, LessonID: "l2", EventType: model.EventLessonView, CreatedAt: base.Add(2 * time.Hour)},
		{UserID: 1, LessonID: "l1", EventType: model.EventLessonView, CreatedAt: base},
		{UserID: 1, LessonID: "l3", EventType: model.EventLessonView, CreatedAt: base.Add(time.Hour)},
	}

	events := NormalizeEvents(rows)
	require.Len(t, events, 3)
	assert.Equal(t, "l1", events[0].LessonID)
	assert.Equal(t, "l3", events[1].LessonID)
	assert.Equal(t, "l2", events[2].LessonID)
}

func TestNormalizeEventsDecodesQuizPayload(t *testing.T) {
	rows := []model.ActivityEvent{
		{
			UserID:    1,
			LessonID:  "l1",
			EventType: model.EventQuizSubmit,
			Payload:   json.RawMessage(`{"correct":8,"total":10,"pct":80}`),
			CreatedAt: time.Now(),
		},
	}

	events := NormalizeEvents(rows)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Quiz)
	assert.Equal(t, 80.0, events[0].Quiz.Pct)
	assert.Equal(t, 10, events[0].Quiz.Total)
}

func TestNormalizeEventsDoubleEncodedPayload(t *testing.T) {
	// 某些客户端把载荷整体编码成了JSON字符串
	rows := []model.ActivityEvent{
		{
			UserID:    1,
			LessonID:  "l1",
			EventType: model.EventQuizSubmit,
			Payload:   json.RawMessage(`"{\"correct\":9,\"total\":10,\"pct\":90}"`),
			CreatedAt: time.Now(),
		},
	}

	events := NormalizeEvents(rows)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Quiz)
	assert.Equal(t, 90.0, events[0].Quiz.Pct)
}

func TestNormalizeEventsKeepsRowOnBadPayload(t *testing.T) {
	rows := []model.ActivityEvent{
		{
			UserID:    1,
			LessonID:  "l1",
			EventType: model.EventQuizSubmit,
			Payload:   json.RawMessage(`not-json`),
			CreatedAt: time.Now(),
		},
		{
			UserID:    1,
			LessonID:  "l1",
			EventType: model.EventLessonHeartbeat,
			CreatedAt: time.Now(),
		},
	}

	events := NormalizeEvents(rows)
	// 载荷损坏只丢字段不丢事件
	require.Len(t, events, 2)
	for _, ev := range events {
		if ev.EventType == model.EventQuizSubmit {
			assert.Nil(t, ev.Quiz)
		}
	}
}
