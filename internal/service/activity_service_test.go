package service

import (
	"testing"

	"science_nova_backend/internal/model"
	"science_nova_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestRecordEventValidation(t *testing.T) {
	s := &ActivityService{}

	t.Run("missing lesson id", func(t *testing.T) {
		_, err := s.RecordEvent(1, &RecordEventInput{EventType: model.EventLessonView})
		assert.ErrorIs(t, err, util.ErrMissingLessonID)
	})

	t.Run("missing event type", func(t *testing.T) {
		_, err := s.RecordEvent(1, &RecordEventInput{LessonID: "l1"})
		assert.ErrorIs(t, err, util.ErrMissingEventType)
	})

	t.Run("unknown event type", func(t *testing.T) {
		_, err := s.RecordEvent(1, &RecordEventInput{LessonID: "l1", EventType: "page_scroll"})
		assert.ErrorIs(t, err, util.ErrUnknownEventType)
	})
}
