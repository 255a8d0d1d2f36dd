package service

import (
	"testing"
	"time"

	"science_nova_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventAt(eventType, lessonID string, at time.Time) NormalizedEvent {
	return NormalizedEvent{UserID: 1, LessonID: lessonID, EventType: eventType, OccurredAt: at}
}

func quizEventAt(pct float64, at time.Time) NormalizedEvent {
	return NormalizedEvent{
		UserID:     1,
		LessonID:   "l1",
		EventType:  model.EventQuizSubmit,
		OccurredAt: at,
		Quiz:       &model.QuizSubmitPayload{Correct: int(pct / 10), Total: 10, Pct: pct},
	}
}

func TestBuildAggregateStatsEmpty(t *testing.T) {
	stats := BuildAggregateStats(nil, nil)

	assert.Equal(t, 0, stats.QuizSubmitCount)
	assert.Equal(t, 0, stats.ConsecutiveStudyDays)
	assert.Equal(t, 0, stats.ScoreImprovementStreak)
	assert.Equal(t, 0, stats.PeakHourCount)
	assert.Equal(t, 0, stats.LessonsViewed)
	assert.Empty(t, stats.SubjectsExplored)
	assert.Equal(t, 0.0, stats.AverageQuizScore)
}

func TestConsecutiveStudyDays(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 10, 0, 0, 0, time.UTC)
	}

	t.Run("five consecutive days", func(t *testing.T) {
		var events []NormalizedEvent
		for d := 1; d <= 5; d++ {
			events = append(events, eventAt(model.EventLessonView, "l1", day(d)))
		}
		stats := BuildAggregateStats(events, nil)
		assert.Equal(t, 5, stats.ConsecutiveStudyDays)
	})

	t.Run("gap splits the run", func(t *testing.T) {
		events := []NormalizedEvent{
			eventAt(model.EventLessonView, "l1", day(1)),
			eventAt(model.EventLessonView, "l1", day(2)),
			eventAt(model.EventLessonView, "l1", day(4)),
			eventAt(model.EventLessonView, "l1", day(5)),
			eventAt(model.EventLessonView, "l1", day(6)),
		}
		stats := BuildAggregateStats(events, nil)
		assert.Equal(t, 3, stats.ConsecutiveStudyDays)
	})

	t.Run("isolated day counts as one", func(t *testing.T) {
		events := []NormalizedEvent{eventAt(model.EventQuizReset, "l1", day(10))}
		stats := BuildAggregateStats(events, nil)
		assert.Equal(t, 1, stats.ConsecutiveStudyDays)
	})

	t.Run("same day several events still one", func(t *testing.T) {
		events := []NormalizedEvent{
			eventAt(model.EventLessonView, "l1", day(10)),
			eventAt(model.EventQuizReset, "l1", day(10).Add(3*time.Hour)),
		}
		stats := BuildAggregateStats(events, nil)
		assert.Equal(t, 1, stats.ConsecutiveStudyDays)
	})
}

func TestScoreImprovementStreak(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("three ascending scores give streak of two", func(t *testing.T) {
		events := []NormalizedEvent{
			quizEventAt(85, at),
			quizEventAt(90, at.Add(time.Hour)),
			quizEventAt(95, at.Add(2*time.Hour)),
		}
		stats := BuildAggregateStats(events, nil)
		assert.Equal(t, 2, stats.ScoreImprovementStreak)
		assert.Equal(t, 90.0, stats.AverageQuizScore)
	})

	t.Run("fewer than three scores give zero", func(t *testing.T) {
		events := []NormalizedEvent{
			quizEventAt(60, at),
			quizEventAt(80, at.Add(time.Hour)),
		}
		stats := BuildAggregateStats(events, nil)
		assert.Equal(t, 0, stats.ScoreImprovementStreak)
	})

	t.Run("equal score breaks the run", func(t *testing.T) {
		events := []NormalizedEvent{
			quizEventAt(60, at),
			quizEventAt(70, at.Add(time.Hour)),
			quizEventAt(70, at.Add(2*time.Hour)),
			quizEventAt(80, at.Add(3*time.Hour)),
		}
		stats := BuildAggregateStats(events, nil)
		assert.Equal(t, 1, stats.ScoreImprovementStreak)
	})
}

func TestQuizScoreValidity(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	events := []NormalizedEvent{
		quizEventAt(80, at),
		quizEventAt(0, at.Add(time.Hour)), // 零分视为无效
		{UserID: 1, LessonID: "l1", EventType: model.EventQuizSubmit, OccurredAt: at.Add(2 * time.Hour)}, // 载荷损坏
	}

	stats := BuildAggregateStats(events, nil)
	assert.Equal(t, 3, stats.QuizSubmitCount)
	require.Len(t, stats.QuizScores, 1)
	assert.Equal(t, 80.0, stats.AverageQuizScore)
}

func TestPeakHourCount(t *testing.T) {
	var events []NormalizedEvent
	for i := 0; i < 6; i++ {
		// 同一小时，跨不同日期
		events = append(events, eventAt(model.EventLessonView, "l1",
			time.Date(2026, 3, 1+i, 15, 30, 0, 0, time.UTC)))
	}
	events = append(events, eventAt(model.EventLessonView, "l1",
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))

	stats := BuildAggregateStats(events, nil)
	assert.Equal(t, 6, stats.PeakHourCount)
}

func TestSubjectsExploredAndLessonsViewed(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	texts := map[string]model.LessonText{
		"bio":  {Title: "Photosynthesis Basics", Topic: "Biology"},
		"phys": {Title: "Newton's Laws of Motion", Topic: "Physics"},
	}

	events := []NormalizedEvent{
		eventAt(model.EventLessonView, "bio", at),
		eventAt(model.EventLessonView, "bio", at.Add(time.Hour)), // 同一课程重复浏览
		eventAt(model.EventLessonView, "phys", at.Add(2*time.Hour)),
		eventAt(model.EventQuizReset, "unknown", at.Add(3*time.Hour)), // 无文本 → Other
	}

	stats := BuildAggregateStats(events, texts)
	assert.Equal(t, 2, stats.LessonsViewed)
	assert.Len(t, stats.SubjectsExplored, 3)
	assert.Contains(t, stats.SubjectsExplored, "Biology")
	assert.Contains(t, stats.SubjectsExplored, "Physics")
	assert.Contains(t, stats.SubjectsExplored, SubjectOther)
}

func TestDeepDiveMinutes(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var events []NormalizedEvent
	for i := 0; i < 130; i++ {
		events = append(events, eventAt(model.EventLessonHeartbeat, "l1", at.Add(time.Duration(i)*time.Minute)))
	}

	stats := BuildAggregateStats(events, nil)
	assert.Equal(t, 130, stats.DeepDiveMinutes)
}

func TestAggregationIdempotent(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	events := []NormalizedEvent{
		quizEventAt(70, at),
		quizEventAt(80, at.Add(time.Hour)),
		quizEventAt(90, at.Add(2*time.Hour)),
		eventAt(model.EventLessonView, "l1", at.Add(3*time.Hour)),
	}

	first := BuildAggregateStats(events, nil)
	second := BuildAggregateStats(events, nil)
	assert.Equal(t, first, second)
}
