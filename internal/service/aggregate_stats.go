package service

import (
	"sort"
	"time"

	"science_nova_backend/internal/model"
	"science_nova_backend/internal/util"
)

// BuildAggregateStats 从归一化事件重建用户聚合统计
// 纯函数：结果只取决于事件集和课程文本，不依赖墙钟
func BuildAggregateStats(events []NormalizedEvent, lessonText map[string]model.LessonText) *model.UserAggregateStats {
	stats := &model.UserAggregateStats{
		SubjectsExplored: make(map[string]struct{}),
	}

	seenLessons := make(map[string]struct{})
	viewedLessons := make(map[string]struct{})

	for _, ev := range events {
		stats.HourHistogram[ev.OccurredAt.Hour()]++

		if ev.LessonID != "" {
			seenLessons[ev.LessonID] = struct{}{}
		}

		switch ev.EventType {
		case model.EventQuizSubmit:
			stats.QuizSubmitCount++
			if ev.Quiz != nil && ev.Quiz.Pct > 0 {
				stats.QuizScores = append(stats.QuizScores, ev.Quiz.Pct)
			}
		case model.EventQuizReset:
			stats.QuizResetCount++
		case model.EventExplanationView:
			stats.ExplanationViewCount++
		case model.EventLessonHeartbeat:
			// 1次心跳 ≈ 1分钟投入，不按课程或日期去重
			stats.DeepDiveMinutes++
		case model.EventLessonView:
			if ev.LessonID != "" {
				viewedLessons[ev.LessonID] = struct{}{}
			}
		}
	}

	for lessonID := range seenLessons {
		text := lessonText[lessonID]
		stats.SubjectsExplored[ClassifySubject(text.Title, text.Topic)] = struct{}{}
	}

	stats.LessonsViewed = len(viewedLessons)
	stats.ConsecutiveStudyDays = consecutiveStudyDays(events)
	stats.ScoreImprovementStreak = scoreImprovementStreak(stats.QuizScores)
	stats.PeakHourCount = peakHourCount(stats.HourHistogram)
	stats.AverageQuizScore = averageScore(stats.QuizScores)

	return stats
}

// consecutiveStudyDays 任意事件落在的日历日期集合中的最长连续段
func consecutiveStudyDays(events []NormalizedEvent) int {
	daySet := make(map[string]struct{})
	for _, ev := range events {
		daySet[ev.OccurredAt.Format(util.DateFormat)] = struct{}{}
	}
	if len(daySet) == 0 {
		return 0
	}

	days := make([]string, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Strings(days)

	// 日期字符串可比较排序，相邻判断仍用时间差
	maxRun, run := 1, 1
	for i := 1; i < len(days); i++ {
		prev, _ := time.Parse(util.DateFormat, days[i-1])
		curr, _ := time.Parse(util.DateFormat, days[i])
		if curr.Sub(prev) == 24*time.Hour {
			run++
			if run > maxRun {
				maxRun = run
			}
		} else {
			run = 1
		}
	}
	return maxRun
}

// scoreImprovementStreak 按时间顺序得分的最长严格递增步数
// 不足3个得分时没有提升趋势可言，返回0
func scoreImprovementStreak(scores []float64) int {
	if len(scores) < 3 {
		return 0
	}

	longest, current := 0, 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[i-1] {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

// peakHourCount 全量事件按小时分桶后的峰值，不要求跨天
func peakHourCount(histogram [24]int) int {
	max := 0
	for _, n := range histogram {
		if n > max {
			max = n
		}
	}
	return max
}

func averageScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
