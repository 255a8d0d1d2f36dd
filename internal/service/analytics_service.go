package service

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"science_nova_backend/internal/model"
	"science_nova_backend/internal/repository"
	"science_nova_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const dashboardCacheKey = "analytics:dashboard"

// topicPalette 学科分布的固定配色，按名次取色，不够则循环
var topicPalette = []string{"#3b82f6", "#8b5cf6", "#10b981", "#f59e0b", "#ef4444", "#06b6d4", "#ec4899"}

type AnalyticsService struct {
	EventRepo  *repository.ActivityEventRepository
	LessonRepo *repository.LessonRepository
	UserRepo   *repository.UserRepository
	Redis      *redis.Client
	CacheTTL   time.Duration
}

func NewAnalyticsService(
	eventRepo *repository.ActivityEventRepository,
	lessonRepo *repository.LessonRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) *AnalyticsService {
	return &AnalyticsService{
		EventRepo:  eventRepo,
		LessonRepo: lessonRepo,
		UserRepo:   userRepo,
		Redis:      rdb,
		CacheTTL:   cacheTTL,
	}
}

// GetDashboardMetrics 教师看板指标：近7天对比前7天，30天学科分布
// 窗口边界由调用方传入的 now 决定
func (s *AnalyticsService) GetDashboardMetrics(now time.Time) (*model.DashboardMetrics, error) {
	ctx := context.Background()

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, dashboardCacheKey).Result()
		if err == nil {
			var metrics model.DashboardMetrics
			if jsonErr := json.Unmarshal([]byte(cached), &metrics); jsonErr == nil {
				return &metrics, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("Failed to read dashboard cache", zap.Error(err))
		}
	}

	today := startOfDayUTC(now)
	start7 := today.AddDate(0, 0, -6)
	end7 := endOfDayUTC(today)
	prevStart7 := today.AddDate(0, 0, -13)
	prevEnd7 := endOfDayUTC(today.AddDate(0, 0, -7))

	curRows, err := s.EventRepo.FindInWindow(start7, end7)
	if err != nil {
		return nil, err
	}
	prevRows, err := s.EventRepo.FindInWindow(prevStart7, prevEnd7)
	if err != nil {
		return nil, err
	}

	cur := windowStatsOf(NormalizeEvents(curRows))
	prev := windowStatsOf(NormalizeEvents(prevRows))

	totalStudents, err := s.UserRepo.CountStudents()
	if err != nil {
		return nil, err
	}

	engagement := engagementRatio(cur.ActiveUsers, totalStudents)
	prevEngagement := engagementRatio(prev.ActiveUsers, totalStudents)

	series := buildEngagementSeries(NormalizeEvents(curRows), today)

	start30 := today.AddDate(0, 0, -29)
	viewRows, err := s.EventRepo.FindViewsInWindow(start30, end7)
	if err != nil {
		return nil, err
	}
	views := NormalizeEvents(viewRows)
	texts, err := s.LessonRepo.FindTextByIDs(distinctLessonIDs(views))
	if err != nil {
		return nil, err
	}

	metrics := &model.DashboardMetrics{
		Stats: model.DashboardStats{
			ActiveStudents: model.StatDelta{
				Value: float64(cur.ActiveUsers),
				Delta: pctChange(float64(cur.ActiveUsers), float64(prev.ActiveUsers)),
			},
			AvgQuizScore: model.StatDelta{
				Value:  cur.AvgQuizScore,
				Delta:  pctChange(cur.AvgQuizScore, prev.AvgQuizScore),
				Suffix: "%",
			},
			LessonsViewed: model.StatDelta{
				Value: float64(cur.LessonViews),
				Delta: pctChange(float64(cur.LessonViews), float64(prev.LessonViews)),
			},
			Engagement: model.StatDelta{
				Value:  engagement,
				Delta:  pctChange(engagement, prevEngagement),
				Suffix: "%",
			},
			Totals: model.DashboardTotal{Students: totalStudents},
		},
		EngagementData: series,
		TopicData:      buildTopicDistribution(views, texts),
		Window:         model.AnalyticsWindow{Start: start7, End: end7},
	}

	if s.Redis != nil {
		if payload, jsonErr := json.Marshal(metrics); jsonErr == nil {
			if err := s.Redis.Set(ctx, dashboardCacheKey, payload, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("Failed to write dashboard cache", zap.Error(err))
			}
		}
	}

	return metrics, nil
}

// windowStats 单个窗口的汇总
type windowStats struct {
	ActiveUsers  int
	LessonViews  int
	AvgQuizScore float64
}

func windowStatsOf(events []NormalizedEvent) windowStats {
	users := make(map[uint]struct{})
	views := 0
	var scores []float64

	for _, ev := range events {
		users[ev.UserID] = struct{}{}
		switch ev.EventType {
		case model.EventLessonView:
			views++
		case model.EventQuizSubmit:
			if ev.Quiz != nil && ev.Quiz.Pct > 0 {
				scores = append(scores, ev.Quiz.Pct)
			}
		}
	}

	return windowStats{
		ActiveUsers:  len(users),
		LessonViews:  views,
		AvgQuizScore: round1(averageScore(scores)),
	}
}

// pctChange 环比百分比变化，保留1位小数
// 基数为0时：有增长记100，否则记0
func pctChange(cur, prev float64) float64 {
	if prev == 0 {
		if cur > 0 {
			return 100
		}
		return 0
	}
	return round1((cur - prev) / prev * 100)
}

// engagementRatio 活跃用户占全部学生的百分比，分母为0时记0
func engagementRatio(active int, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(active) / float64(total) * 100)
}

// buildEngagementSeries 近7天的日趋势序列
// 按日历日期分桶，星期缩写只作展示标签
func buildEngagementSeries(events []NormalizedEvent, today time.Time) []model.DayBucket {
	series := make([]model.DayBucket, 0, 7)
	index := make(map[string]int, 7)
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		key := d.Format("2006-01-02")
		index[key] = len(series)
		series = append(series, model.DayBucket{
			Day:  d.Format("Mon"),
			Date: key,
		})
	}

	for _, ev := range events {
		key := ev.OccurredAt.UTC().Format("2006-01-02")
		pos, ok := index[key]
		if !ok {
			continue
		}
		switch ev.EventType {
		case model.EventLessonView:
			series[pos].Views++
		case model.EventQuizSubmit:
			series[pos].Quizzes++
		}
	}

	return series
}

// buildTopicDistribution 近30天浏览课程的学科分布
// 每个被浏览过的课程计1次，取频次前6的标签换算成整数百分比
func buildTopicDistribution(views []NormalizedEvent, texts map[string]model.LessonText) []model.TopicSlice {
	freq := make(map[string]int)
	seen := make(map[string]struct{})
	for _, ev := range views {
		if ev.LessonID == "" {
			continue
		}
		if _, ok := seen[ev.LessonID]; ok {
			continue
		}
		seen[ev.LessonID] = struct{}{}

		text := texts[ev.LessonID]
		freq[ClassifySubject(text.Title, text.Topic)]++
	}

	if len(freq) == 0 {
		return []model.TopicSlice{{Name: "No Data", Value: 100, Color: "#e5e7eb"}}
	}

	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(freq))
	for name, count := range freq {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > 6 {
		entries = entries[:6]
	}

	total := 0
	for _, e := range entries {
		total += e.count
	}

	slices := make([]model.TopicSlice, 0, len(entries))
	for i, e := range entries {
		slices = append(slices, model.TopicSlice{
			Name:  e.name,
			Value: int(math.Round(float64(e.count) / float64(total) * 100)),
			Color: topicPalette[i%len(topicPalette)],
		})
	}
	return slices
}

func startOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDayUTC(dayStart time.Time) time.Time {
	return dayStart.Add(24*time.Hour - time.Millisecond)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
