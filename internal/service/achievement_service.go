package service

import (
	"math"
	"time"

	"science_nova_backend/internal/model"
	"science_nova_backend/internal/repository"
	"science_nova_backend/pkg/monitoring"

	"github.com/prometheus/client_golang/prometheus"
)

// 单次评估读取的事件上限，截断最近N条由仓库层兑现
const maxEventsPerEvaluation = 1000

type AchievementService struct {
	EventRepo  *repository.ActivityEventRepository
	LessonRepo *repository.LessonRepository
}

func NewAchievementService(
	eventRepo *repository.ActivityEventRepository,
	lessonRepo *repository.LessonRepository,
) *AchievementService {
	return &AchievementService{
		EventRepo:  eventRepo,
		LessonRepo: lessonRepo,
	}
}

// achievementCatalog 固定成就目录，每次评估全量套用
var achievementCatalog = []model.AchievementDefinition{
	{
		ID: "quiz-master-pro", Title: "Quiz Master Pro", Icon: "🧠", Category: "quiz",
		Description: "Complete 10 quizzes with an average score of 85% or higher",
		MaxProgress: 10,
		Unlocked: func(s *model.UserAggregateStats) bool {
			return len(s.QuizScores) >= 10 && s.AverageQuizScore >= 85
		},
		Progress: func(s *model.UserAggregateStats) int {
			return progressOf(float64(len(s.QuizScores)), 10)
		},
	},
	{
		ID: "learning-phoenix", Title: "Learning Phoenix", Icon: "🔄", Category: "resilience",
		Description: "Reset and retake quizzes 3 times to strengthen understanding",
		MaxProgress: 3,
		Unlocked: func(s *model.UserAggregateStats) bool {
			return s.QuizResetCount >= 3
		},
		Progress: func(s *model.UserAggregateStats) int {
			return progressOf(float64(s.QuizResetCount), 3)
		},
	},
	{
		ID: "subject-explorer", Title: "Subject Explorer", Icon: "🗂️", Category: "exploration",
		Description: "Explore lessons across 5 different subjects",
		MaxProgress: 5,
		Unlocked: func(s *model.UserAggregateStats) bool {
			return len(s.SubjectsExplored) >= 5
		},
		Progress: func(s *model.UserAggregateStats) int {
			return progressOf(float64(len(s.SubjectsExplored)), 5)
		},
	},
	{
		ID: "detective-scholar", Title: "Detective Scholar", Icon: "🔍", Category: "learning-behavior",
		Description: "Read 20 quiz explanations to dig into the why behind answers",
		MaxProgress: 20,
		Unlocked: func(s *model.UserAggregateStats) bool {
			return s.ExplanationViewCount >= 20
		},
		Progress: func(s *model.UserAggregateStats) int {
			return progressOf(float64(s.ExplanationViewCount), 20)
		},
	},
	{
		ID: "consistency-champion", Title: "Consistency Champion", Icon: "🔥", Category: "consistency",
		Description: "Study 7 days in a row",
		MaxProgress: 7,
		Unlocked: func(s *model.UserAggregateStats) bool {
			return s.ConsecutiveStudyDays >= 7
		},
		Progress: func(s *model.UserAggregateStats) int {
			return progressOf(float64(s.ConsecutiveStudyDays), 7)
		},
	},
	{
		ID: "deep-dive-scholar", Title: "Deep Dive Scholar", Icon: "🎯", Category: "engagement",
		Description: "Spend 120 minutes deeply engaged with lesson content",
		MaxProgress: 120,
		Unlocked: func(s *model.UserAggregateStats) bool {
			return s.DeepDiveMinutes >= 120
		},
		Progress: func(s *model.UserAggregateStats) int {
			return progressOf(float64(s.DeepDiveMinutes), 120)
		},
	},
	{
		ID: "resilient-learner", Title: "Resilient Learner", Icon: "💪", Category: "resilience",
		Description: "Improve your quiz score 3 times in a row",
		MaxProgress: 3,
		Unlocked: func(s *model.UserAggregateStats) bool {
			return s.ScoreImprovementStreak >= 3
		},
		Progress: func(s *model.UserAggregateStats) int {
			return progressOf(float64(s.ScoreImprovementStreak), 3)
		},
	},
	{
		ID: "time-keeper", Title: "Time Keeper", Icon: "🌅", Category: "consistency",
		Description: "Study 5 times at your favorite hour of the day",
		MaxProgress: 5,
		Unlocked: func(s *model.UserAggregateStats) bool {
			return s.PeakHourCount >= 5
		},
		Progress: func(s *model.UserAggregateStats) int {
			return progressOf(float64(s.PeakHourCount), 5)
		},
	},
}

// EvaluateAchievements 对同一份聚合统计套用全部目录谓词
// 评估无跨调用记忆，earnedDate 取评估时刻
func EvaluateAchievements(stats *model.UserAggregateStats, now time.Time) []model.AchievementResult {
	results := make([]model.AchievementResult, 0, len(achievementCatalog))
	for _, def := range achievementCatalog {
		result := model.AchievementResult{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			Category:    def.Category,
			Unlocked:    def.Unlocked(stats),
			Progress:    def.Progress(stats),
			MaxProgress: def.MaxProgress,
		}
		if result.Unlocked {
			earned := now
			result.EarnedDate = &earned
		}
		results = append(results, result)
	}
	return results
}

// progressOf 进度归一化到 0-100
func progressOf(value, threshold float64) int {
	p := int(math.Round(value / threshold * 100))
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// GetUserAchievements 拉取用户最近事件并评估全部成就
func (s *AchievementService) GetUserAchievements(userID uint, now time.Time) (*model.UserAchievements, error) {
	timer := prometheus.NewTimer(monitoring.AchievementEvaluationDuration)
	defer timer.ObserveDuration()

	rows, err := s.EventRepo.FindRecentByUserID(userID, maxEventsPerEvaluation)
	if err != nil {
		return nil, err
	}

	events := NormalizeEvents(rows)

	texts, err := s.LessonRepo.FindTextByIDs(distinctLessonIDs(events))
	if err != nil {
		return nil, err
	}

	stats := BuildAggregateStats(events, texts)

	return &model.UserAchievements{
		Stats:        buildLearnerStats(stats),
		Achievements: EvaluateAchievements(stats, now),
	}, nil
}

// buildLearnerStats 概要统计，等级与经验从浏览/满分次数推导
func buildLearnerStats(stats *model.UserAggregateStats) model.LearnerStats {
	perfect := 0
	for _, score := range stats.QuizScores {
		if score >= 100 {
			perfect++
		}
	}

	totalXP := stats.LessonsViewed*10 + perfect*50
	level := totalXP/500 + 1

	return model.LearnerStats{
		SubjectsExplored:     len(stats.SubjectsExplored),
		ConsecutiveStudyDays: stats.ConsecutiveStudyDays,
		QuizSubmits:          stats.QuizSubmitCount,
		QuizResets:           stats.QuizResetCount,
		ExplanationViews:     stats.ExplanationViewCount,
		AverageQuizScore:     math.Round(stats.AverageQuizScore*10) / 10,
		DeepDiveMinutes:      stats.DeepDiveMinutes,
		LessonsViewed:        stats.LessonsViewed,
		TotalXP:              totalXP,
		Level:                level,
		CurrentLevelXP:       (level - 1) * 500,
		NextLevelXP:          level * 500,
	}
}

func distinctLessonIDs(events []NormalizedEvent) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, ev := range events {
		if ev.LessonID == "" {
			continue
		}
		if _, ok := seen[ev.LessonID]; ok {
			continue
		}
		seen[ev.LessonID] = struct{}{}
		ids = append(ids, ev.LessonID)
	}
	return ids
}
