package model

import "time"

// UserAggregateStats 每次请求从原始事件重新推导的用户聚合统计，不落库
type UserAggregateStats struct {
	QuizScores             []float64           // 按时间顺序的有效测验得分（pct）
	QuizSubmitCount        int                 // 含载荷损坏的提交在内的总提交数
	QuizResetCount         int
	ExplanationViewCount   int
	SubjectsExplored       map[string]struct{} // 学科标签集合
	ConsecutiveStudyDays   int                 // 最长连续学习天数
	DeepDiveMinutes        int                 // lesson_heartbeat 事件数，1事件≈1分钟
	HourHistogram          [24]int             // 按小时分布（不区分日期）
	PeakHourCount          int                 // 小时直方图峰值
	ScoreImprovementStreak int                 // 最长严格递增得分步数
	LessonsViewed          int                 // 浏览过的不同课程数
	AverageQuizScore       float64
}

// AchievementDefinition 成就目录条目，目录为固定硬编码列表
type AchievementDefinition struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Category    string
	MaxProgress int
	Unlocked    func(s *UserAggregateStats) bool
	Progress    func(s *UserAggregateStats) int // 0-100
}

// AchievementResult 单个成就的评估结果
type AchievementResult struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Category    string     `json:"category"`
	Unlocked    bool       `json:"unlocked"`
	EarnedDate  *time.Time `json:"earnedDate,omitempty"`
	Progress    int        `json:"progress"`
	MaxProgress int        `json:"maxProgress"`
}

// LearnerStats 成就接口返回的学习者概要，等级/经验由浏览与满分次数外部推导
type LearnerStats struct {
	SubjectsExplored     int     `json:"subjectsExplored"`
	ConsecutiveStudyDays int     `json:"consecutiveStudyDays"`
	QuizSubmits          int     `json:"quizSubmits"`
	QuizResets           int     `json:"quizResets"`
	ExplanationViews     int     `json:"explanationViews"`
	AverageQuizScore     float64 `json:"averageQuizScore"`
	DeepDiveMinutes      int     `json:"deepDiveMinutes"`
	LessonsViewed        int     `json:"lessonsViewed"`
	TotalXP              int     `json:"totalXp"`
	Level                int     `json:"level"`
	CurrentLevelXP       int     `json:"currentLevelXp"`
	NextLevelXP          int     `json:"nextLevelXp"`
}

// UserAchievements 成就接口的完整响应
type UserAchievements struct {
	Stats        LearnerStats        `json:"stats"`
	Achievements []AchievementResult `json:"achievements"`
}
