package model

import "time"

// StatDelta 指标当前值及其相对上一窗口的百分比变化
type StatDelta struct {
	Value  float64 `json:"value"`
	Delta  float64 `json:"delta"`
	Suffix string  `json:"suffix,omitempty"`
}

// DayBucket 7天趋势序列中一天的汇总
// 按日历日期分桶，Day 仅是展示用的星期缩写
type DayBucket struct {
	Day     string `json:"day"`
	Date    string `json:"date"`
	Views   int    `json:"views"`
	Quizzes int    `json:"quizzes"`
}

// TopicSlice 学科分布饼图的一个扇区
type TopicSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"` // 整数百分比
	Color string `json:"color"`
}

// DashboardStats 教师看板的核心指标
type DashboardStats struct {
	ActiveStudents StatDelta      `json:"activeStudents"`
	AvgQuizScore   StatDelta      `json:"avgQuizScore"`
	LessonsViewed  StatDelta      `json:"lessonsViewed"`
	Engagement     StatDelta      `json:"engagement"`
	Totals         DashboardTotal `json:"totals"`
}

type DashboardTotal struct {
	Students int64 `json:"students"`
}

// AnalyticsWindow 当前统计窗口的起止时间
type AnalyticsWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DashboardMetrics 教师看板完整响应
type DashboardMetrics struct {
	Stats          DashboardStats `json:"stats"`
	EngagementData []DayBucket    `json:"engagementData"`
	TopicData      []TopicSlice   `json:"topicData"`
	Window         AnalyticsWindow `json:"window"`
}
