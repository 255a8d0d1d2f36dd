package repository

import (
	"time"

	"science_nova_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityEventRepository struct {
	DB *gorm.DB
}

func NewActivityEventRepository(db *gorm.DB) *ActivityEventRepository {
	return &ActivityEventRepository{DB: db}
}

func (r *ActivityEventRepository) Create(event *model.ActivityEvent) error {
	return r.DB.Create(event).Error
}

// FindRecentByUserID 取用户最近的事件，调用方负责限定数量上限
// 倒序取最新N条，时间正序排序由归一化层完成
func (r *ActivityEventRepository) FindRecentByUserID(userID uint, limit int) ([]model.ActivityEvent, error) {
	var events []model.ActivityEvent
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// FindInWindow 取时间窗口内全体用户的事件
func (r *ActivityEventRepository) FindInWindow(start, end time.Time) ([]model.ActivityEvent, error) {
	var events []model.ActivityEvent
	err := r.DB.Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

// FindViewsInWindow 取窗口内的 lesson_view 事件，用于学科分布统计
func (r *ActivityEventRepository) FindViewsInWindow(start, end time.Time) ([]model.ActivityEvent, error) {
	var events []model.ActivityEvent
	err := r.DB.Where("event_type = ? AND created_at >= ? AND created_at <= ?",
		model.EventLessonView, start, end).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}
