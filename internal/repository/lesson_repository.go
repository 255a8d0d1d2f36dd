package repository

import (
	"science_nova_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

// FindTextByIDs 按课程ID批量查出标题与主题，供学科分类使用
// 查不到的课程不在结果中，调用方按缺失处理
func (r *LessonRepository) FindTextByIDs(ids []string) (map[string]model.LessonText, error) {
	result := make(map[string]model.LessonText, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var lessons []model.Lesson
	err := r.DB.Select("id", "title", "topic").Where("id IN ?", ids).Find(&lessons).Error
	if err != nil {
		return nil, err
	}

	for _, l := range lessons {
		result[l.ID] = model.LessonText{Title: l.Title, Topic: l.Topic}
	}
	return result, nil
}
