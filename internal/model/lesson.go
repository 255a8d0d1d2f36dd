package model

// Lesson 课程元数据，学科分类只使用标题和主题两个文本字段
type Lesson struct {
	UUIDBase
	Title      string `gorm:"size:255;not null" json:"title"`
	Topic      string `gorm:"size:255" json:"topic"`
	GradeLevel int    `gorm:"index;default:0" json:"gradeLevel"`
	Published  bool   `gorm:"default:false" json:"published"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// LessonText 分类器需要的课程文本，由仓库层按课程ID批量查出
type LessonText struct {
	Title string
	Topic string
}
