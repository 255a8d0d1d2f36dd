package database

import (
	"science_nova_backend/internal/config"
	"science_nova_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Lesson{},
		&model.ActivityEvent{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认课程（空库时插入，方便前端联调）
	var count int64
	db.Model(&model.Lesson{}).Count(&count)
	if count == 0 {
		defaultLessons := []model.Lesson{
			{Title: "Photosynthesis Basics", Topic: "Biology", GradeLevel: 5, Published: true},
			{Title: "Newton's Laws of Motion", Topic: "Physics", GradeLevel: 6, Published: true},
			{Title: "The Water Cycle", Topic: "Weather & Climate", GradeLevel: 4, Published: true},
			{Title: "Chemical Reactions", Topic: "Chemistry", GradeLevel: 6, Published: true},
			{Title: "The Solar System", Topic: "Astronomy", GradeLevel: 5, Published: true},
			{Title: "Volcanoes and Earthquakes", Topic: "Earth Science", GradeLevel: 5, Published: true},
			{Title: "Ecosystems and Food Chains", Topic: "Biology", GradeLevel: 4, Published: true},
		}
		for _, l := range defaultLessons {
			db.Create(&l)
		}
	}

	return db, nil
}
