// 生成演示用学习活动数据脚本
//
// 为指定用户写入一批覆盖各成就条件的活动事件：
// 逐步提升的测验成绩、重做记录、解析查看、学习心跳等。
// 仅用于本地联调或演示环境，请勿在生产库执行。
//
// 用法: go run scripts/seed_activity.go -user 1
package main

import (
	"science_nova_backend/internal/config"
	"science_nova_backend/internal/model"
	"science_nova_backend/pkg/database"
	"science_nova_backend/pkg/logger"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

func main() {
	userID := flag.Uint("user", 1, "要写入活动数据的用户ID")
	flag.Parse()

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var lessons []model.Lesson
	if err := db.Limit(7).Find(&lessons).Error; err != nil || len(lessons) == 0 {
		log.Fatalf("查询课程失败，请先启动服务完成建库: %v", err)
	}

	now := time.Now().UTC()
	events := make([]model.ActivityEvent, 0, 256)

	lessonAt := func(i int) string {
		return lessons[i%len(lessons)].ID
	}

	// 12次逐步提升的测验成绩，分布在12天内
	for i := 0; i < 12; i++ {
		score := float64(60 + i*3)
		if score > 95 {
			score = 95
		}
		payload, _ := json.Marshal(model.QuizSubmitPayload{
			Correct: int(score / 10),
			Total:   10,
			Pct:     score,
		})
		events = append(events, model.ActivityEvent{
			UserID:    *userID,
			LessonID:  lessonAt(i / 3),
			BlockID:   fmt.Sprintf("quiz-block-%d", i),
			ToolKind:  "QUIZ",
			EventType: model.EventQuizSubmit,
			Payload:   payload,
			CreatedAt: now.Add(-time.Duration(11-i) * 24 * time.Hour),
		})
	}

	// 4次测验重做
	for i := 0; i < 4; i++ {
		events = append(events, model.ActivityEvent{
			UserID:    *userID,
			LessonID:  lessonAt(i),
			BlockID:   fmt.Sprintf("quiz-block-%d", i),
			ToolKind:  "QUIZ",
			EventType: model.EventQuizReset,
			CreatedAt: now.Add(-time.Duration(10-i) * 24 * time.Hour),
		})
	}

	// 25次解析查看，分布在24小时内
	for i := 0; i < 25; i++ {
		events = append(events, model.ActivityEvent{
			UserID:    *userID,
			LessonID:  lessonAt(i / 5),
			BlockID:   fmt.Sprintf("quiz-block-%d", i),
			ToolKind:  "QUIZ",
			EventType: model.EventExplanationView,
			CreatedAt: now.Add(-time.Duration(24-i) * time.Hour),
		})
	}

	// 150分钟的学习心跳
	for i := 0; i < 150; i++ {
		events = append(events, model.ActivityEvent{
			UserID:    *userID,
			LessonID:  lessonAt(i / 30),
			BlockID:   fmt.Sprintf("content-block-%d", i),
			ToolKind:  "LESSON",
			EventType: model.EventLessonHeartbeat,
			CreatedAt: now.Add(-time.Duration(149-i) * time.Minute),
		})
	}

	// 浏览全部课程，覆盖不同学科
	for i := range lessons {
		events = append(events, model.ActivityEvent{
			UserID:    *userID,
			LessonID:  lessons[i].ID,
			ToolKind:  "LESSON",
			EventType: model.EventLessonView,
			CreatedAt: now.Add(-time.Duration(i) * 2 * time.Hour),
		})
	}

	log.Printf("写入 %d 条活动事件...", len(events))
	for i := range events {
		if err := db.Create(&events[i]).Error; err != nil {
			log.Fatalf("写入失败: %v", err)
		}
	}
	log.Println("完成！")
}
