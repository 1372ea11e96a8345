// 初始化演示数据脚本
//
// 创建管理员账号、一个分类/主题、一篇文章、一份静态试卷和一份交互式考试，
// 便于本地联调前端。重复执行时已存在的数据会被跳过。
//
// 用法: SEED_ADMIN_PASSWORD=xxxxxxxx go run scripts/seed_demo.go

package main

import (
	"context"
	"errors"
	"log"
	"os"

	"studyhub_backend/internal/config"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/database"
	"studyhub_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	if cfg.Admin.Email == "" {
		log.Fatal("admin.email 未配置")
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	essays := repository.NewEssayRepository(db)
	exams := repository.NewExamRepository(db)

	auth := service.NewAuthService(users, cfg)
	catalog := service.NewCatalogService(repository.NewCategoryRepository(db), repository.NewTopicRepository(db))
	content := service.NewContentService(essays, exams, service.NewAccessPolicy(repository.NewSubscriptionRepository(db), cfg.Access))
	interactive := service.NewInteractiveExamService(repository.NewInteractiveExamRepository(db), nil, 0)

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if len(password) < 8 {
		log.Fatal("SEED_ADMIN_PASSWORD 至少 8 位")
	}
	adminUser, err := auth.Register(ctx, service.RegisterRequest{Username: "admin", Email: cfg.Admin.Email, Password: password})
	switch {
	case errors.Is(err, util.ErrEmailRegistered):
		adminUser, err = users.FindByEmail(ctx, cfg.Admin.Email)
		if err != nil {
			log.Fatalf("读取管理员失败: %v", err)
		}
		log.Println("管理员已存在，跳过")
	case err != nil:
		log.Fatalf("创建管理员失败: %v", err)
	default:
		log.Printf("管理员已创建: %s", adminUser.Email)
	}

	category, err := catalog.CreateCategory(ctx, service.CategoryRequest{Name: "数学", Slug: "math"})
	if err != nil {
		log.Printf("分类已存在或创建失败，停止写入示例内容: %v", err)
		return
	}
	topic, err := catalog.CreateTopic(ctx, service.TopicRequest{CategoryID: category.ID, Title: "代数基础", Slug: "algebra-basics"})
	if err != nil {
		log.Fatalf("创建主题失败: %v", err)
	}

	if _, err := content.CreateEssay(ctx, service.EssayRequest{
		TopicID:     topic.ID,
		Title:       "如何学好一元一次方程",
		Author:      "StudyHub",
		HTMLContent: "<p>一元一次方程是代数的起点。</p><p>订阅后可阅读完整的解题步骤。</p>",
		Status:      string(model.StatusPublished),
	}); err != nil {
		log.Fatalf("创建文章失败: %v", err)
	}

	if _, err := content.CreateExam(ctx, service.ExamRequest{
		TopicID:        topic.ID,
		Title:          "七年级数学期中试卷",
		Subject:        "math",
		Grade:          "7",
		Year:           2024,
		PreviewContent: "第一部分：选择题（共 10 题）",
		HTMLContent:    "<h2>第一部分</h2><p>……</p><h2>第二部分</h2><p>……</p>",
		Status:         string(model.StatusPublished),
	}); err != nil {
		log.Fatalf("创建试卷失败: %v", err)
	}

	opts := []model.QuestionOption{{ID: "A", Text: "1"}, {ID: "B", Text: "2"}, {ID: "C", Text: "3"}, {ID: "D", Text: "4"}}
	exam, err := interactive.Create(ctx, adminUser.ID, service.CreateInteractiveExamRequest{
		Title:      "方程小测",
		Subject:    "math",
		Duration:   10,
		Difficulty: string(model.DifficultyEasy),
		Grade:      "7",
		Status:     string(model.StatusPublished),
		Questions: []service.QuestionInput{
			{QuestionNumber: 1, Text: "x + 1 = 3，x = ?", Options: opts, CorrectAnswer: "B", Explanation: "x = 3 - 1"},
			{QuestionNumber: 2, Text: "2x = 6，x = ?", Options: opts, CorrectAnswer: "C", Explanation: "x = 6 / 2"},
		},
	})
	if err != nil {
		log.Fatalf("创建交互式考试失败: %v", err)
	}
	log.Printf("完成！交互式考试ID: %s", exam.ID)
}
