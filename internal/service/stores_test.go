package service

import (
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/repository/memory"
)

var (
	_ UserStore            = (*repository.UserRepository)(nil)
	_ InteractiveExamStore = (*repository.InteractiveExamRepository)(nil)
	_ SubmissionStore      = (*repository.SubmissionRepository)(nil)
	_ SubscriptionStore    = (*repository.SubscriptionRepository)(nil)
	_ EssayStore           = (*repository.EssayRepository)(nil)
	_ ExamStore            = (*repository.ExamRepository)(nil)
	_ CategoryStore        = (*repository.CategoryRepository)(nil)
	_ TopicStore           = (*repository.TopicRepository)(nil)
	_ NewsStore            = (*repository.NewsRepository)(nil)
	_ NoticeStore          = (*repository.NoticeRepository)(nil)

	_ UserStore            = (*memory.Users)(nil)
	_ InteractiveExamStore = (*memory.Exams)(nil)
	_ SubmissionStore      = (*memory.Submissions)(nil)
	_ SubscriptionStore    = (*memory.Subscriptions)(nil)
	_ EssayStore           = (*memory.Essays)(nil)
	_ ExamStore            = (*memory.StaticExams)(nil)
	_ CategoryStore        = (*memory.Categories)(nil)
	_ TopicStore           = (*memory.Topics)(nil)
	_ NewsStore            = (*memory.News)(nil)
	_ NoticeStore          = (*memory.Notices)(nil)
	_ Cache                = (*memory.Cache)(nil)
)
