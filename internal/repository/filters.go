package repository

import "studyhub_backend/internal/model"

type InteractiveExamFilter struct {
	Status     model.PublishStatus
	Subject    string
	Grade      string
	Difficulty model.Difficulty
}

type ContentFilter struct {
	TopicID uint
	Status  model.PublishStatus
	Subject string
	Search  string
	Page    int
	Limit   int
}
