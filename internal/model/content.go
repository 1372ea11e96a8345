package model

import (
	"strings"

	"gorm.io/gorm"
)

type ContentType string

const (
	ContentEssay ContentType = "essay"
	ContentExam  ContentType = "exam"
)

func (t ContentType) Valid() bool {
	return t == ContentEssay || t == ContentExam
}

// Essay 付费文章，HTMLContent 为受保护字段
//
// swagger:model Essay
type Essay struct {
	BaseModel
	TopicID     uint          `gorm:"index" json:"topicId"`
	Title       string        `gorm:"size:255;not null" json:"title"`
	Author      string        `gorm:"size:128" json:"author"`
	Excerpt     string        `gorm:"type:text" json:"excerpt"`
	HTMLContent string        `gorm:"type:longtext" json:"htmlContent"`
	CoverImage  string        `gorm:"size:500" json:"coverImage"`
	Status      PublishStatus `gorm:"type:varchar(16);default:'draft';index" json:"status"`
}

func (Essay) TableName() string {
	return "essays"
}

func (e *Essay) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(e.Title) == "" {
		return invalid("essay title is required")
	}
	if e.Status == "" {
		e.Status = StatusDraft
	}
	if !e.Status.Valid() {
		return invalid("essay status must be draft or published")
	}
	return nil
}

// Exam 静态试卷（HTML 文档），与 InteractiveExam 不同
//
// swagger:model Exam
type Exam struct {
	BaseModel
	TopicID        uint          `gorm:"index" json:"topicId"`
	Title          string        `gorm:"size:255;not null" json:"title"`
	Subject        string        `gorm:"size:128;index" json:"subject"`
	Grade          string        `gorm:"size:64" json:"grade"`
	Year           int           `json:"year"`
	Description    string        `gorm:"type:text" json:"description"`
	PreviewContent string        `gorm:"type:text" json:"previewContent"`
	HTMLContent    string        `gorm:"type:longtext" json:"htmlContent"`
	Status         PublishStatus `gorm:"type:varchar(16);default:'draft';index" json:"status"`
}

func (Exam) TableName() string {
	return "exams"
}

func (e *Exam) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(e.Title) == "" {
		return invalid("exam title is required")
	}
	if e.Status == "" {
		e.Status = StatusDraft
	}
	if !e.Status.Valid() {
		return invalid("exam status must be draft or published")
	}
	return nil
}
