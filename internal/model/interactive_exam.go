package model

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// swagger:model InteractiveExam
type InteractiveExam struct {
	UUIDBase
	Title       string        `gorm:"size:255;not null" json:"title"`
	Subject     string        `gorm:"size:128;index" json:"subject"`
	Description string        `gorm:"type:text" json:"description"`
	Duration    int           `gorm:"not null;default:1" json:"duration"` // Minutes
	Difficulty  Difficulty    `gorm:"type:varchar(16);default:'medium'" json:"difficulty"`
	Grade       string        `gorm:"size:64;index" json:"grade"`
	Status      PublishStatus `gorm:"type:varchar(16);default:'draft';index" json:"status"`
	CreatorID   uint          `gorm:"index" json:"creatorId"`
}

func (InteractiveExam) TableName() string {
	return "interactive_exams"
}

func (e *InteractiveExam) IsPublished() bool {
	return e.Status == StatusPublished
}

func (e *InteractiveExam) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return invalid("title is required")
	}
	if strings.TrimSpace(e.Subject) == "" {
		return invalid("subject is required")
	}
	if e.Duration < 1 {
		return invalid("duration must be at least 1 minute")
	}
	if e.Difficulty == "" {
		e.Difficulty = DifficultyMedium
	}
	switch e.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return invalid("difficulty must be one of easy, medium, hard")
	}
	if e.Status == "" {
		e.Status = StatusDraft
	}
	if !e.Status.Valid() {
		return invalid("status must be draft or published")
	}
	return nil
}

func (e *InteractiveExam) BeforeSave(tx *gorm.DB) error {
	return e.Validate()
}

type QuestionOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

// swagger:model Question
type Question struct {
	UUIDBase
	InteractiveExamID string                              `gorm:"type:varchar(36);not null;uniqueIndex:idx_exam_question_number" json:"interactiveExamId"`
	QuestionNumber    int                                 `gorm:"not null;uniqueIndex:idx_exam_question_number" json:"questionNumber"`
	Text              string                              `gorm:"type:text;not null" json:"text"`
	Image             string                              `gorm:"size:500" json:"image,omitempty"`
	Options           datatypes.JSONSlice[QuestionOption] `gorm:"type:json" json:"options"`
	CorrectAnswer     string                              `gorm:"size:64;not null" json:"correctAnswer"`
	Explanation       string                              `gorm:"type:text" json:"explanation"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) Validate() error {
	if q.InteractiveExamID == "" {
		return invalid("question must belong to an interactive exam")
	}
	if q.QuestionNumber < 1 {
		return invalid("questionNumber must be at least 1")
	}
	if strings.TrimSpace(q.Text) == "" {
		return invalid("question %d: text is required", q.QuestionNumber)
	}
	if len(q.Options) < 2 {
		return invalid("question %d: at least 2 options are required", q.QuestionNumber)
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt.ID == "" {
			return invalid("question %d: option id is required", q.QuestionNumber)
		}
		if seen[opt.ID] {
			return invalid("question %d: duplicate option id %q", q.QuestionNumber, opt.ID)
		}
		seen[opt.ID] = true
	}
	if !seen[q.CorrectAnswer] {
		return invalid("question %d: correctAnswer must be one of the option ids", q.QuestionNumber)
	}
	return nil
}

func (q *Question) BeforeSave(tx *gorm.DB) error {
	return q.Validate()
}
