package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmissionDetail 评分时刻的题目快照，不随题目后续修改而变化
type SubmissionDetail struct {
	QuestionID     string           `json:"questionId"`
	QuestionNumber int              `json:"questionNumber"`
	Text           string           `json:"text"`
	Options        []QuestionOption `json:"options"`
	Explanation    string           `json:"explanation"`
	CorrectAnswer  string           `json:"correctAnswer"`
	UserAnswer     string           `json:"userAnswer"`
	IsCorrect      bool             `json:"isCorrect"`
}

// swagger:model UserSubmission
type UserSubmission struct {
	UUIDBase
	UserID            uint                                  `gorm:"index;not null" json:"userId"`
	InteractiveExamID string                                `gorm:"type:varchar(36);index;not null" json:"interactiveExamId"`
	Score             int                                   `gorm:"not null" json:"score"`
	TotalQuestions    int                                   `gorm:"not null" json:"totalQuestions"`
	UserAnswers       datatypes.JSONType[map[string]string] `gorm:"type:json" json:"userAnswers"`
	Details           datatypes.JSONSlice[SubmissionDetail] `gorm:"type:json" json:"details"`
}

func (UserSubmission) TableName() string {
	return "user_submissions"
}

func (s *UserSubmission) Validate() error {
	if s.UserID == 0 {
		return invalid("submission userId is required")
	}
	if s.InteractiveExamID == "" {
		return invalid("submission interactiveExamId is required")
	}
	if s.TotalQuestions < 0 || s.Score < 0 || s.Score > s.TotalQuestions {
		return invalid("score %d out of range 0..%d", s.Score, s.TotalQuestions)
	}
	if len(s.Details) != s.TotalQuestions {
		return invalid("details must cover every graded question")
	}
	return nil
}

func (s *UserSubmission) BeforeSave(tx *gorm.DB) error {
	return s.Validate()
}
