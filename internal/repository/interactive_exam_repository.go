package repository

import (
	"context"

	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type InteractiveExamRepository struct {
	DB *gorm.DB
}

func NewInteractiveExamRepository(db *gorm.DB) *InteractiveExamRepository {
	return &InteractiveExamRepository{DB: db}
}

func (r *InteractiveExamRepository) FindExamByID(ctx context.Context, id string) (*model.InteractiveExam, error) {
	var exam model.InteractiveExam
	if err := r.DB.WithContext(ctx).First(&exam, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find interactive exam")
	}
	return &exam, nil
}

func (r *InteractiveExamRepository) ListExams(ctx context.Context, f InteractiveExamFilter) ([]model.InteractiveExam, error) {
	q := r.DB.WithContext(ctx).Model(&model.InteractiveExam{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Subject != "" {
		q = q.Where("subject = ?", f.Subject)
	}
	if f.Grade != "" {
		q = q.Where("grade = ?", f.Grade)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}

	var exams []model.InteractiveExam
	if err := q.Order("created_at desc").Find(&exams).Error; err != nil {
		return nil, translate(err, "list interactive exams")
	}
	return exams, nil
}

// CreateExamWithQuestions inserts the exam and its question batch atomically.
func (r *InteractiveExamRepository) CreateExamWithQuestions(ctx context.Context, exam *model.InteractiveExam, questions []model.Question) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(exam).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		for i := range questions {
			questions[i].InteractiveExamID = exam.ID
		}
		return tx.Create(&questions).Error
	})
	return translate(err, "create interactive exam")
}

func (r *InteractiveExamRepository) UpdateExam(ctx context.Context, exam *model.InteractiveExam) error {
	return translate(r.DB.WithContext(ctx).Save(exam).Error, "update interactive exam")
}

// DeleteExamCascade removes questions, submissions and the exam in one transaction.
func (r *InteractiveExamRepository) DeleteExamCascade(ctx context.Context, id string) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.InteractiveExam{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("interactive_exam_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Where("interactive_exam_id = ?", id).Delete(&model.UserSubmission{}).Error
	})
	return translate(err, "delete interactive exam")
}

// FindQuestionsByExam returns questions ordered by number. The answer key and
// explanation columns are only selected when withAnswers is set.
func (r *InteractiveExamRepository) FindQuestionsByExam(ctx context.Context, examID string, withAnswers bool) ([]model.Question, error) {
	q := r.DB.WithContext(ctx).Where("interactive_exam_id = ?", examID)
	if !withAnswers {
		q = q.Omit("correct_answer", "explanation")
	}

	var qs []model.Question
	if err := q.Order("question_number asc").Find(&qs).Error; err != nil {
		return nil, translate(err, "find questions")
	}
	return qs, nil
}

func (r *InteractiveExamRepository) CountQuestions(ctx context.Context, examIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(examIDs))
	if len(examIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		InteractiveExamID string
		Total             int
	}
	err := r.DB.WithContext(ctx).Model(&model.Question{}).
		Select("interactive_exam_id, COUNT(*) as total").
		Where("interactive_exam_id IN ?", examIDs).
		Group("interactive_exam_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "count questions")
	}
	for _, row := range rows {
		counts[row.InteractiveExamID] = row.Total
	}
	return counts, nil
}

func (r *InteractiveExamRepository) FindQuestionByID(ctx context.Context, id string) (*model.Question, error) {
	var q model.Question
	if err := r.DB.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find question")
	}
	return &q, nil
}

func (r *InteractiveExamRepository) CreateQuestion(ctx context.Context, q *model.Question) error {
	return translate(r.DB.WithContext(ctx).Create(q).Error, "create question")
}

func (r *InteractiveExamRepository) UpdateQuestion(ctx context.Context, q *model.Question) error {
	return translate(r.DB.WithContext(ctx).Save(q).Error, "update question")
}

func (r *InteractiveExamRepository) DeleteQuestion(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&model.Question{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete question")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete question")
	}
	return nil
}
