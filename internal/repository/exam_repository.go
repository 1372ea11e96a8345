package repository

import (
	"context"

	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) FindByID(ctx context.Context, id uint) (*model.Exam, error) {
	var e model.Exam
	if err := r.DB.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err, "find exam")
	}
	return &e, nil
}

func (r *ExamRepository) List(ctx context.Context, f ContentFilter) ([]model.Exam, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Exam{})
	if f.TopicID != 0 {
		q = q.Where("topic_id = ?", f.TopicID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Subject != "" {
		q = q.Where("subject = ?", f.Subject)
	}
	if f.Search != "" {
		q = q.Where("title LIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count exams")
	}

	var exams []model.Exam
	err := q.Omit(contentListColumns...).
		Order("year desc, created_at desc").
		Offset(offset(f.Page, f.Limit)).Limit(f.Limit).
		Find(&exams).Error
	if err != nil {
		return nil, 0, translate(err, "list exams")
	}
	return exams, total, nil
}

func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	return translate(r.DB.WithContext(ctx).Create(e).Error, "create exam")
}

func (r *ExamRepository) Update(ctx context.Context, e *model.Exam) error {
	return translate(r.DB.WithContext(ctx).Save(e).Error, "update exam")
}

func (r *ExamRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&model.Exam{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete exam")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete exam")
	}
	return nil
}
