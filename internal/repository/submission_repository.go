package repository

import (
	"context"

	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) CreateSubmission(ctx context.Context, s *model.UserSubmission) error {
	return translate(r.DB.WithContext(ctx).Create(s).Error, "create submission")
}

func (r *SubmissionRepository) FindSubmissionByID(ctx context.Context, id string) (*model.UserSubmission, error) {
	var s model.UserSubmission
	if err := r.DB.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find submission")
	}
	return &s, nil
}

// ListSubmissionsByUser omits the snapshot columns.
func (r *SubmissionRepository) ListSubmissionsByUser(ctx context.Context, userID uint) ([]model.UserSubmission, error) {
	var ss []model.UserSubmission
	err := r.DB.WithContext(ctx).
		Omit("details", "user_answers").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&ss).Error
	if err != nil {
		return nil, translate(err, "list user submissions")
	}
	return ss, nil
}

func (r *SubmissionRepository) ListSubmissionsByExam(ctx context.Context, examID string, page, limit int) ([]model.UserSubmission, int64, error) {
	var total int64
	q := r.DB.WithContext(ctx).Model(&model.UserSubmission{}).Where("interactive_exam_id = ?", examID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count exam submissions")
	}

	var ss []model.UserSubmission
	err := q.Omit("details", "user_answers").
		Order("created_at desc").
		Offset(offset(page, limit)).Limit(limit).
		Find(&ss).Error
	if err != nil {
		return nil, 0, translate(err, "list exam submissions")
	}
	return ss, total, nil
}
