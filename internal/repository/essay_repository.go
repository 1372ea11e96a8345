package repository

import (
	"context"

	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

// 列表查询不返回正文
var contentListColumns = []string{"html_content"}

type EssayRepository struct {
	DB *gorm.DB
}

func NewEssayRepository(db *gorm.DB) *EssayRepository {
	return &EssayRepository{DB: db}
}

func (r *EssayRepository) FindByID(ctx context.Context, id uint) (*model.Essay, error) {
	var e model.Essay
	if err := r.DB.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err, "find essay")
	}
	return &e, nil
}

func (r *EssayRepository) List(ctx context.Context, f ContentFilter) ([]model.Essay, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Essay{})
	if f.TopicID != 0 {
		q = q.Where("topic_id = ?", f.TopicID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("title LIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count essays")
	}

	var essays []model.Essay
	err := q.Omit(contentListColumns...).
		Order("created_at desc").
		Offset(offset(f.Page, f.Limit)).Limit(f.Limit).
		Find(&essays).Error
	if err != nil {
		return nil, 0, translate(err, "list essays")
	}
	return essays, total, nil
}

func (r *EssayRepository) Create(ctx context.Context, e *model.Essay) error {
	return translate(r.DB.WithContext(ctx).Create(e).Error, "create essay")
}

func (r *EssayRepository) Update(ctx context.Context, e *model.Essay) error {
	return translate(r.DB.WithContext(ctx).Save(e).Error, "update essay")
}

func (r *EssayRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&model.Essay{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete essay")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete essay")
	}
	return nil
}
