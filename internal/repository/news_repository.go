package repository

import (
	"context"

	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type NewsRepository struct {
	DB *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{DB: db}
}

func (r *NewsRepository) List(ctx context.Context, publishedOnly bool, page, limit int) ([]model.News, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.News{})
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count news")
	}

	var items []model.News
	err := q.Omit("content").
		Order("published_at desc, created_at desc").
		Offset(offset(page, limit)).Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, translate(err, "list news")
	}
	return items, total, nil
}

func (r *NewsRepository) FindByID(ctx context.Context, id uint) (*model.News, error) {
	var n model.News
	if err := r.DB.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, translate(err, "find news")
	}
	return &n, nil
}

func (r *NewsRepository) Create(ctx context.Context, n *model.News) error {
	return translate(r.DB.WithContext(ctx).Create(n).Error, "create news")
}

func (r *NewsRepository) Update(ctx context.Context, n *model.News) error {
	return translate(r.DB.WithContext(ctx).Save(n).Error, "update news")
}

func (r *NewsRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&model.News{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete news")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete news")
	}
	return nil
}

type NoticeRepository struct {
	DB *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) *NoticeRepository {
	return &NoticeRepository{DB: db}
}

func (r *NoticeRepository) List(ctx context.Context, activeOnly bool) ([]model.Notice, error) {
	q := r.DB.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var ns []model.Notice
	if err := q.Order("priority desc, created_at desc").Find(&ns).Error; err != nil {
		return nil, translate(err, "list notices")
	}
	return ns, nil
}

func (r *NoticeRepository) FindByID(ctx context.Context, id uint) (*model.Notice, error) {
	var n model.Notice
	if err := r.DB.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, translate(err, "find notice")
	}
	return &n, nil
}

func (r *NoticeRepository) Create(ctx context.Context, n *model.Notice) error {
	return translate(r.DB.WithContext(ctx).Create(n).Error, "create notice")
}

func (r *NoticeRepository) Update(ctx context.Context, n *model.Notice) error {
	return translate(r.DB.WithContext(ctx).Save(n).Error, "update notice")
}

func (r *NoticeRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&model.Notice{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete notice")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete notice")
	}
	return nil
}
