package repository

import (
	"context"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var cs []model.Category
	if err := r.DB.WithContext(ctx).Order("name asc").Find(&cs).Error; err != nil {
		return nil, translate(err, "list categories")
	}
	return cs, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var c model.Category
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "find category")
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *model.Category) error {
	return translate(r.DB.WithContext(ctx).Create(c).Error, "create category")
}

func (r *CategoryRepository) Update(ctx context.Context, c *model.Category) error {
	return translate(r.DB.WithContext(ctx).Save(c).Error, "update category")
}

// Delete refuses to remove a category that still has topics.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Topic{}).Where("category_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return util.Invalid("category still has %d topics", n)
		}
		res := tx.Delete(&model.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "delete category")
}

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) List(ctx context.Context, categoryID uint) ([]model.Topic, error) {
	q := r.DB.WithContext(ctx)
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var ts []model.Topic
	if err := q.Order("title asc").Find(&ts).Error; err != nil {
		return nil, translate(err, "list topics")
	}
	return ts, nil
}

func (r *TopicRepository) FindByID(ctx context.Context, id uint) (*model.Topic, error) {
	var t model.Topic
	if err := r.DB.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, translate(err, "find topic")
	}
	return &t, nil
}

func (r *TopicRepository) Create(ctx context.Context, t *model.Topic) error {
	return translate(r.DB.WithContext(ctx).Create(t).Error, "create topic")
}

func (r *TopicRepository) Update(ctx context.Context, t *model.Topic) error {
	return translate(r.DB.WithContext(ctx).Save(t).Error, "update topic")
}

func (r *TopicRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&model.Topic{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete topic")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete topic")
	}
	return nil
}
