package repository

import (
	"context"
	"time"

	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

// FindActiveByUser returns subscriptions that are active and not expired at now.
func (r *SubscriptionRepository) FindActiveByUser(ctx context.Context, userID uint, now time.Time) ([]model.UserSubscription, error) {
	var subs []model.UserSubscription
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Where("end_date IS NULL OR end_date > ?", now).
		Order("has_full_access desc, created_at asc").
		Find(&subs).Error
	if err != nil {
		return nil, translate(err, "find active subscriptions")
	}
	return subs, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *model.UserSubscription) error {
	return translate(r.DB.WithContext(ctx).Create(s).Error, "create subscription")
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id uint) (*model.UserSubscription, error) {
	var s model.UserSubscription
	if err := r.DB.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err, "find subscription")
	}
	return &s, nil
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID uint) ([]model.UserSubscription, error) {
	var subs []model.UserSubscription
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&subs).Error; err != nil {
		return nil, translate(err, "list user subscriptions")
	}
	return subs, nil
}

func (r *SubscriptionRepository) List(ctx context.Context, page, limit int) ([]model.UserSubscription, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.UserSubscription{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count subscriptions")
	}

	var subs []model.UserSubscription
	err := r.DB.WithContext(ctx).Order("created_at desc").Offset(offset(page, limit)).Limit(limit).Find(&subs).Error
	if err != nil {
		return nil, 0, translate(err, "list subscriptions")
	}
	return subs, total, nil
}

// Deactivate clears the active key so the slot can be taken again.
func (r *SubscriptionRepository) Deactivate(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Model(&model.UserSubscription{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"is_active":  false,
			"active_key": nil,
			"end_date":   time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error, "deactivate subscription")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "deactivate subscription")
	}
	return nil
}
