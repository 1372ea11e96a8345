package service

import (
	"context"
	"errors"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/logger"
	"studyhub_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type SubscriptionService struct {
	Subscriptions SubscriptionStore
	Essays        EssayStore
	Exams         ExamStore
	Now           func() time.Time
}

func NewSubscriptionService(subs SubscriptionStore, essays EssayStore, exams ExamStore) *SubscriptionService {
	return &SubscriptionService{Subscriptions: subs, Essays: essays, Exams: exams, Now: time.Now}
}

// SubscribeRequest 订阅时长，0 表示不限期
// swagger:model SubscribeRequest
type SubscribeRequest struct {
	DurationDays int `json:"durationDays" binding:"min=0,max=3650"`
}

// SubscribeContent subscribes requester to one essay or exam. The item must
// exist and, unless requester is an admin, be published.
func (s *SubscriptionService) SubscribeContent(ctx context.Context, requester *model.User, contentType model.ContentType, contentID uint, req SubscribeRequest) (*model.UserSubscription, error) {
	var status model.PublishStatus
	switch contentType {
	case model.ContentEssay:
		essay, err := s.Essays.FindByID(ctx, contentID)
		if err != nil {
			return nil, err
		}
		status = essay.Status
	case model.ContentExam:
		exam, err := s.Exams.FindByID(ctx, contentID)
		if err != nil {
			return nil, err
		}
		status = exam.Status
	default:
		return nil, util.Invalid("unsupported content type %q", contentType)
	}
	// 草稿对普通用户不可见，与阅读接口一致
	if status != model.StatusPublished && !requester.IsAdmin() {
		return nil, util.ErrNotFound
	}

	id := contentID
	sub := s.newSubscription(requester.ID, req)
	sub.ContentType = contentType
	sub.ContentID = &id
	return s.create(ctx, sub, string(contentType))
}

func (s *SubscriptionService) SubscribeFullAccess(ctx context.Context, userID uint, req SubscribeRequest) (*model.UserSubscription, error) {
	sub := s.newSubscription(userID, req)
	sub.HasFullAccess = true
	return s.create(ctx, sub, "full_access")
}

func (s *SubscriptionService) newSubscription(userID uint, req SubscribeRequest) *model.UserSubscription {
	now := s.Now()
	sub := &model.UserSubscription{
		UserID:    userID,
		IsActive:  true,
		StartDate: now,
	}
	if req.DurationDays > 0 {
		end := now.AddDate(0, 0, req.DurationDays)
		sub.EndDate = &end
	}
	return sub
}

func (s *SubscriptionService) create(ctx context.Context, sub *model.UserSubscription, kind string) (*model.UserSubscription, error) {
	if err := s.releaseExpired(ctx, sub); err != nil {
		return nil, err
	}

	if err := s.Subscriptions.Create(ctx, sub); err != nil {
		// 唯一索引冲突：已有同一内容的有效订阅
		if errors.Is(err, util.ErrStorageConflict) {
			return nil, util.ErrAlreadySubscribed
		}
		return nil, err
	}

	monitoring.SubscriptionCounter.WithLabelValues(kind).Inc()
	logger.Log.Info("订阅已创建",
		zap.Uint("subscriptionId", sub.ID),
		zap.Uint("userId", sub.UserID),
		zap.String("kind", kind))
	return sub, nil
}

// releaseExpired deactivates a lapsed subscription still holding the same
// active key so that renewing after expiry does not hit the unique index.
func (s *SubscriptionService) releaseExpired(ctx context.Context, sub *model.UserSubscription) error {
	now := s.Now()
	existing, err := s.Subscriptions.ListByUser(ctx, sub.UserID)
	if err != nil {
		return err
	}
	for i := range existing {
		e := &existing[i]
		if !e.IsActive || e.ActiveAt(now) {
			continue
		}
		sameItem := e.HasFullAccess == sub.HasFullAccess &&
			(sub.HasFullAccess || e.Covers(sub.ContentType, *sub.ContentID))
		if sameItem {
			if err := s.Subscriptions.Deactivate(ctx, e.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *SubscriptionService) ListMine(ctx context.Context, userID uint) ([]model.UserSubscription, error) {
	return s.Subscriptions.ListByUser(ctx, userID)
}

// Cancel 取消订阅，仅本人或管理员可操作
func (s *SubscriptionService) Cancel(ctx context.Context, id uint, requester *model.User) error {
	sub, err := s.Subscriptions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sub.UserID != requester.ID && !requester.IsAdmin() {
		return util.ErrForbidden
	}
	if !sub.IsActive {
		return nil
	}
	return s.Subscriptions.Deactivate(ctx, id)
}

func (s *SubscriptionService) List(ctx context.Context, page, limit int) ([]model.UserSubscription, int64, error) {
	return s.Subscriptions.List(ctx, page, limit)
}
