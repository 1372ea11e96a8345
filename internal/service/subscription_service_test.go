package service

import (
	"context"
	"testing"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository/memory"
	"studyhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeContent(t *testing.T) {
	store := memory.New()
	svc := NewSubscriptionService(store.Subscriptions(), store.Essays(), store.StaticExams())
	ctx := context.Background()

	essay := &model.Essay{Title: "e", Status: model.StatusPublished}
	require.NoError(t, store.Essays().Create(ctx, essay))

	sub, err := svc.SubscribeContent(ctx, student(1), model.ContentEssay, essay.ID, SubscribeRequest{DurationDays: 7})
	require.NoError(t, err)
	assert.True(t, sub.IsActive)
	require.NotNil(t, sub.EndDate)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), *sub.EndDate, time.Minute)

	_, err = svc.SubscribeContent(ctx, student(1), model.ContentEssay, essay.ID, SubscribeRequest{})
	assert.ErrorIs(t, err, util.ErrAlreadySubscribed)

	// 其他用户不受影响
	_, err = svc.SubscribeContent(ctx, student(2), model.ContentEssay, essay.ID, SubscribeRequest{})
	require.NoError(t, err)

	_, err = svc.SubscribeContent(ctx, student(1), model.ContentExam, 404, SubscribeRequest{})
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = svc.SubscribeContent(ctx, student(1), model.ContentType("video"), essay.ID, SubscribeRequest{})
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestSubscribeDraftContent(t *testing.T) {
	store := memory.New()
	svc := NewSubscriptionService(store.Subscriptions(), store.Essays(), store.StaticExams())
	ctx := context.Background()

	essay := &model.Essay{Title: "draft essay", Status: model.StatusDraft}
	require.NoError(t, store.Essays().Create(ctx, essay))
	exam := &model.Exam{Title: "draft exam", Subject: "math", Status: model.StatusDraft}
	require.NoError(t, store.StaticExams().Create(ctx, exam))

	// 普通用户看不到草稿，也不能订阅
	_, err := svc.SubscribeContent(ctx, student(1), model.ContentEssay, essay.ID, SubscribeRequest{})
	assert.ErrorIs(t, err, util.ErrNotFound)
	_, err = svc.SubscribeContent(ctx, student(1), model.ContentExam, exam.ID, SubscribeRequest{})
	assert.ErrorIs(t, err, util.ErrNotFound)

	mine, err := svc.ListMine(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, mine)

	sub, err := svc.SubscribeContent(ctx, admin(9), model.ContentEssay, essay.ID, SubscribeRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint(9), sub.UserID)
}

func TestSubscribeFullAccessOnce(t *testing.T) {
	store := memory.New()
	svc := NewSubscriptionService(store.Subscriptions(), store.Essays(), store.StaticExams())
	ctx := context.Background()

	sub, err := svc.SubscribeFullAccess(ctx, 1, SubscribeRequest{})
	require.NoError(t, err)
	assert.Nil(t, sub.EndDate)

	_, err = svc.SubscribeFullAccess(ctx, 1, SubscribeRequest{})
	assert.ErrorIs(t, err, util.ErrAlreadySubscribed)

	require.NoError(t, svc.Cancel(ctx, sub.ID, student(1)))
	_, err = svc.SubscribeFullAccess(ctx, 1, SubscribeRequest{})
	assert.NoError(t, err)
}

func TestRenewAfterExpiry(t *testing.T) {
	store := memory.New()
	svc := NewSubscriptionService(store.Subscriptions(), store.Essays(), store.StaticExams())
	ctx := context.Background()

	start := time.Now().AddDate(0, 0, -10)
	svc.Now = func() time.Time { return start }
	old, err := svc.SubscribeFullAccess(ctx, 1, SubscribeRequest{DurationDays: 1})
	require.NoError(t, err)

	svc.Now = time.Now
	renewed, err := svc.SubscribeFullAccess(ctx, 1, SubscribeRequest{})
	require.NoError(t, err)
	assert.NotEqual(t, old.ID, renewed.ID)

	stale, err := store.Subscriptions().FindByID(ctx, old.ID)
	require.NoError(t, err)
	assert.False(t, stale.IsActive)
	assert.Nil(t, stale.ActiveKey)
}

func TestCancelGuard(t *testing.T) {
	store := memory.New()
	svc := NewSubscriptionService(store.Subscriptions(), store.Essays(), store.StaticExams())
	ctx := context.Background()

	sub, err := svc.SubscribeFullAccess(ctx, 1, SubscribeRequest{})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Cancel(ctx, sub.ID, student(2)), util.ErrForbidden)
	require.NoError(t, svc.Cancel(ctx, sub.ID, admin(3)))
	// 已取消的订阅再次取消不报错
	require.NoError(t, svc.Cancel(ctx, sub.ID, student(1)))
	assert.ErrorIs(t, svc.Cancel(ctx, 999, student(1)), util.ErrNotFound)

	mine, err := svc.ListMine(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.False(t, mine[0].IsActive)
}
