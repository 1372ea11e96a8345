package service

import (
	"context"
	"testing"
	"time"

	"studyhub_backend/internal/config"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var policyNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func addSubscription(t *testing.T, store *memory.Store, sub model.UserSubscription) {
	t.Helper()
	if sub.StartDate.IsZero() {
		sub.StartDate = policyNow.AddDate(0, -1, 0)
	}
	require.NoError(t, store.Subscriptions().Create(context.Background(), &sub))
}

func itemSub(userID uint, ct model.ContentType, id uint) model.UserSubscription {
	cid := id
	return model.UserSubscription{UserID: userID, ContentType: ct, ContentID: &cid, IsActive: true}
}

func TestAccessPolicyEvaluate(t *testing.T) {
	past := policyNow.Add(-time.Hour)
	future := policyNow.Add(time.Hour)
	essay7 := ContentRef{Type: model.ContentEssay, ID: 7}

	cases := []struct {
		name   string
		user   *model.User
		subs   []model.UserSubscription
		item   ContentRef
		can    bool
		status SubscriptionStatus
	}{
		{name: "anonymous", user: nil, item: essay7, can: false, status: StatusAnonymous},
		{name: "no subscriptions", user: student(1), item: essay7, can: false, status: StatusNone},
		{
			name: "full access",
			user: student(1),
			subs: []model.UserSubscription{{UserID: 1, HasFullAccess: true, IsActive: true}},
			item: essay7, can: true, status: StatusFullAccess,
		},
		{
			name: "item subscription",
			user: student(1),
			subs: []model.UserSubscription{itemSub(1, model.ContentEssay, 7)},
			item: essay7, can: true, status: StatusSubscribed,
		},
		{
			name: "full access wins over item",
			user: student(1),
			subs: []model.UserSubscription{itemSub(1, model.ContentEssay, 7), {UserID: 1, HasFullAccess: true, IsActive: true}},
			item: essay7, can: true, status: StatusFullAccess,
		},
		{
			name: "other item",
			user: student(1),
			subs: []model.UserSubscription{itemSub(1, model.ContentEssay, 8)},
			item: essay7, can: false, status: StatusNone,
		},
		{
			name: "same id other type",
			user: student(1),
			subs: []model.UserSubscription{itemSub(1, model.ContentExam, 7)},
			item: essay7, can: false, status: StatusNone,
		},
		{
			name: "other user",
			user: student(1),
			subs: []model.UserSubscription{{UserID: 2, HasFullAccess: true, IsActive: true}},
			item: essay7, can: false, status: StatusNone,
		},
		{
			name: "inactive full access",
			user: student(1),
			subs: []model.UserSubscription{{UserID: 1, HasFullAccess: true, IsActive: false}},
			item: essay7, can: false, status: StatusNone,
		},
		{
			name: "expired full access",
			user: student(1),
			subs: []model.UserSubscription{{UserID: 1, HasFullAccess: true, IsActive: true, EndDate: &past}},
			item: essay7, can: false, status: StatusNone,
		},
		{
			name: "future end date",
			user: student(1),
			subs: []model.UserSubscription{{UserID: 1, HasFullAccess: true, IsActive: true, EndDate: &future}},
			item: essay7, can: true, status: StatusFullAccess,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.New()
			for _, s := range tc.subs {
				addSubscription(t, store, s)
			}
			policy := NewAccessPolicy(store.Subscriptions(), config.AccessConfig{PreviewChars: 20})
			policy.Now = func() time.Time { return policyNow }

			d, err := policy.Evaluate(context.Background(), tc.user, tc.item)
			require.NoError(t, err)
			assert.Equal(t, tc.can, d.CanViewFull)
			assert.Equal(t, tc.status, d.Status)

			can, err := policy.CanViewFull(context.Background(), tc.user, tc.item)
			require.NoError(t, err)
			assert.Equal(t, tc.can, can)
		})
	}
}

func TestPreview(t *testing.T) {
	policy := NewAccessPolicy(nil, config.AccessConfig{PreviewChars: 11})

	assert.Equal(t, "stored", policy.Preview("stored", "<p>body</p>"))
	assert.Equal(t, "Hello world…", policy.Preview("", "<p>Hello <b>world</b>, and more</p>"))
}

func TestHTMLExcerpt(t *testing.T) {
	assert.Equal(t, "Hello world", HTMLExcerpt("<p>Hello <b>world</b></p>", 100))
	assert.Equal(t, "Title Body", HTMLExcerpt("<h1>Title</h1><script>alert(1)</script><style>p{}</style><p>Body</p>", 100))
	assert.Equal(t, "数学试…", HTMLExcerpt("<p>数学试卷</p>", 3))
	assert.Equal(t, "", HTMLExcerpt("<p>anything</p>", 0))
	assert.Equal(t, "a b", HTMLExcerpt("a\n\n   b", 10))
}
