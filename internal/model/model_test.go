package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func options(ids ...string) []QuestionOption {
	out := make([]QuestionOption, 0, len(ids))
	for _, id := range ids {
		out = append(out, QuestionOption{ID: id, Text: "option " + id})
	}
	return out
}

func TestQuestionValidate(t *testing.T) {
	base := func() Question {
		return Question{InteractiveExamID: "e1", QuestionNumber: 1, Text: "?", Options: options("A", "B"), CorrectAnswer: "A"}
	}

	ok := base()
	require.NoError(t, ok.Validate())

	cases := map[string]func(q *Question){
		"no exam":            func(q *Question) { q.InteractiveExamID = "" },
		"number zero":        func(q *Question) { q.QuestionNumber = 0 },
		"blank text":         func(q *Question) { q.Text = "  " },
		"one option":         func(q *Question) { q.Options = options("A") },
		"duplicate option":   func(q *Question) { q.Options = options("A", "A") },
		"empty option id":    func(q *Question) { q.Options = options("A", "") },
		"answer not offered": func(q *Question) { q.CorrectAnswer = "C" },
		"answer wrong case":  func(q *Question) { q.CorrectAnswer = "a" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			q := base()
			mutate(&q)
			assert.ErrorIs(t, q.Validate(), ErrValidation)
		})
	}
}

func TestInteractiveExamDefaults(t *testing.T) {
	e := InteractiveExam{Title: "t", Subject: "s", Duration: 5}
	require.NoError(t, e.Validate())
	assert.Equal(t, DifficultyMedium, e.Difficulty)
	assert.Equal(t, StatusDraft, e.Status)
	assert.False(t, e.IsPublished())

	e.Difficulty = "impossible"
	assert.ErrorIs(t, e.Validate(), ErrValidation)
}

func TestUserSubmissionValidate(t *testing.T) {
	s := UserSubmission{UserID: 1, InteractiveExamID: "e1", Score: 1, TotalQuestions: 2, Details: make([]SubmissionDetail, 2)}
	require.NoError(t, s.Validate())

	s.Score = 3
	assert.ErrorIs(t, s.Validate(), ErrValidation)

	s.Score = -1
	assert.ErrorIs(t, s.Validate(), ErrValidation)

	s.Score = 0
	s.Details = s.Details[:1]
	assert.ErrorIs(t, s.Validate(), ErrValidation)
}

func TestUserSubscriptionValidate(t *testing.T) {
	id := uint(3)
	now := time.Now()
	past := now.Add(-time.Hour)

	full := UserSubscription{UserID: 1, HasFullAccess: true, IsActive: true, StartDate: now}
	require.NoError(t, full.BeforeSave(nil))
	require.NotNil(t, full.ActiveKey)
	assert.Equal(t, "u:1:full", *full.ActiveKey)

	item := UserSubscription{UserID: 1, ContentType: ContentExam, ContentID: &id, IsActive: true, StartDate: now}
	require.NoError(t, item.BeforeSave(nil))
	assert.Equal(t, "u:1:exam:3", *item.ActiveKey)

	item.IsActive = false
	require.NoError(t, item.BeforeSave(nil))
	assert.Nil(t, item.ActiveKey)

	both := UserSubscription{UserID: 1, HasFullAccess: true, ContentType: ContentEssay, ContentID: &id, StartDate: now}
	assert.ErrorIs(t, both.Validate(), ErrValidation)

	neither := UserSubscription{UserID: 1, StartDate: now}
	assert.ErrorIs(t, neither.Validate(), ErrValidation)

	backwards := UserSubscription{UserID: 1, HasFullAccess: true, StartDate: now, EndDate: &past}
	assert.ErrorIs(t, backwards.Validate(), ErrValidation)
}

func TestUserSubscriptionActiveAt(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Hour)
	id := uint(7)

	s := UserSubscription{IsActive: true, ContentType: ContentEssay, ContentID: &id}
	assert.True(t, s.ActiveAt(now))
	assert.True(t, s.Covers(ContentEssay, 7))
	assert.False(t, s.Covers(ContentExam, 7))

	s.EndDate = &later
	assert.True(t, s.ActiveAt(now))
	assert.False(t, s.ActiveAt(later))
	assert.False(t, s.ActiveAt(later.Add(time.Second)))

	s.IsActive = false
	assert.False(t, s.ActiveAt(now))
}

func TestIsAdminNilSafe(t *testing.T) {
	var u *User
	assert.False(t, u.IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
}
