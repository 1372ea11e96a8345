package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository/memory"
	"studyhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func examRequest(status string) CreateInteractiveExamRequest {
	return CreateInteractiveExamRequest{
		Title:    "Fractions",
		Subject:  "math",
		Duration: 20,
		Grade:    "5",
		Status:   status,
		Questions: []QuestionInput{
			{QuestionNumber: 2, Text: "second", Options: abcd(), CorrectAnswer: "A", Explanation: "because"},
			{QuestionNumber: 1, Text: "first", Options: abcd(), CorrectAnswer: "D"},
		},
	}
}

func TestCreateAndGetForTaker(t *testing.T) {
	store := memory.New()
	svc := NewInteractiveExamService(store.InteractiveExams(), nil, time.Minute)
	ctx := context.Background()

	created, err := svc.Create(ctx, 9, examRequest("published"))
	require.NoError(t, err)
	assert.Equal(t, model.DifficultyMedium, created.Difficulty)
	assert.Equal(t, uint(9), created.CreatorID)
	require.Len(t, created.Questions, 2)

	detail, err := svc.GetForTaker(ctx, created.ID, nil)
	require.NoError(t, err)
	require.Len(t, detail.Questions, 2)
	assert.Equal(t, 1, detail.Questions[0].QuestionNumber)
	assert.Equal(t, "first", detail.Questions[0].Text)

	adminView, err := svc.GetForAdmin(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "D", adminView.Questions[0].CorrectAnswer)
	assert.Equal(t, "because", adminView.Questions[1].Explanation)
}

func TestCreateRejectsInvalidQuestions(t *testing.T) {
	store := memory.New()
	svc := NewInteractiveExamService(store.InteractiveExams(), nil, time.Minute)
	ctx := context.Background()

	dup := examRequest("draft")
	dup.Questions[0].QuestionNumber = 1
	_, err := svc.Create(ctx, 1, dup)
	assert.ErrorIs(t, err, util.ErrValidation)

	badAnswer := examRequest("draft")
	badAnswer.Questions[0].CorrectAnswer = "Z"
	_, err = svc.Create(ctx, 1, badAnswer)
	assert.ErrorIs(t, err, util.ErrValidation)

	items, err := svc.ListAll(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDraftHiddenFromTakers(t *testing.T) {
	store := memory.New()
	svc := NewInteractiveExamService(store.InteractiveExams(), nil, time.Minute)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, examRequest("draft"))
	require.NoError(t, err)

	_, err = svc.GetForTaker(ctx, created.ID, student(2))
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = svc.GetForTaker(ctx, created.ID, admin(3))
	assert.NoError(t, err)
}

func TestListPublishedCacheInvalidation(t *testing.T) {
	store := memory.New()
	cache := memory.NewCache()
	svc := NewInteractiveExamService(store.InteractiveExams(), cache, time.Minute)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, examRequest("published"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, examRequest("draft"))
	require.NoError(t, err)

	items, err := svc.ListPublished(ctx, ExamListQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].QuestionCount)
	assert.Equal(t, 1, cache.Len())

	_, err = svc.Create(ctx, 1, examRequest("published"))
	require.NoError(t, err)
	assert.Equal(t, 0, cache.Len())

	items, err = svc.ListPublished(ctx, ExamListQuery{Subject: "math"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.ListPublished(ctx, ExamListQuery{Subject: "history"})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListPublishedRejectsUnknownFilters(t *testing.T) {
	store := memory.New()
	cache := memory.NewCache()
	svc := NewInteractiveExamService(store.InteractiveExams(), cache, time.Minute)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, examRequest("published"))
	require.NoError(t, err)

	for _, q := range []ExamListQuery{
		{Difficulty: "impossible"},
		{Difficulty: "Easy"},
		{Subject: strings.Repeat("x", 129)},
		{Grade: strings.Repeat("9", 65)},
	} {
		_, err := svc.ListPublished(ctx, q)
		assert.ErrorIs(t, err, util.ErrValidation, "%+v", q)
	}
	assert.Equal(t, 0, cache.Len())

	items, err := svc.ListPublished(ctx, ExamListQuery{Difficulty: "medium"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, cache.Len())
}

func TestPublicViewsHideCreator(t *testing.T) {
	store := memory.New()
	svc := NewInteractiveExamService(store.InteractiveExams(), nil, time.Minute)
	ctx := context.Background()

	created, err := svc.Create(ctx, 42, examRequest("published"))
	require.NoError(t, err)

	detail, err := svc.GetForTaker(ctx, created.ID, nil)
	require.NoError(t, err)
	items, err := svc.ListPublished(ctx, ExamListQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	for _, v := range []interface{}{detail, items} {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "creatorId")
		assert.NotContains(t, string(raw), "correctAnswer")
		assert.Contains(t, string(raw), created.ID)
	}

	adminItems, err := svc.ListAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, adminItems, 1)
	assert.Equal(t, uint(42), adminItems[0].CreatorID)
}

func TestQuestionManagement(t *testing.T) {
	store := memory.New()
	svc := NewInteractiveExamService(store.InteractiveExams(), nil, time.Minute)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, examRequest("published"))
	require.NoError(t, err)

	q, err := svc.AddQuestion(ctx, created.ID, QuestionInput{QuestionNumber: 3, Text: "third", Options: abcd(), CorrectAnswer: "B"})
	require.NoError(t, err)

	_, err = svc.AddQuestion(ctx, created.ID, QuestionInput{QuestionNumber: 3, Text: "again", Options: abcd(), CorrectAnswer: "B"})
	require.ErrorIs(t, err, util.ErrValidation)
	assert.Contains(t, err.Error(), "questionNumber 3 already exists")

	_, err = svc.AddQuestion(ctx, "missing", QuestionInput{QuestionNumber: 1, Text: "x", Options: abcd(), CorrectAnswer: "A"})
	assert.ErrorIs(t, err, util.ErrNotFound)

	updated, err := svc.UpdateQuestion(ctx, created.ID, q.ID, QuestionInput{QuestionNumber: 4, Text: "fourth", Options: abcd(), CorrectAnswer: "C"})
	require.NoError(t, err)
	assert.Equal(t, q.ID, updated.ID)

	_, err = svc.UpdateQuestion(ctx, created.ID, q.ID, QuestionInput{QuestionNumber: 1, Text: "clash", Options: abcd(), CorrectAnswer: "C"})
	assert.ErrorIs(t, err, util.ErrValidation)

	other, err := svc.Create(ctx, 1, examRequest("published"))
	require.NoError(t, err)
	assert.ErrorIs(t, svc.DeleteQuestion(ctx, other.ID, q.ID), util.ErrNotFound)

	require.NoError(t, svc.DeleteQuestion(ctx, created.ID, q.ID))
	detail, err := svc.GetForAdmin(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Questions, 2)
}

func TestUpdateAndDeleteCascade(t *testing.T) {
	store := memory.New()
	svc := NewInteractiveExamService(store.InteractiveExams(), nil, time.Minute)
	grading := NewGradingService(store.InteractiveExams(), store.Submissions())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, examRequest("draft"))
	require.NoError(t, err)

	published := "published"
	title := "Fractions II"
	exam, err := svc.Update(ctx, created.ID, UpdateInteractiveExamRequest{Status: &published, Title: &title})
	require.NoError(t, err)
	assert.True(t, exam.IsPublished())
	assert.Equal(t, "Fractions II", exam.Title)

	zero := 0
	_, err = svc.Update(ctx, created.ID, UpdateInteractiveExamRequest{Duration: &zero})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = grading.Submit(ctx, student(2), SubmitRequest{InteractiveExamID: created.ID, UserAnswers: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, 1, store.SubmissionCount())

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, 0, store.SubmissionCount())
	_, err = svc.GetForAdmin(ctx, created.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), util.ErrNotFound)
}
