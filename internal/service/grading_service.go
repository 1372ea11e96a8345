package service

import (
	"context"
	"errors"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/logger"
	"studyhub_backend/pkg/monitoring"
	"studyhub_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type GradingService struct {
	Exams       InteractiveExamStore
	Submissions SubmissionStore
}

func NewGradingService(exams InteractiveExamStore, submissions SubmissionStore) *GradingService {
	return &GradingService{Exams: exams, Submissions: submissions}
}

// SubmitRequest defines model for exam submission
// swagger:model SubmitRequest
type SubmitRequest struct {
	InteractiveExamID string `json:"interactiveExamId" binding:"required"`
	// UserAnswers 题目ID -> 选项ID，允许为空对象
	UserAnswers map[string]string `json:"userAnswers" binding:"required"`
}

type SubmitResult struct {
	SubmissionID   string `json:"submissionId"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
}

// SubmissionSummary is the list view of a submission without its snapshot.
type SubmissionSummary struct {
	ID                string `json:"id"`
	InteractiveExamID string `json:"interactiveExamId"`
	Score             int    `json:"score"`
	TotalQuestions    int    `json:"totalQuestions"`
	CreatedAt         string `json:"createdAt"`
}

// Grade scores answers against questions. Answers are compared as exact
// strings and a missing answer never matches.
func Grade(questions []model.Question, answers map[string]string) (int, []model.SubmissionDetail) {
	score := 0
	details := make([]model.SubmissionDetail, 0, len(questions))
	for _, q := range questions {
		answer, answered := answers[q.ID]
		correct := answered && answer == q.CorrectAnswer
		if correct {
			score++
		}

		options := make([]model.QuestionOption, len(q.Options))
		copy(options, q.Options)

		details = append(details, model.SubmissionDetail{
			QuestionID:     q.ID,
			QuestionNumber: q.QuestionNumber,
			Text:           q.Text,
			Options:        options,
			Explanation:    q.Explanation,
			CorrectAnswer:  q.CorrectAnswer,
			UserAnswer:     answer,
			IsCorrect:      correct,
		})
	}
	return score, details
}

// Submit grades one attempt by user and persists it as a new submission.
func (s *GradingService) Submit(ctx context.Context, user *model.User, req SubmitRequest) (*SubmitResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "GradingService.Submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("exam.id", req.InteractiveExamID),
		attribute.Int("user.id", int(user.ID)),
	)

	exam, err := s.Exams.FindExamByID(ctx, req.InteractiveExamID)
	if err != nil {
		return nil, s.fail(span, "error", err)
	}
	if !exam.IsPublished() && !user.IsAdmin() {
		return nil, s.fail(span, "error", util.ErrNotFound)
	}

	questions, err := s.Exams.FindQuestionsByExam(ctx, exam.ID, true)
	if err != nil {
		return nil, s.fail(span, "error", err)
	}
	if len(questions) == 0 {
		return nil, s.fail(span, "empty_exam", util.ErrEmptyExam)
	}

	answers := req.UserAnswers
	if answers == nil {
		answers = map[string]string{}
	}
	score, details := Grade(questions, answers)

	submission := &model.UserSubmission{
		UserID:            user.ID,
		InteractiveExamID: exam.ID,
		Score:             score,
		TotalQuestions:    len(questions),
		UserAnswers:       datatypes.NewJSONType(answers),
		Details:           datatypes.JSONSlice[model.SubmissionDetail](details),
	}
	submission.ID = model.GenerateUUID()

	if err := s.Submissions.CreateSubmission(ctx, submission); err != nil {
		switch {
		case errors.Is(err, util.ErrStorageConflict):
			return nil, s.fail(span, "conflict", err)
		case errors.Is(err, util.ErrValidation):
			return nil, s.fail(span, "error", err)
		default:
			logger.Log.Error("保存答题记录失败",
				zap.String("examId", exam.ID),
				zap.Uint("userId", user.ID),
				zap.Error(err))
			return nil, s.fail(span, "error", err)
		}
	}

	monitoring.GradingCounter.WithLabelValues("graded").Inc()
	monitoring.GradingScoreRatio.Observe(float64(score) / float64(len(questions)))
	span.SetAttributes(attribute.Int("score", score), attribute.Int("total", len(questions)))

	logger.Log.Info("交互式考试已评分",
		zap.String("submissionId", submission.ID),
		zap.String("examId", exam.ID),
		zap.Uint("userId", user.ID),
		zap.Int("score", score),
		zap.Int("total", len(questions)))

	return &SubmitResult{
		SubmissionID:   submission.ID,
		Score:          score,
		TotalQuestions: len(questions),
	}, nil
}

func (s *GradingService) fail(span trace.Span, result string, err error) error {
	monitoring.GradingCounter.WithLabelValues(result).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// GetSubmission returns the stored snapshot to its owner or an admin.
func (s *GradingService) GetSubmission(ctx context.Context, id string, requester *model.User) (*model.UserSubmission, error) {
	if requester == nil {
		return nil, util.ErrUnauthenticated
	}

	submission, err := s.Submissions.FindSubmissionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission.UserID != requester.ID && !requester.IsAdmin() {
		return nil, util.ErrForbidden
	}
	return submission, nil
}

func (s *GradingService) ListMySubmissions(ctx context.Context, userID uint) ([]SubmissionSummary, error) {
	subs, err := s.Submissions.ListSubmissionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(subs), nil
}

func (s *GradingService) ListExamSubmissions(ctx context.Context, examID string, page, limit int) ([]SubmissionSummary, int64, error) {
	if _, err := s.Exams.FindExamByID(ctx, examID); err != nil {
		return nil, 0, err
	}
	subs, total, err := s.Submissions.ListSubmissionsByExam(ctx, examID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return summarize(subs), total, nil
}

func summarize(subs []model.UserSubmission) []SubmissionSummary {
	out := make([]SubmissionSummary, 0, len(subs))
	for _, sub := range subs {
		out = append(out, SubmissionSummary{
			ID:                sub.ID,
			InteractiveExamID: sub.InteractiveExamID,
			Score:             sub.Score,
			TotalQuestions:    sub.TotalQuestions,
			CreatedAt:         sub.CreatedAt.Format(util.TimeFormat),
		})
	}
	return out
}
