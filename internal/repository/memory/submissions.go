package memory

import (
	"context"
	"sort"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"

	"gorm.io/datatypes"
)

type Submissions struct{ s *Store }

func copySubmission(sub *model.UserSubmission, withSnapshot bool) model.UserSubmission {
	cp := *sub
	if !withSnapshot {
		cp.Details = nil
		cp.UserAnswers = datatypes.NewJSONType(map[string]string(nil))
		return cp
	}

	answers := make(map[string]string, len(sub.UserAnswers.Data()))
	for k, v := range sub.UserAnswers.Data() {
		answers[k] = v
	}
	cp.UserAnswers = datatypes.NewJSONType(answers)

	details := make([]model.SubmissionDetail, len(sub.Details))
	for i, d := range sub.Details {
		d.Options = append([]model.QuestionOption(nil), d.Options...)
		details[i] = d
	}
	cp.Details = details
	return cp
}

func (r *Submissions) CreateSubmission(ctx context.Context, sub *model.UserSubmission) error {
	if r.s.SubmissionErr != nil {
		return r.s.SubmissionErr
	}
	if err := sub.Validate(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stampUUID(&sub.UUIDBase)
	if _, ok := r.s.submissions[sub.ID]; ok {
		return util.ErrStorageConflict
	}
	cp := copySubmission(sub, true)
	r.s.submissions[sub.ID] = &cp
	return nil
}

func (r *Submissions) FindSubmissionByID(ctx context.Context, id string) (*model.UserSubmission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.submissions[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := copySubmission(sub, true)
	return &cp, nil
}

func (r *Submissions) list(match func(*model.UserSubmission) bool) []model.UserSubmission {
	var out []model.UserSubmission
	for _, sub := range r.s.submissions {
		if match(sub) {
			out = append(out, copySubmission(sub, false))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *Submissions) ListSubmissionsByUser(ctx context.Context, userID uint) ([]model.UserSubmission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(s *model.UserSubmission) bool { return s.UserID == userID }), nil
}

func (r *Submissions) ListSubmissionsByExam(ctx context.Context, examID string, page, limit int) ([]model.UserSubmission, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.list(func(s *model.UserSubmission) bool { return s.InteractiveExamID == examID })
	return paginate(all, page, limit), int64(len(all)), nil
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
