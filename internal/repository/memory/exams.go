package memory

import (
	"context"
	"sort"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
)

type Exams struct{ s *Store }

func copyQuestion(q *model.Question, withAnswers bool) model.Question {
	cp := *q
	cp.Options = append([]model.QuestionOption(nil), q.Options...)
	if !withAnswers {
		cp.CorrectAnswer = ""
		cp.Explanation = ""
	}
	return cp
}

func (r *Exams) FindExamByID(ctx context.Context, id string) (*model.InteractiveExam, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.exams[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *Exams) ListExams(ctx context.Context, f repository.InteractiveExamFilter) ([]model.InteractiveExam, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []model.InteractiveExam
	for _, e := range r.s.exams {
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.Subject != "" && e.Subject != f.Subject {
			continue
		}
		if f.Grade != "" && e.Grade != f.Grade {
			continue
		}
		if f.Difficulty != "" && e.Difficulty != f.Difficulty {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// numberTaken must be called with the lock held.
func (r *Exams) numberTaken(examID string, number int, exceptID string) bool {
	for _, q := range r.s.questions {
		if q.InteractiveExamID == examID && q.QuestionNumber == number && q.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *Exams) CreateExamWithQuestions(ctx context.Context, exam *model.InteractiveExam, questions []model.Question) error {
	if err := exam.Validate(); err != nil {
		return err
	}
	stampUUID(&exam.UUIDBase)

	seen := make(map[int]bool, len(questions))
	for i := range questions {
		questions[i].InteractiveExamID = exam.ID
		if err := questions[i].Validate(); err != nil {
			return err
		}
		if seen[questions[i].QuestionNumber] {
			return util.ErrStorageConflict
		}
		seen[questions[i].QuestionNumber] = true
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.exams[exam.ID]; ok {
		return util.ErrStorageConflict
	}
	cp := *exam
	r.s.exams[exam.ID] = &cp
	for i := range questions {
		stampUUID(&questions[i].UUIDBase)
		q := copyQuestion(&questions[i], true)
		r.s.questions[q.ID] = &q
	}
	return nil
}

func (r *Exams) UpdateExam(ctx context.Context, exam *model.InteractiveExam) error {
	if err := exam.Validate(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.exams[exam.ID]; !ok {
		return util.ErrNotFound
	}
	stampUUID(&exam.UUIDBase)
	cp := *exam
	r.s.exams[exam.ID] = &cp
	return nil
}

func (r *Exams) DeleteExamCascade(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.exams[id]; !ok {
		return util.ErrNotFound
	}
	delete(r.s.exams, id)
	for qid, q := range r.s.questions {
		if q.InteractiveExamID == id {
			delete(r.s.questions, qid)
		}
	}
	for sid, sub := range r.s.submissions {
		if sub.InteractiveExamID == id {
			delete(r.s.submissions, sid)
		}
	}
	return nil
}

func (r *Exams) FindQuestionsByExam(ctx context.Context, examID string, withAnswers bool) ([]model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []model.Question
	for _, q := range r.s.questions {
		if q.InteractiveExamID == examID {
			out = append(out, copyQuestion(q, withAnswers))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionNumber < out[j].QuestionNumber })
	return out, nil
}

func (r *Exams) CountQuestions(ctx context.Context, examIDs []string) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	want := make(map[string]bool, len(examIDs))
	for _, id := range examIDs {
		want[id] = true
	}
	counts := make(map[string]int, len(examIDs))
	for _, q := range r.s.questions {
		if want[q.InteractiveExamID] {
			counts[q.InteractiveExamID]++
		}
	}
	return counts, nil
}

func (r *Exams) FindQuestionByID(ctx context.Context, id string) (*model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.questions[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := copyQuestion(q, true)
	return &cp, nil
}

func (r *Exams) CreateQuestion(ctx context.Context, q *model.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.numberTaken(q.InteractiveExamID, q.QuestionNumber, "") {
		return util.ErrStorageConflict
	}
	stampUUID(&q.UUIDBase)
	cp := copyQuestion(q, true)
	r.s.questions[q.ID] = &cp
	return nil
}

func (r *Exams) UpdateQuestion(ctx context.Context, q *model.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.questions[q.ID]; !ok {
		return util.ErrNotFound
	}
	if r.numberTaken(q.InteractiveExamID, q.QuestionNumber, q.ID) {
		return util.ErrStorageConflict
	}
	stampUUID(&q.UUIDBase)
	cp := copyQuestion(q, true)
	r.s.questions[q.ID] = &cp
	return nil
}

func (r *Exams) DeleteQuestion(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.questions[id]; !ok {
		return util.ErrNotFound
	}
	delete(r.s.questions, id)
	return nil
}
