package progress

import (
	"context"

	"github.com/vibenen/academy/internal/apperr"
	"github.com/vibenen/academy/internal/course"
)

// Service wires the resolver, the evaluator and the stores into the
// operations exposed to the transport layer. Evaluation stays pure;
// only RecordAttempt-style writes inside SubmitQuiz touch storage.
type Service struct {
	courses  course.Store
	store    Store
	courseID int64
}

func NewService(courses course.Store, store Store, courseID int64) *Service {
	return &Service{courses: courses, store: store, courseID: courseID}
}

// ProgressFor returns one view per module, in module order.
func (s *Service) ProgressFor(ctx context.Context, userID string) ([]View, error) {
	modules, err := s.courses.Modules(ctx, s.courseID)
	if err != nil {
		return nil, err
	}
	records, err := s.store.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Resolve(modules, records), nil
}

// QuizFor returns the public (answer-stripped) quiz for a module the
// user has unlocked.
func (s *Service) QuizFor(ctx context.Context, userID string, moduleID int64) ([]course.PublicQuestion, error) {
	if err := s.gate(ctx, userID, moduleID); err != nil {
		return nil, err
	}
	questions, err := s.courses.Quiz(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	return course.PublicView(questions), nil
}

// SubmitQuiz scores a submission and persists the outcome. A module
// that is already validated is sticky: the stored result is replayed
// and nothing is re-scored or written, so a later imperfect attempt
// can never retract an earned unlock.
func (s *Service) SubmitQuiz(ctx context.Context, userID string, moduleID int64, answers []int) (Evaluation, error) {
	if err := s.gate(ctx, userID, moduleID); err != nil {
		return Evaluation{}, err
	}
	questions, err := s.courses.Quiz(ctx, moduleID)
	if err != nil {
		return Evaluation{}, err
	}

	if rec, ok, err := s.store.FindOne(ctx, userID, moduleID); err != nil {
		return Evaluation{}, err
	} else if ok && rec.Validated {
		score := len(questions)
		if rec.QuizScore != nil {
			score = *rec.QuizScore
		}
		return Evaluation{Score: score, Total: len(questions), Validated: true}, nil
	}

	eval, err := Evaluate(questions, answers)
	if err != nil {
		return Evaluation{}, err
	}

	status := StatusInProgress
	if eval.Validated {
		status = StatusDone
	}
	score := eval.Score
	rec := Record{
		UserID:    userID,
		ModuleID:  moduleID,
		Status:    status,
		Validated: eval.Validated,
		QuizScore: &score,
	}
	if err := s.store.Upsert(ctx, rec); err != nil {
		return Evaluation{}, err
	}
	return eval, nil
}

// Reset reverts every record of the user to the initial state.
func (s *Service) Reset(ctx context.Context, userID string) error {
	return s.store.ResetAll(ctx, userID)
}

// IsCourseComplete reports whether every module view is validated.
func (s *Service) IsCourseComplete(ctx context.Context, userID string) (bool, error) {
	views, err := s.ProgressFor(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, v := range views {
		if !v.Validated {
			return false, nil
		}
	}
	return true, nil
}

// gate applies the unlock rule before any quiz access. Unknown module
// ids fail NotFound; locked modules fail Forbidden.
func (s *Service) gate(ctx context.Context, userID string, moduleID int64) error {
	modules, err := s.courses.Modules(ctx, s.courseID)
	if err != nil {
		return err
	}
	known := false
	for _, m := range modules {
		if m.ID == moduleID {
			known = true
			break
		}
	}
	if !known {
		return apperr.NotFoundf("module %d", moduleID)
	}
	records, err := s.store.Find(ctx, userID)
	if err != nil {
		return err
	}
	if !Unlocked(modules, records, moduleID) {
		return apperr.Forbiddenf("module %d not unlocked", moduleID)
	}
	return nil
}
