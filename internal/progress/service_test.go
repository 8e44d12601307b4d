package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibenen/academy/internal/apperr"
	"github.com/vibenen/academy/internal/course"
)

/* ---------------- in-memory fakes satisfying course.Store and progress.Store ---------------- */

type fakeCourses struct {
	course  course.Course
	modules []course.Module
	quizzes map[int64][]course.Question
}

func (f *fakeCourses) CourseBySlug(_ context.Context, slug string) (course.Course, error) {
	if slug != f.course.Slug {
		return course.Course{}, apperr.NotFoundf("course %q", slug)
	}
	return f.course, nil
}

func (f *fakeCourses) Modules(_ context.Context, courseID int64) ([]course.Module, error) {
	return f.modules, nil
}

func (f *fakeCourses) Module(_ context.Context, moduleID int64) (course.Module, error) {
	for _, m := range f.modules {
		if m.ID == moduleID {
			return m, nil
		}
	}
	return course.Module{}, apperr.NotFoundf("module %d", moduleID)
}

func (f *fakeCourses) Quiz(_ context.Context, moduleID int64) ([]course.Question, error) {
	qs, ok := f.quizzes[moduleID]
	if !ok {
		return nil, apperr.NotFoundf("no quiz for module %d", moduleID)
	}
	return qs, nil
}

type progressKey struct {
	userID   string
	moduleID int64
}

type fakeProgress struct {
	records map[progressKey]Record
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{records: map[progressKey]Record{}}
}

func (f *fakeProgress) Find(_ context.Context, userID string) ([]Record, error) {
	var out []Record
	for k, r := range f.records {
		if k.userID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProgress) FindOne(_ context.Context, userID string, moduleID int64) (Record, bool, error) {
	r, ok := f.records[progressKey{userID, moduleID}]
	return r, ok, nil
}

func (f *fakeProgress) Upsert(_ context.Context, r Record) error {
	f.records[progressKey{r.UserID, r.ModuleID}] = r
	return nil
}

func (f *fakeProgress) ResetAll(_ context.Context, userID string) error {
	for k, r := range f.records {
		if k.userID == userID {
			r.Status = StatusInProgress
			r.Validated = false
			r.QuizScore = nil
			f.records[k] = r
		}
	}
	return nil
}

func (f *fakeProgress) CreateInitial(_ context.Context, userID string, moduleIDs []int64) error {
	for _, mid := range moduleIDs {
		k := progressKey{userID, mid}
		if _, ok := f.records[k]; !ok {
			f.records[k] = Record{UserID: userID, ModuleID: mid, Status: StatusInProgress}
		}
	}
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeProgress) {
	t.Helper()
	qs := func() []course.Question {
		return []course.Question{
			{Text: "q1", Options: []string{"a", "b", "c"}, CorrectOption: 1},
			{Text: "q2", Options: []string{"a", "b", "c"}, CorrectOption: 1},
			{Text: "q3", Options: []string{"a", "b", "c"}, CorrectOption: 1},
		}
	}
	courses := &fakeCourses{
		course: course.Course{ID: 1, Slug: "cursor"},
		modules: []course.Module{
			{ID: 1, CourseID: 1, Order: 1},
			{ID: 2, CourseID: 1, Order: 2},
			{ID: 3, CourseID: 1, Order: 3},
		},
		quizzes: map[int64][]course.Question{1: qs(), 2: qs(), 3: qs()},
	}
	store := newFakeProgress()
	require.NoError(t, store.CreateInitial(context.Background(), "u1", []int64{1, 2, 3}))
	return NewService(courses, store, 1), store
}

func TestSubmitQuizFullMarksUnlocksNextModule(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	eval, err := svc.SubmitQuiz(ctx, "u1", 1, []int{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, Evaluation{Score: 3, Total: 3, Validated: true}, eval)

	views, err := svc.ProgressFor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, StatusDone, views[0].Status)
	require.NotNil(t, views[0].QuizScore)
	assert.Equal(t, 3, *views[0].QuizScore)
	assert.True(t, views[1].Unlocked)
	assert.False(t, views[2].Unlocked)
}

func TestSubmitQuizImperfectKeepsModuleLocked(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	eval, err := svc.SubmitQuiz(ctx, "u1", 1, []int{0, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, Evaluation{Score: 2, Total: 3, Validated: false}, eval)

	views, err := svc.ProgressFor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, views[0].Status)
	require.NotNil(t, views[0].QuizScore)
	assert.Equal(t, 2, *views[0].QuizScore)
	assert.False(t, views[1].Unlocked)
}

func TestSubmitQuizLockedModuleForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.SubmitQuiz(ctx, "u1", 2, []int{1, 1, 1})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.QuizFor(ctx, "u1", 2)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestSubmitQuizUnknownModuleNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.SubmitQuiz(ctx, "u1", 99, []int{1, 1, 1})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSubmitQuizDoneIsSticky(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.SubmitQuiz(ctx, "u1", 1, []int{1, 1, 1})
	require.NoError(t, err)

	// A later imperfect submission must not retract validation.
	eval, err := svc.SubmitQuiz(ctx, "u1", 1, []int{0, 0, 0})
	require.NoError(t, err)
	assert.True(t, eval.Validated)
	assert.Equal(t, 3, eval.Score)

	rec, ok, err := store.FindOne(ctx, "u1", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, rec.Validated)
	assert.Equal(t, StatusDone, rec.Status)
	require.NotNil(t, rec.QuizScore)
	assert.Equal(t, 3, *rec.QuizScore)
}

func TestSubmitQuizWrongAnswerCountValidationError(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.SubmitQuiz(ctx, "u1", 1, []int{1, 1})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	// Nothing was written.
	rec, ok, err := store.FindOne(ctx, "u1", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, rec.QuizScore)
	assert.Equal(t, StatusInProgress, rec.Status)
}

func TestQuizForStripsAnswers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	quiz, err := svc.QuizFor(ctx, "u1", 1)
	require.NoError(t, err)
	require.Len(t, quiz, 3)
	for _, q := range quiz {
		assert.NotEmpty(t, q.Question)
		assert.Len(t, q.Options, 3)
	}
}

func TestResetIsIdempotentAndScopedToUser(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	require.NoError(t, store.CreateInitial(ctx, "u2", []int64{1, 2, 3}))

	for _, mid := range []int64{1, 2, 3} {
		score := 3
		require.NoError(t, store.Upsert(ctx, Record{UserID: "u1", ModuleID: mid, Status: StatusDone, Validated: true, QuizScore: &score}))
	}
	score := 3
	require.NoError(t, store.Upsert(ctx, Record{UserID: "u2", ModuleID: 1, Status: StatusDone, Validated: true, QuizScore: &score}))

	require.NoError(t, svc.Reset(ctx, "u1"))
	require.NoError(t, svc.Reset(ctx, "u1")) // second call, same observable state

	views, err := svc.ProgressFor(ctx, "u1")
	require.NoError(t, err)
	for i, v := range views {
		assert.Equal(t, StatusInProgress, v.Status)
		assert.False(t, v.Validated)
		assert.Nil(t, v.QuizScore)
		assert.Equal(t, i == 0, v.Unlocked)
	}

	// Other users are untouched.
	rec, ok, err := store.FindOne(ctx, "u2", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, rec.Validated)
}

func TestIsCourseComplete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	done, err := svc.IsCourseComplete(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, done)

	for _, mid := range []int64{1, 2, 3} {
		_, err := svc.SubmitQuiz(ctx, "u1", mid, []int{1, 1, 1})
		require.NoError(t, err)
	}

	done, err = svc.IsCourseComplete(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, done)

	require.NoError(t, svc.Reset(ctx, "u1"))
	done, err = svc.IsCourseComplete(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, done)
}
