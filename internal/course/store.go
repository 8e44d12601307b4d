package course

import "context"

// Store reads the immutable course catalog and quiz bank.
type Store interface {
	CourseBySlug(ctx context.Context, slug string) (Course, error)
	// Modules returns the course's modules sorted by their order
	// attribute, ascending.
	Modules(ctx context.Context, courseID int64) ([]Module, error)
	Module(ctx context.Context, moduleID int64) (Module, error)
	// Quiz returns the module's ordered question set with answer
	// keys, or apperr.ErrNotFound when the module has no questions.
	Quiz(ctx context.Context, moduleID int64) ([]Question, error)
}
