package course

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibenen/academy/internal/apperr"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) CourseBySlug(ctx context.Context, slug string) (Course, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, slug, name, description FROM courses WHERE slug=$1`, slug)
	var c Course
	if err := row.Scan(&c.ID, &c.Slug, &c.Name, &c.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Course{}, apperr.NotFoundf("course %q", slug)
		}
		return Course{}, err
	}
	return c, nil
}

func (s *SQLStore) Modules(ctx context.Context, courseID int64) ([]Module, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, course_id, ord, title, youtube_id FROM modules WHERE course_id=$1 ORDER BY ord`,
		courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Module
	for rows.Next() {
		var m Module
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Order, &m.Title, &m.YouTubeID); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLStore) Module(ctx context.Context, moduleID int64) (Module, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, course_id, ord, title, youtube_id FROM modules WHERE id=$1`, moduleID)
	var m Module
	if err := row.Scan(&m.ID, &m.CourseID, &m.Order, &m.Title, &m.YouTubeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Module{}, apperr.NotFoundf("module %d", moduleID)
		}
		return Module{}, err
	}
	return m, nil
}

func (s *SQLStore) Quiz(ctx context.Context, moduleID int64) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id, q.text, o.text, o.is_correct
		   FROM questions q
		   JOIN options o ON o.question_id = q.id
		  WHERE q.module_id=$1
		  ORDER BY q.ord, o.ord`, moduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out    []Question
		lastID int64 = -1
	)
	for rows.Next() {
		var (
			qid       int64
			qText     string
			optText   string
			isCorrect bool
		)
		if err := rows.Scan(&qid, &qText, &optText, &isCorrect); err != nil {
			return nil, err
		}
		if qid != lastID {
			out = append(out, Question{Text: qText, CorrectOption: -1})
			lastID = qid
		}
		q := &out[len(out)-1]
		if isCorrect {
			q.CorrectOption = len(q.Options)
		}
		q.Options = append(q.Options, optText)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, apperr.NotFoundf("no quiz for module %d", moduleID)
	}
	return out, nil
}
