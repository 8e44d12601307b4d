package feedback

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/vibenen/academy/internal/apperr"
)

type Feedback struct {
	CourseRating  int            `json:"courseRating"`
	Comment       string         `json:"comment,omitempty"`
	ModuleRatings map[string]int `json:"moduleRatings,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Validate checks rating bounds (1..5, module ratings included).
func (f Feedback) Validate() error {
	if f.CourseRating < 1 || f.CourseRating > 5 {
		return apperr.Validationf("courseRating must be between 1 and 5")
	}
	for mod, r := range f.ModuleRatings {
		if r < 1 || r > 5 {
			return apperr.Validationf("rating for module %s must be between 1 and 5", mod)
		}
	}
	return nil
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Get(ctx context.Context, userID string, courseID int64) (Feedback, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT course_rating, comment, module_ratings_json, created_at
		   FROM feedback WHERE user_id=$1 AND course_id=$2`, userID, courseID)
	var (
		f       Feedback
		ratings string
		created int64
	)
	if err := row.Scan(&f.CourseRating, &f.Comment, &ratings, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Feedback{}, false, nil
		}
		return Feedback{}, false, err
	}
	if err := json.Unmarshal([]byte(ratings), &f.ModuleRatings); err != nil {
		f.ModuleRatings = nil
	}
	f.CreatedAt = time.Unix(created, 0).UTC()
	return f, true, nil
}

// Upsert stores or replaces the user's feedback for one course.
func (s *SQLStore) Upsert(ctx context.Context, userID string, courseID int64, f Feedback) error {
	ratings := f.ModuleRatings
	if ratings == nil {
		ratings = map[string]int{}
	}
	buf, err := json.Marshal(ratings)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO feedback (user_id, course_id, course_rating, comment, module_ratings_json, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id, course_id) DO UPDATE SET
		   course_rating=EXCLUDED.course_rating, comment=EXCLUDED.comment,
		   module_ratings_json=EXCLUDED.module_ratings_json`,
		userID, courseID, f.CourseRating, f.Comment, string(buf), time.Now().Unix())
	return err
}
