package progress

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Find(ctx context.Context, userID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, module_id, status, validated, quiz_score FROM progress WHERE user_id=$1`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) FindOne(ctx context.Context, userID string, moduleID int64) (Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, module_id, status, validated, quiz_score FROM progress WHERE user_id=$1 AND module_id=$2`,
		userID, moduleID)
	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	return r, true, nil
}

// Upsert relies on the composite primary key: ON CONFLICT makes the
// write atomic under concurrent submissions for the same key.
func (s *SQLStore) Upsert(ctx context.Context, r Record) error {
	var score sql.NullInt64
	if r.QuizScore != nil {
		score = sql.NullInt64{Int64: int64(*r.QuizScore), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (user_id, module_id, status, validated, quiz_score, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id, module_id) DO UPDATE SET
		   status=EXCLUDED.status, validated=EXCLUDED.validated,
		   quiz_score=EXCLUDED.quiz_score, updated_at=EXCLUDED.updated_at`,
		r.UserID, r.ModuleID, string(r.Status), r.Validated, score, time.Now().Unix())
	return err
}

func (s *SQLStore) ResetAll(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE progress SET status=$1, validated=$2, quiz_score=NULL, updated_at=$3 WHERE user_id=$4`,
		string(StatusInProgress), false, time.Now().Unix(), userID)
	return err
}

func (s *SQLStore) CreateInitial(ctx context.Context, userID string, moduleIDs []int64) error {
	now := time.Now().Unix()
	for _, mid := range moduleIDs {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO progress (user_id, module_id, status, validated, quiz_score, updated_at)
			 VALUES ($1,$2,$3,$4,NULL,$5)
			 ON CONFLICT (user_id, module_id) DO NOTHING`,
			userID, mid, string(StatusInProgress), false, now)
		if err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		r      Record
		status string
		score  sql.NullInt64
	)
	if err := row.Scan(&r.UserID, &r.ModuleID, &status, &r.Validated, &score); err != nil {
		return Record{}, err
	}
	r.Status = Status(status)
	if score.Valid {
		n := int(score.Int64)
		r.QuizScore = &n
	}
	return r, nil
}
