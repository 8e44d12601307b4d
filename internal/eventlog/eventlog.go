// Package eventlog keeps an append-only audit trail of domain events
// in the event_log table. Appends are best-effort at call sites: a
// failed append is logged, never surfaced to the user.
package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const (
	TypeUserRegistered    = "UserRegistered"
	TypeQuizSubmitted     = "QuizSubmitted"
	TypeProgressReset     = "ProgressReset"
	TypeCertificateIssued = "CertificateIssued"
)

type Event struct {
	Offset    int64
	Type      string
	Key       string
	DataJSON  string
	CreatedAt int64
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

// Append records one event. Key is the natural key (the user id);
// data is marshalled to JSON.
func (r *Repo) Append(ctx context.Context, typ, key string, data any) error {
	buf, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at) VALUES ($1,$2,$3,$4)`,
		typ, key, string(buf), time.Now().Unix())
	return err
}
