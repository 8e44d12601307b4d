package progress

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/vibenen/academy/internal/db"
)

func openStore(t *testing.T) (*SQLStore, *sql.DB) {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbh, err := db.Open(ctx, db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	seedUserAndModules(t, dbh)
	return NewSQLStore(dbh), dbh
}

func seedUserAndModules(t *testing.T, dbh *sql.DB) {
	t.Helper()
	now := time.Now().Unix()
	for _, uid := range []string{"u1", "u2"} {
		if _, err := dbh.Exec(`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1,$2,'x',$3)`,
			uid, uid+"@example.com", now); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	if _, err := dbh.Exec(`INSERT INTO courses (slug, name) VALUES ('c','C')`); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	for i := 1; i <= 3; i++ {
		if _, err := dbh.Exec(`INSERT INTO modules (id, course_id, ord, title) VALUES ($1,1,$2,'m')`, i, i); err != nil {
			t.Fatalf("seed module: %v", err)
		}
	}
}

func TestCreateInitialIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)

	if err := store.CreateInitial(ctx, "u1", []int64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateInitial(ctx, "u1", []int64{1, 2, 3}); err != nil {
		t.Fatalf("second CreateInitial: %v", err)
	}

	recs, err := store.Find(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	for _, r := range recs {
		if r.Status != StatusInProgress || r.Validated || r.QuizScore != nil {
			t.Fatalf("record not initial: %+v", r)
		}
	}
}

func TestUpsertLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)
	if err := store.CreateInitial(ctx, "u1", []int64{1}); err != nil {
		t.Fatal(err)
	}

	two := 2
	if err := store.Upsert(ctx, Record{UserID: "u1", ModuleID: 1, Status: StatusInProgress, QuizScore: &two}); err != nil {
		t.Fatal(err)
	}
	three := 3
	if err := store.Upsert(ctx, Record{UserID: "u1", ModuleID: 1, Status: StatusDone, Validated: true, QuizScore: &three}); err != nil {
		t.Fatal(err)
	}

	rec, ok, err := store.FindOne(ctx, "u1", 1)
	if err != nil || !ok {
		t.Fatalf("FindOne: ok=%v err=%v", ok, err)
	}
	if rec.Status != StatusDone || !rec.Validated || rec.QuizScore == nil || *rec.QuizScore != 3 {
		t.Fatalf("record = %+v", rec)
	}
}

func TestFindOneAbsent(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)

	_, ok, err := store.FindOne(ctx, "u1", 1)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected absent record")
	}
}

func TestResetAllKeepsRecordsAndOtherUsers(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)
	if err := store.CreateInitial(ctx, "u1", []int64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateInitial(ctx, "u2", []int64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	three := 3
	for _, uid := range []string{"u1", "u2"} {
		if err := store.Upsert(ctx, Record{UserID: uid, ModuleID: 1, Status: StatusDone, Validated: true, QuizScore: &three}); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.ResetAll(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if err := store.ResetAll(ctx, "u1"); err != nil {
		t.Fatalf("second reset: %v", err)
	}

	recs, err := store.Find(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("reset deleted records: %d left", len(recs))
	}
	for _, r := range recs {
		if r.Status != StatusInProgress || r.Validated || r.QuizScore != nil {
			t.Fatalf("record not reset: %+v", r)
		}
	}

	rec, ok, err := store.FindOne(ctx, "u2", 1)
	if err != nil || !ok {
		t.Fatalf("FindOne u2: ok=%v err=%v", ok, err)
	}
	if !rec.Validated {
		t.Fatal("reset touched another user")
	}
}
