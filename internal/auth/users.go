package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vibenen/academy/internal/apperr"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserStore owns user rows and credential checks. It exposes a
// "verify credentials → user id" surface; nothing else reads the
// password hash column.
type UserStore struct {
	db   *sql.DB
	cost int
}

func NewUserStore(db *sql.DB, bcryptCost int) *UserStore {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserStore{db: db, cost: bcryptCost}
}

// Create hashes the password and inserts a new user. A duplicate
// email fails with apperr.ErrConflict.
func (s *UserStore) Create(ctx context.Context, email, password string) (User, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email=$1`, email).Scan(&exists)
	if err == nil {
		return User{}, apperr.Conflictf("user already exists")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, err
	}
	u := User{ID: uuid.NewString(), Email: email}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1,$2,$3,$4)`,
		u.ID, u.Email, string(hash), time.Now().Unix())
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// Verify checks credentials and returns the user on success. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *UserStore) Verify(ctx context.Context, email, password string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM users WHERE email=$1`, email)
	var (
		u    User
		hash string
	)
	if err := row.Scan(&u.ID, &u.Email, &hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, apperr.Forbiddenf("invalid credentials")
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, apperr.Forbiddenf("invalid credentials")
	}
	return u, nil
}

func (s *UserStore) ByID(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, email FROM users WHERE id=$1`, id)
	var u User
	if err := row.Scan(&u.ID, &u.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, apperr.NotFoundf("user %s", id)
		}
		return User{}, err
	}
	return u, nil
}
