package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/msomdec/therapy-admin/internal/domain"
)

const adminColumns = `id, email, display_name, password_hash, created_at, updated_at`

// UserRepository stores the admin accounts allowed to use the catalog API.
// Emails are kept lower-cased so sign-in is case-insensitive.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

// Create inserts a new admin and fills in its id and timestamps.
// A second account with the same email is ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	email := normalizeEmail(user.Email)

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, display_name, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		email, user.DisplayName, user.PasswordHash, now, now,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("admin %s: %w", email, domain.ErrDuplicateEmail)
		}
		return fmt.Errorf("insert admin: %w", err)
	}

	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM users WHERE id = ?`, id)
	user, err := scanAdmin(row)
	if err != nil {
		return nil, fmt.Errorf("admin %d: %w", id, err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = normalizeEmail(email)
	row := r.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM users WHERE email = ?`, email)
	user, err := scanAdmin(row)
	if err != nil {
		return nil, fmt.Errorf("admin %s: %w", email, err)
	}
	return user, nil
}

func scanAdmin(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	var se *moderncsqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
