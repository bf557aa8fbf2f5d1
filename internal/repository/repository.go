package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/hjhuang/identity-service/internal/apperrors"
	"github.com/hjhuang/identity-service/internal/models"
)

// Repository provides database operations over account rows. Every method is
// a single parameterized statement; uniqueness is enforced by the store's own
// constraints and surfaced as apperrors.ErrDuplicateCredential.
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a new account and fills in the store-assigned fields.
func (r *Repository) CreateUser(ctx context.Context, user *models.Account) error {
	query := `
		INSERT INTO users (username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateCredential
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByUsernameOrEmail retrieves an account matching either column. This is
// the only read that returns the password hash.
func (r *Repository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.Account, error) {
	user := &models.Account{}
	query := `
		SELECT id, username, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE username = $1 OR email = $2`
	err := r.db.QueryRowContext(ctx, query, username, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindByID retrieves an account by primary key, without the password hash.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	user := &models.Account{}
	query := `
		SELECT id, username, email, role, created_at, updated_at
		FROM users
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns all accounts in store-native order, without password hashes.
func (r *Repository) ListUsers(ctx context.Context) ([]models.Account, error) {
	query := `
		SELECT id, username, email, role, created_at, updated_at
		FROM users`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.Account
	for rows.Next() {
		var user models.Account
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies the set fields of p to the account, always refreshing
// updated_at, and returns the updated row. Only the SET list varies; values
// are always bound positionally.
func (r *Repository) UpdateUser(ctx context.Context, id int64, p models.UpdateParams) (*models.Account, error) {
	set := []string{"updated_at = CURRENT_TIMESTAMP"}
	var args []interface{}
	n := 1

	if p.Username != nil {
		set = append(set, fmt.Sprintf("username = $%d", n))
		args = append(args, *p.Username)
		n++
	}
	if p.Email != nil {
		set = append(set, fmt.Sprintf("email = $%d", n))
		args = append(args, *p.Email)
		n++
	}
	if p.PasswordHash != nil {
		set = append(set, fmt.Sprintf("password_hash = $%d", n))
		args = append(args, *p.PasswordHash)
		n++
	}
	if p.Role != nil {
		set = append(set, fmt.Sprintf("role = $%d", n))
		args = append(args, *p.Role)
		n++
	}

	query := fmt.Sprintf(`
		UPDATE users SET %s
		WHERE id = $%d
		RETURNING id, username, email, role, created_at, updated_at`,
		strings.Join(set, ", "), n)
	args = append(args, id)

	user := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateCredential
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes an account, reporting whether a row was deleted.
func (r *Repository) DeleteUser(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return affected > 0, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
