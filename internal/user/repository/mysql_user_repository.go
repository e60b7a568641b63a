package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/allisson/authkit/internal/database"
	"github.com/allisson/authkit/internal/user/domain"

	apperrors "github.com/allisson/authkit/internal/errors"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// MySQLUserRepository handles user persistence for MySQL. IDs are stored as BINARY(16).
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, password_hash, full_name, email, disabled, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		uuidBytes,
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.Email,
		user.Disabled,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Update overwrites the mutable fields of the user with the same username.
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET password_hash = ?, full_name = ?, email = ?, disabled = ?, updated_at = ?
			  WHERE username = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		user.PasswordHash,
		user.FullName,
		user.Email,
		user.Disabled,
		user.UpdatedAt,
		user.Username,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}

	// MySQL reports rows changed, not rows matched, so an update that writes
	// identical values affects zero rows. Fall back to an existence check.
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		if _, err := r.FindByUsername(ctx, user.Username); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the user with the given username.
func (r *MySQLUserRepository) Delete(ctx context.Context, username string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	return requireAffected(result)
}

// FindByUsername retrieves a user by username.
func (r *MySQLUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	var id []byte
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password_hash, full_name, email, disabled, created_at, updated_at
			  FROM users WHERE username = ?`

	err := querier.QueryRowContext(ctx, query, username).Scan(
		&id,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.Email,
		&user.Disabled,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by username")
	}

	if err := user.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &user, nil
}

// isMySQLUniqueViolation reports whether err is a duplicate key error.
func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return false
}
