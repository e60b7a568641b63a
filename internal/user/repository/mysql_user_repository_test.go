package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/authkit/internal/user/domain"
)

func TestMySQLUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	user := newTestUser("johndoe")
	idBytes, err := user.ID.MarshalBinary()
	require.NoError(t, err)

	t.Run("Success_StoresBinaryID", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(idBytes, user.Username, user.PasswordHash, user.FullName, user.Email,
				user.Disabled, user.CreatedAt, user.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, user))
	})

	t.Run("Error_Duplicate", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'johndoe'"})

		assert.ErrorIs(t, repo.Create(ctx, user), domain.ErrUserAlreadyExists)
	})
}

func TestMySQLUserRepository_FindByUsername(t *testing.T) {
	ctx := context.Background()
	user := newTestUser("johndoe")
	idBytes, err := user.ID.MarshalBinary()
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE username = \?`).
			WithArgs("johndoe").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				idBytes, user.Username, user.PasswordHash, user.FullName, user.Email,
				user.Disabled, user.CreatedAt, user.UpdatedAt,
			))

		found, err := repo.FindByUsername(ctx, "johndoe")
		require.NoError(t, err)
		assert.Equal(t, user, found)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM users`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		found, err := repo.FindByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Nil(t, found)
	})

	t.Run("Error_CorruptID", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("johndoe").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				[]byte{1, 2, 3}, user.Username, user.PasswordHash, user.FullName, user.Email,
				user.Disabled, user.CreatedAt, user.UpdatedAt,
			))

		found, err := repo.FindByUsername(ctx, "johndoe")
		assert.ErrorContains(t, err, "failed to unmarshal UUID")
		assert.Nil(t, found)
	})
}

func TestMySQLUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	user := newTestUser("johndoe")
	idBytes, err := user.ID.MarshalBinary()
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectExec(`UPDATE users`).
			WithArgs(user.PasswordHash, user.FullName, user.Email, user.Disabled, user.UpdatedAt, "johndoe").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, user))
	})

	t.Run("Success_UnchangedRow", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("johndoe").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				idBytes, user.Username, user.PasswordHash, user.FullName, user.Email,
				user.Disabled, user.CreatedAt, user.UpdatedAt,
			))

		assert.NoError(t, repo.Update(ctx, user))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT (.+) FROM users`).WithArgs("johndoe").WillReturnError(sql.ErrNoRows)

		assert.ErrorIs(t, repo.Update(ctx, user), domain.ErrUserNotFound)
	})
}

func TestMySQLUserRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectExec(`DELETE FROM users WHERE username = \?`).
			WithArgs("johndoe").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "johndoe"))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectExec(`DELETE FROM users`).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "ghost"), domain.ErrUserNotFound)
	})
}
