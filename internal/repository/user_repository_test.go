package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kekambas-blog/internal/model"
)

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user := &model.User{Username: "alice", Email: "a@x.com", PasswordHash: "$2a$10$hash"}
	require.NoError(t, repo.Create(user))
	assert.Equal(t, uint(1), user.ID)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	// The unique index on username rejects the insert; that MySQL error,
	// not a pre-check, is what surfaces as ErrDuplicateUsername.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'alice'"})
	mock.ExpectRollback()

	user := &model.User{Username: "alice", Email: "b@y.com", PasswordHash: "$2a$10$hash"}
	err := repo.Create(user)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash"}).
		AddRow(7, "alice", "a@x.com", "$2a$10$hash")
	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE username =").
		WillReturnRows(rows)

	user, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestUserRepository_GetByUsernameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE username =").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash"}))

	user, err := repo.GetByUsername("nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash"}).
		AddRow(7, "alice", "a@x.com", "$2a$10$hash")
	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE `users`.`id` =").
		WillReturnRows(rows)

	user, err := repo.GetByID(7)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
}
