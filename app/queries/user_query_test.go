package queries

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderlust/wanderlust-backend/app/models"
	"github.com/wanderlust/wanderlust-backend/pkg/utils"
)

func newUser() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Username:     "jane",
		Email:        "jane@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestCreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO users").
			WillReturnResult(sqlmock.NewResult(0, 1))

		q := UserQueries{DB: db}
		assert.NoError(t, q.CreateUser(newUser()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

		q := UserQueries{DB: db}
		err = q.CreateUser(newUser())
		require.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.ErrConflict))
		assert.Contains(t, err.Error(), "username")
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		q := UserQueries{DB: db}
		err = q.CreateUser(newUser())
		require.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.ErrConflict))
		assert.Contains(t, err.Error(), "email")
	})
}

func TestGetUserByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		rows := sqlmock.NewRows([]string{"uid", "username", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(id.String(), "jane", "jane@example.com", "$2a$10$hash", time.Now(), time.Now())
		mock.ExpectQuery("SELECT uid, username, email, password_hash").
			WithArgs("jane").
			WillReturnRows(rows)

		q := UserQueries{DB: db}
		user, err := q.GetUserByUsername("jane")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT uid, username, email, password_hash").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"uid"}))

		q := UserQueries{DB: db}
		_, err = q.GetUserByUsername("ghost")
		require.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.ErrNotFound))
	})
}
