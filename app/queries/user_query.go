package queries

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/wanderlust/wanderlust-backend/app/models"
	"github.com/wanderlust/wanderlust-backend/pkg/utils"
)

type UserQueries struct {
	DB *sql.DB
}

const uniqueViolation = "23505"

func (q *UserQueries) GetUserByID(id uuid.UUID) (models.User, error) {
	user := models.User{}

	query := `SELECT uid, username, email, password_hash, created_at, updated_at
			  FROM users WHERE uid = $1`

	err := q.DB.QueryRow(query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return user, utils.NewNotFoundError("user not found")
		}
		return user, utils.NewInternalError("unable to get user, DB error")
	}

	return user, nil
}

func (q *UserQueries) GetUserByUsername(username string) (models.User, error) {
	user := models.User{}

	query := `SELECT uid, username, email, password_hash, created_at, updated_at
			  FROM users WHERE username = $1`

	err := q.DB.QueryRow(query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return user, utils.NewNotFoundError("user not found")
		}
		return user, utils.NewInternalError("unable to get user, DB error")
	}

	return user, nil
}

func (q *UserQueries) CreateUser(u *models.User) error {
	query := `INSERT INTO users (uid, username, email, password_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := q.DB.Exec(query,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			if strings.Contains(pqErr.Constraint, "email") {
				return utils.NewConflictError("A user with that email already exists")
			}
			return utils.NewConflictError("A user with that username already exists")
		}
		return utils.NewInternalError("unable to create user, DB error")
	}

	return nil
}

func (q *UserQueries) DeleteUser(id uuid.UUID) error {
	query := `DELETE FROM users WHERE uid = $1`

	res, err := q.DB.Exec(query, id)
	if err != nil {
		return utils.NewInternalError("unable to delete user, DB error")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return utils.NewInternalError("unable to delete user, DB error")
	}
	if rows == 0 {
		return utils.NewNotFoundError("user not found")
	}

	return nil
}
