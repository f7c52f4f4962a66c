package user

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already registered")
)

// pgUniqueViolation is the Postgres error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

type UserRepository struct{}

type UserRepositoryInterface interface {
	Create(tx *sql.Tx, user *User) (int, error)
	GetByUsername(db *sql.DB, username string) (*User, error)
}

func NewUserRepository() UserRepositoryInterface {
	return &UserRepository{}
}

// Create inserts a new user. The unique index on username is the
// authoritative guard against duplicate registrations; a violation maps to
// ErrUsernameTaken.
func (r *UserRepository) Create(
	tx *sql.Tx,
	user *User,
) (int, error) {
	query := `
		INSERT INTO users (
			username, password, created_at
		)
		VALUES ($1, $2, NOW())
		RETURNING id
	`

	var id int
	err := tx.QueryRow(
		query,
		user.Username,
		user.Password,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			logrus.WithField("username", user.Username).Warn("Duplicate registration rejected by unique index")
			return 0, ErrUsernameTaken
		}
		logrus.WithError(err).Error("Failed to create user")
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  id,
		"username": user.Username,
	}).Info("User created successfully")

	return id, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(db *sql.DB, username string) (*User, error) {
	query := `
		SELECT id, username, password, created_at
		FROM users
		WHERE username = $1
	`

	user := &User{}
	err := db.QueryRow(query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logrus.WithError(err).Error("Failed to get user by username")
		return nil, err
	}

	return user, nil
}
