package user

import (
	"database/sql"
	"errors"
	"fmt"
	"transcript_api/internal/auth"
	"transcript_api/internal/utils"
)

// ErrInvalidCredentials is the single outward signal for a failed login.
// Unknown username and wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	repo UserRepositoryInterface
	db   *sql.DB
}

type UserServiceInterface interface {
	Register(username, password string) (int, error)
	Authenticate(username, password string) (*User, error)
	GetUserByUsername(username string) (*User, error)
}

func NewUserService(repo UserRepositoryInterface, db *sql.DB) UserServiceInterface {
	return &UserService{
		repo: repo,
		db:   db,
	}
}

// Register creates a new user with a hashed password. The existence check
// here only produces a friendlier error; two concurrent registrations with
// the same username can both pass it, in which case the database unique
// index rejects the loser with ErrUsernameTaken.
func (s *UserService) Register(username, password string) (int, error) {
	existing, err := s.repo.GetByUsername(s.db, username)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUsernameTaken
	}

	hashedPassword, err := auth.GeneratePasswordHash(password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Username: username,
		Password: hashedPassword,
	}

	var id int
	err = utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		id, err = s.repo.Create(tx, user)
		return err
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Authenticate validates username and password, returning the user on a
// match and ErrInvalidCredentials otherwise.
func (s *UserService) Authenticate(username, password string) (*User, error) {
	user, err := s.repo.GetByUsername(s.db, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.ComparePasswordHash([]byte(user.Password), password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByUsername retrieves user by username
func (s *UserService) GetUserByUsername(username string) (*User, error) {
	return s.repo.GetByUsername(s.db, username)
}
