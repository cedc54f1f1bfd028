// Package account registers users and resolves them by credentials or ID.
// Passwords are compared as stored; there is no hashing.
package account

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"overtrack/ledger"
	"overtrack/storage"
	"overtrack/worklog"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Repository interface {
	InsertUser(user worklog.User) error
	GetUserByID(id string) (worklog.User, bool, error)
	GetUserByEmail(email string) (worklog.User, bool, error)
	ListUsers() ([]worklog.User, error)
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type Service struct {
	repo     Repository
	validate *validator.Validate
	newID    func() string
	now      func() time.Time

	mu sync.Mutex
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		newID:    ledger.NewID,
		now:      time.Now,
	}
}

func (s *Service) Register(input RegisterInput) (worklog.Profile, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if err := s.validate.Struct(input); err != nil {
		return worklog.Profile{}, registrationError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := worklog.User{
		ID:        s.newID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		CreatedAt: s.now(),
	}
	if err := s.repo.InsertUser(user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return worklog.Profile{}, &worklog.ConflictError{Resource: "user", Key: input.Email}
		}
		return worklog.Profile{}, fmt.Errorf("register user: %w", err)
	}
	return user.Profile(), nil
}

// Authenticate returns the profile whose email and password both match.
func (s *Service) Authenticate(email, password string) (worklog.Profile, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return worklog.Profile{}, &worklog.ValidationError{Reason: "email and password are required"}
	}

	user, found, err := s.repo.GetUserByEmail(email)
	if err != nil {
		return worklog.Profile{}, fmt.Errorf("authenticate user: %w", err)
	}
	if !found || user.Password != password {
		return worklog.Profile{}, ErrInvalidCredentials
	}
	return user.Profile(), nil
}

func (s *Service) Lookup(userID string) (worklog.Profile, error) {
	user, found, err := s.repo.GetUserByID(userID)
	if err != nil {
		return worklog.Profile{}, fmt.Errorf("look up user %s: %w", userID, err)
	}
	if !found {
		return worklog.Profile{}, &worklog.NotFoundError{Resource: "user", ID: userID}
	}
	return user.Profile(), nil
}

func (s *Service) List() ([]worklog.Profile, error) {
	users, err := s.repo.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]worklog.Profile, 0, len(users))
	for _, user := range users {
		out = append(out, user.Profile())
	}
	return out, nil
}

func registrationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &worklog.ValidationError{Reason: err.Error()}
	}

	first := fieldErrs[0]
	field := strings.ToLower(first.Field())
	switch first.Tag() {
	case "required":
		return &worklog.ValidationError{Field: field, Reason: "is required"}
	case "min":
		return &worklog.ValidationError{Field: field, Reason: "must be at least " + first.Param() + " characters long"}
	case "max":
		return &worklog.ValidationError{Field: field, Reason: "must be at most " + first.Param() + " characters long"}
	case "email":
		return &worklog.ValidationError{Field: field, Reason: "must be a valid email address"}
	default:
		return &worklog.ValidationError{Field: strings.ToLower(first.Field()), Reason: "failed " + first.Tag() + " check"}
	}
}
