package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"app/internal/model"
	"app/internal/repository"
	"app/internal/util"
)

var (
	// ErrInvalidCode means the submitted access code matches no instructor.
	ErrInvalidCode = errors.New("invalid instructor code")
	// ErrInstructorNotFound means a session references an instructor that no
	// longer exists.
	ErrInstructorNotFound = errors.New("instructor not found")
)

// InstructorService verifies access codes and issues session tokens.
type InstructorService interface {
	// Login checks the access code against the instructor roster and, on a
	// match, returns a signed session token plus the matched profile.
	// Returns ErrInvalidCode when the code is unknown.
	Login(ctx context.Context, code string) (string, *model.Instructor, error)
	// Get returns the instructor profile for a code.
	Get(ctx context.Context, code string) (*model.Instructor, error)
}

type instructorService struct {
	repo       repository.InstructorRepository
	jwtSecret  string
	sessionTTL time.Duration
}

// NewInstructorService creates a new instructor service.
func NewInstructorService(repo repository.InstructorRepository, jwtSecret string, sessionTTL time.Duration) InstructorService {
	return &instructorService{
		repo:       repo,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

func (s *instructorService) Login(ctx context.Context, code string) (string, *model.Instructor, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", nil, ErrInvalidCode
	}

	instructor, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up instructor: %w", err)
	}
	if instructor == nil {
		return "", nil, ErrInvalidCode
	}

	token, err := util.IssueSessionToken(instructor.Code, instructor.Name, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return token, instructor, nil
}

func (s *instructorService) Get(ctx context.Context, code string) (*model.Instructor, error) {
	instructor, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up instructor: %w", err)
	}
	if instructor == nil {
		return nil, ErrInstructorNotFound
	}
	return instructor, nil
}
