package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/cphub/cphub/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Service encapsulates account business logic on top of a UserRepository.
type Service struct {
	repo UserRepository
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r}
}

// RegisterInput carries the fields accepted at registration. The platform
// handles are optional and default to empty.
type RegisterInput struct {
	Username           string
	Email              string
	Password           string
	LeetcodeUsername   string
	CodeforcesUsername string
	CodechefUsername   string
}

// Register creates a new account. Username and email must be globally unique;
// the matching sentinel (ErrUsernameTaken / ErrEmailTaken) reports which
// constraint was violated.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)

	existing, err := s.repo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("uniqueness check: %w", err)
	}
	if existing != nil {
		if existing.Username == username {
			return nil, ErrUsernameTaken
		}
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Username:           username,
		Email:              email,
		PasswordHash:       string(hash),
		LeetcodeUsername:   strings.TrimSpace(in.LeetcodeUsername),
		CodeforcesUsername: strings.TrimSpace(in.CodeforcesUsername),
		CodechefUsername:   strings.TrimSpace(in.CodechefUsername),
	}
	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Authenticate verifies email+password and returns the matching user.
// Unknown email and bad password both map to ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID returns the user or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// HandleUpdates carries optional handle changes; nil pointers mean "leave as is".
type HandleUpdates struct {
	LeetcodeUsername   *string
	CodeforcesUsername *string
	CodechefUsername   *string
}

// UpdateHandles applies the provided handle changes and returns the updated
// record. Applying the same updates twice yields the same stored record.
func (s *Service) UpdateHandles(ctx context.Context, id string, upd HandleUpdates) (*models.User, error) {
	fields := map[string]interface{}{}
	if upd.LeetcodeUsername != nil {
		fields["leetcodeUsername"] = strings.TrimSpace(*upd.LeetcodeUsername)
	}
	if upd.CodeforcesUsername != nil {
		fields["codeforcesUsername"] = strings.TrimSpace(*upd.CodeforcesUsername)
	}
	if upd.CodechefUsername != nil {
		fields["codechefUsername"] = strings.TrimSpace(*upd.CodechefUsername)
	}

	u, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// SetRefreshToken records the latest issued refresh token on the user. The
// stored value is a revocation mirror; the refresh flow does not compare
// against it.
func (s *Service) SetRefreshToken(ctx context.Context, id, refreshToken string) error {
	_, err := s.repo.Update(ctx, id, map[string]interface{}{"refreshToken": refreshToken})
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
