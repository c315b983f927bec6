// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, logout and profile updates.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server/auth"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobportal/internal/server/uploads"
	validation "github.com/go-ozzo/ozzo-validation"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// SessionIssuer is the part of auth.TokenIssuer the service depends on.
type SessionIssuer interface {
	Issue(userID string) (string, error)
	SessionCookie(token string) auth.CookieDirective
	Invalidate() auth.CookieDirective
}

type RegisterInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
	Role        models.Role
}

// Validate requires all five fields and a known role.
func (in RegisterInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required),
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.PhoneNumber, validation.Required),
		validation.Field(&in.Password, validation.Required),
		validation.Field(&in.Role, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w (%v)", common.ErrMissingFields, err)
	}
	if err := validation.Validate(in.Role, validation.In(roleValues()...)); err != nil {
		return fmt.Errorf("%w %q", common.ErrInvalidRole, in.Role)
	}
	if len(in.Password) > maxPasswordBytes {
		return common.ErrPasswordTooLong
	}
	return nil
}

type LoginInput struct {
	Email    string
	Password string
	Role     models.Role
}

func (in LoginInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
		validation.Field(&in.Role, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w (%v)", common.ErrMissingFields, err)
	}
	return nil
}

// LoginResult is what a successful login hands to the transport.
type LoginResult struct {
	User   *models.PublicUser
	Token  string
	Cookie auth.CookieDirective
}

// UpdateProfileInput is a partial update. A nil field is absent; an empty
// string is treated as absent too, so fields cannot be cleared.
type UpdateProfileInput struct {
	FullName    *string
	Email       *string
	PhoneNumber *string
	Bio         *string
	// Skills is a comma-separated list, split without trimming.
	Skills *string
	// Upload is accepted and logged but not stored on the record.
	Upload *uploads.Object
}

// UserService implements the account lifecycle. It keeps no state between
// calls.
type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	sessions    SessionIssuer
	log         logging.Logger
}

// NewUserService constructs a UserService.
func NewUserService(m repomanager.RepositoryManager, hasher auth.PasswordHasher, sessions SessionIssuer, log logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		hasher:      hasher,
		sessions:    sessions,
		log:         log.With("module", "users"),
	}
}

// Register creates an account with an empty profile. It does not sign the
// user in.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.PublicUser, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users()

	_, err := repo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("email %s: %w", in.Email, common.ErrorAlreadyExists)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error looking up email: %w", err)
	}

	digest, err := s.hasher.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	// the unique index catches a concurrent registration that passed the
	// lookup above; it surfaces as ErrorAlreadyExists as well
	u, err := repo.Create(ctx, &models.User{
		FullName:    in.FullName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Password:    digest,
		Role:        in.Role,
		Profile:     models.Profile{Skills: []string{}},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return u.Public(), nil
}

// Login checks the credentials and the asserted role, in that order, and
// issues a session token.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users().GetUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	if !s.hasher.CheckPassword(in.Password, user.Password) {
		return nil, common.ErrorUnauthorized
	}

	if user.Role != in.Role {
		s.log.Info(ctx, "login with wrong role", "user_id", user.ID, "role", in.Role)
		return nil, common.ErrorForbidden
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing session token: %w", err)
	}

	return &LoginResult{
		User:   user.Public(),
		Token:  token,
		Cookie: s.sessions.SessionCookie(token),
	}, nil
}

// Logout never fails and performs no identity check. Tokens issued earlier
// remain valid until they expire.
func (s *UserService) Logout(ctx context.Context) auth.CookieDirective {
	return s.sessions.Invalidate()
}

// UpdateProfile applies the present fields of in to the record of userID.
// Role and password are never touched.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*models.PublicUser, error) {
	if userID == "" {
		return nil, common.ErrorNotFound
	}

	repo := s.repomanager.Users()

	user, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	if v, ok := present(in.FullName); ok {
		user.FullName = v
	}
	if v, ok := present(in.Email); ok {
		user.Email = v
	}
	if v, ok := present(in.PhoneNumber); ok {
		user.PhoneNumber = v
	}
	if v, ok := present(in.Bio); ok {
		user.Profile.Bio = v
	}
	if v, ok := present(in.Skills); ok {
		user.Profile.Skills = strings.Split(v, ",")
	}

	if in.Upload != nil {
		s.log.Info(ctx, "profile upload received", "user_id", userID, "key", in.Upload.Key, "size", in.Upload.Size)
	}

	updated, err := repo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return updated.Public(), nil
}

func present(v *string) (string, bool) {
	if v == nil || *v == "" {
		return "", false
	}
	return *v, true
}

func roleValues() []interface{} {
	out := make([]interface{}, 0, len(models.Roles))
	for _, r := range models.Roles {
		out = append(out, r)
	}
	return out
}
