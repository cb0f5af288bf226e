// Package account registers accounts, verifies credentials, and resolves
// session tokens back to accounts.
package account

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventra/internal/apperr"
	"inventra/internal/auth"
	"inventra/internal/models"
	"inventra/internal/services/audit"
)

// MinPasswordLength is the shortest accepted plaintext password.
const MinPasswordLength = 6

type RegisterInput struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is an authenticated account plus its freshly minted token.
type Session struct {
	User  *models.User
	Token string
}

type Service struct {
	db     *gorm.DB
	tokens *auth.Tokens
	audit  *audit.Recorder
	lg     *zap.SugaredLogger
}

func NewService(db *gorm.DB, tokens *auth.Tokens, rec *audit.Recorder, lg *zap.SugaredLogger) *Service {
	return &Service{db: db, tokens: tokens, audit: rec, lg: lg}
}

func validateRegister(in RegisterInput) error {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return apperr.Validation(apperr.MsgSignupFieldsRequired)
	}
	if len(in.Password) < MinPasswordLength {
		return apperr.Validation(apperr.MsgPasswordTooShort)
	}
	if in.Role != "" && !in.Role.Valid() {
		return apperr.Validation(apperr.MsgInvalidRole)
	}
	return nil
}

// checkExisting looks up a single account matching either field. A
// username collision is reported before an email collision.
func (s *Service) checkExisting(ctx context.Context, username, email string) error {
	var existing models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return apperr.Internal(err)
	}
	if existing.Username == username {
		return apperr.Conflict(apperr.MsgUsernameTaken)
	}
	return apperr.Conflict(apperr.MsgEmailTaken)
}

// Register creates an account and mints its first session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateRegister(in); err != nil {
		return nil, err
	}
	if err := s.checkExisting(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	u := &models.User{Username: in.Username, Email: in.Email, PasswordHash: hash, Role: role}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent registration
			if cerr := s.checkExisting(ctx, in.Username, in.Email); cerr != nil {
				return nil, cerr
			}
			return nil, apperr.Conflict(apperr.MsgUsernameTaken)
		}
		return nil, apperr.Internal(err)
	}
	tok, err := s.tokens.Sign(u.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	s.audit.Record(ctx, u.ID, "", audit.ActionRegister, map[string]any{"username": u.Username})
	s.lg.Infow("account registered", "user_id", u.ID, "role", u.Role)
	return &Session{User: u, Token: tok}, nil
}

// Login verifies credentials. An unknown email and a wrong password yield
// the same error.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, "email = ?", strings.TrimSpace(in.Email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Authentication(apperr.MsgInvalidCredentials)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := auth.CheckPassword(u.PasswordHash, in.Password); err != nil {
		return nil, apperr.Authentication(apperr.MsgInvalidCredentials)
	}
	tok, err := s.tokens.Sign(u.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	s.audit.Record(ctx, u.ID, "", audit.ActionLogin, nil)
	return &Session{User: &u, Token: tok}, nil
}

// Profile returns the account for id.
func (s *Service) Profile(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(apperr.MsgUserNotFound)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &u, nil
}

// ValidateSession checks the token signature and expiry, then that the
// account it names still exists.
func (s *Service) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperr.Authentication(apperr.MsgNoToken)
	}
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperr.Authentication(apperr.MsgInvalidToken)
	}
	return s.Profile(ctx, id)
}
