package service

import (
	"context"
	"errors"

	"github.com/AlibekovAA/tasklist/backend/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/tasklist/backend/internal/common/crypto"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
	"github.com/AlibekovAA/tasklist/backend/internal/common/validation"
	userdomain "github.com/AlibekovAA/tasklist/backend/internal/user/domain"
	userrepo "github.com/AlibekovAA/tasklist/backend/internal/user/repository"
)

type AuthService struct {
	repo        userrepo.Repository
	verifier    *PasswordVerifier
	tokens      *TokenIssuer
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	verifier *PasswordVerifier,
	tokens *TokenIssuer,
	idGenerator commoncrypto.IDGenerator,
	clock clock.Clock,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:        repo,
		verifier:    verifier,
		tokens:      tokens,
		idGenerator: idGenerator,
		clock:       clock,
		log:         log,
	}
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token  string
	UserID userdomain.ID
}

func (s *AuthService) Register(ctx context.Context, input Credentials) error {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := validation.Struct(input); err != nil {
		recordRegistration("invalid")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
			"missing":  validation.MissingFields(err),
		}).Warn("register validation failed")
		return ErrMissingFields
	}

	password, err := s.verifier.Hash(input.Password)
	if err != nil {
		recordRegistration("error")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return newInternalError("PASSWORD_HASH_FAILED", err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		recordRegistration("error")
		return newInternalError("ID_GENERATION_FAILED", err)
	}

	user := userdomain.User{
		ID:        userdomain.ID(id),
		Username:  input.Username,
		Password:  password,
		CreatedAt: s.clock.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrUsernameAlreadyExists) {
			recordRegistration("conflict")
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: already exists")
			return ErrUsernameTaken
		}
		recordRegistration("error")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return newInternalError("USER_CREATE_FAILED", err)
	}

	recordRegistration("success")
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "register_success",
	}).Info("register success")

	return nil
}

func (s *AuthService) Login(ctx context.Context, input Credentials) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	// Missing fields cannot match any user.
	if err := validation.Struct(input); err != nil {
		recordLogin("invalid")
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			recordLogin("unknown_user")
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_user_not_found",
			}).Warn("login failed: user not found")
			return LoginResult{}, ErrInvalidCredentials
		}
		recordLogin("error")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_lookup_failed",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, newInternalError("USER_LOOKUP_FAILED", err)
	}

	switch s.verifier.Verify(input.Password, user.Password) {
	case Match:
	case MatchLegacy:
		s.migratePassword(ctx, user, input.Password)
	default:
		recordLogin("invalid_password")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  string(user.ID),
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		return LoginResult{}, ErrInvalidCredentials
	}

	token, _, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		recordLogin("error")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return LoginResult{}, newInternalError("TOKEN_ISSUE_FAILED", err)
	}

	recordLogin("success")
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")

	return LoginResult{Token: token, UserID: user.ID}, nil
}

// migratePassword replaces a legacy plaintext record with a fresh hash.
// Failures are logged and the login proceeds; the next login retries.
func (s *AuthService) migratePassword(ctx context.Context, user userdomain.User, plaintext string) {
	fields := logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
	}

	hashed, err := s.verifier.Hash(plaintext)
	if err == nil {
		err = s.repo.UpdatePassword(ctx, user.ID, hashed)
	}
	if err != nil {
		recordPasswordMigration("error")
		fields["action"] = "password_migration_failed"
		s.log.WithFields(ctx, fields).Errorf("password migration failed: %v", err)
		return
	}

	recordPasswordMigration("success")
	fields["action"] = "password_migrated"
	s.log.WithFields(ctx, fields).Info("migrated legacy plaintext password to bcrypt")
}
