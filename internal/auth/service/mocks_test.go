package service

import (
	"context"
	"io"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/AlibekovAA/tasklist/backend/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/tasklist/backend/internal/common/crypto"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
	userdomain "github.com/AlibekovAA/tasklist/backend/internal/user/domain"
	userrepo "github.com/AlibekovAA/tasklist/backend/internal/user/repository"
)

const testSecret = "test-secret-test-secret-test-secret"

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type mockUserRepo struct {
	createFunc         func(ctx context.Context, user userdomain.User) error
	findByUsernameFunc func(ctx context.Context, username string) (userdomain.User, error)
	updatePasswordFunc func(ctx context.Context, id userdomain.ID, password userdomain.Password) error
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id userdomain.ID, password userdomain.Password) error {
	if m.updatePasswordFunc != nil {
		return m.updatePasswordFunc(ctx, id, password)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "generated-id", nil
}

func newTestVerifier() *PasswordVerifier {
	return NewPasswordVerifier(&commoncrypto.BcryptHasher{Cost: bcrypt.MinCost})
}

func newTestService(repo userrepo.Repository) (*AuthService, *TokenIssuer) {
	clk := clock.NewMockClock(fixedNow)
	ids := commoncrypto.NewUUIDGenerator()
	tokens := NewTokenIssuer(testSecret, ids, time.Hour, clk)
	log := logger.NewWithWriter(io.Discard, "test", "error")
	return NewAuthService(repo, newTestVerifier(), tokens, ids, clk, log), tokens
}
