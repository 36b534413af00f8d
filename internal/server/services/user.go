// Package services contains server-side business logic. This file implements
// UserService, which handles registration, profile changes and login.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/dmitrijs2005/doclife/internal/cryptox"
	"github.com/dmitrijs2005/doclife/internal/server/auth"
	"github.com/dmitrijs2005/doclife/internal/server/config"
	"github.com/dmitrijs2005/doclife/internal/server/mail"
	"github.com/dmitrijs2005/doclife/internal/server/models"
	"github.com/dmitrijs2005/doclife/internal/server/repositories/repomanager"
)

// LoginResult is returned on successful login.
type LoginResult struct {
	UserID      string
	Name        string
	AccessToken string
}

// UserService provides account operations:
// - Register: create users with an Argon2id credential hash
// - Login: verify credentials and mint an access token
// - Get, UpdatePassword, Delete: manage an existing account
type UserService struct {
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register validates the input and creates a user. A taken email yields
// common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, mobile, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	addr, err := mail.ValidateAddress(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	user := &models.User{
		Name:         name,
		MobileNumber: strings.TrimSpace(mobile),
		Email:        strings.ToLower(addr),
		PasswordHash: cryptox.HashPassword(password),
	}

	u, err := s.repomanager.Users().Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users().GetByID(ctx, id)
}

// UpdatePassword replaces the credential hash and returns the updated user.
func (s *UserService) UpdatePassword(ctx context.Context, id, password string) (*models.User, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	var user *models.User
	err := s.repomanager.WithTx(ctx, nil, func(ctx context.Context, r repomanager.Repositories) error {
		if err := r.Users().UpdatePasswordHash(ctx, id, cryptox.HashPassword(password)); err != nil {
			return err
		}
		var err error
		user, err = r.Users().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user and, through the store, all of their documents.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Users().Delete(ctx, id)
}

// Login verifies the password of the user with the given display name and,
// on success, returns a new access token.
func (s *UserService) Login(ctx context.Context, name, password string) (*LoginResult, error) {
	user, err := s.repomanager.Users().GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	ok, err := cryptox.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	return &LoginResult{UserID: user.ID, Name: user.Name, AccessToken: token}, nil
}
