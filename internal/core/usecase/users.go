package usecase

import (
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"context"
	"errors"
	"fmt"
	"time"
)

type LoginUserUseCase struct {
	users          port.UserStoragePort
	tokenSvc       port.TokenServicePort
	accessTokenTTL time.Duration
}

func NewLoginUserUseCase(users port.UserStoragePort, tokenSvc port.TokenServicePort, accessTokenTTL time.Duration) *LoginUserUseCase {
	return &LoginUserUseCase{
		users:          users,
		tokenSvc:       tokenSvc,
		accessTokenTTL: accessTokenTTL,
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, username, password string) (*domain.User, string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LoginUser",
		"username": username,
	})
	ucLogger.Info("Use case started: attempting to login user", nil)

	user, err := uc.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// не раскрываем, существует ли пользователь
			ucLogger.Warn("Login failed: user not found", nil)
			return nil, "", domain.ErrInvalidCredentials
		}
		ucLogger.Error("Storage failed to find user by username", err, nil)
		return nil, "", fmt.Errorf("internal server error: %w", err)
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_id": user.ID})

	if !user.CheckPassword(password) {
		ucLogger.Warn("Login failed: invalid credentials", nil)
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, user, uc.accessTokenTTL)
	if err != nil {
		ucLogger.Error("Failed to generate token after successful login", err, nil)
		return nil, "", err
	}

	ucLogger.Info("Use case finished: user logged in successfully", nil)
	return user, token, nil
}

type ValidateTokenUseCase struct {
	tokenSvc port.TokenServicePort
}

func NewValidateTokenUseCase(tokenSvc port.TokenServicePort) *ValidateTokenUseCase {
	return &ValidateTokenUseCase{tokenSvc: tokenSvc}
}

func (uc *ValidateTokenUseCase) Execute(ctx context.Context, tokenString string) (*domain.Claims, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ValidateToken"})

	claims, err := uc.tokenSvc.ValidateToken(ctx, tokenString)
	if err != nil {
		ucLogger.Warn("Token validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	ucLogger.Debug("Token validated", port.Fields{"user_id": claims.UserID})
	return claims, nil
}

type CreateUserUseCase struct {
	users port.UserStoragePort
}

func NewCreateUserUseCase(users port.UserStoragePort) *CreateUserUseCase {
	return &CreateUserUseCase{users: users}
}

// Execute хэширует пароль и сохраняет пользователя; хранилище получает уже хэш
func (uc *CreateUserUseCase) Execute(ctx context.Context, username, password string) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateUser",
		"username": username,
	})
	ucLogger.Info("Use case started: attempting to create user", nil)

	if err := requireFields(field{"username", username}, field{"password", password}); err != nil {
		return nil, err
	}

	hashed, err := domain.HashPassword(password)
	if err != nil {
		ucLogger.Error("Failed to hash password", err, nil)
		return nil, err
	}

	user, err := uc.users.CreateUser(ctx, domain.NewUserInput{Username: username, Password: hashed})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			ucLogger.Warn("User creation failed: username already in use", nil)
		} else {
			ucLogger.Error("Storage failed to create user", err, nil)
		}
		return nil, err
	}

	ucLogger.Info("Use case finished: user created successfully", port.Fields{"user_id": user.ID})
	return user, nil
}

type GetUserUseCase struct {
	users port.UserStoragePort
}

func NewGetUserUseCase(users port.UserStoragePort) *GetUserUseCase {
	return &GetUserUseCase{users: users}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.users.GetUser(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		contextkeys.LoggerFromContext(ctx).Error("Storage failed to get user", err, port.Fields{"use_case": "GetUser", "user_id": id})
	}
	return user, err
}

// EnsureAdminUseCase создает учетную запись администратора при старте, если ее еще нет
type EnsureAdminUseCase struct {
	users      port.UserStoragePort
	createUser *CreateUserUseCase
}

func NewEnsureAdminUseCase(users port.UserStoragePort) *EnsureAdminUseCase {
	return &EnsureAdminUseCase{users: users, createUser: NewCreateUserUseCase(users)}
}

// Execute возвращает true, если пользователь был создан
func (uc *EnsureAdminUseCase) Execute(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	_, err := uc.users.GetUserByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	if _, err := uc.createUser.Execute(ctx, username, password); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
