// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "termtalk/internal/delivery/context"
	"termtalk/internal/domain/entity"
	domainerrors "termtalk/internal/domain/errors"
	"termtalk/internal/domain/repository"
	"termtalk/internal/domain/service"
	"termtalk/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// Register hashes the password and creates the credential record.
// Neither the plaintext password nor the hash is ever logged or echoed back.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Starting registration", slog.String("username", input.Username))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		logger.Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		logger.Warn("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	logger.Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login verifies the credentials and issues a session token.
// Unknown username and wrong password fail with the identical error so the
// response cannot be used to enumerate usernames.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Debug("Starting login", slog.String("username", input.Username))

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logger.Warn("Login failed", slog.String("username", input.Username))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		logger.Warn("Login failed", slog.String("username", input.Username))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Username)
	if err != nil {
		logger.Error("Failed to generate session token", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	logger.Debug("User logged in", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{Token: token, User: user}, nil
}

// Authenticate verifies a raw Authorization header value of the form
// "Bearer <token>" and returns the identity bound into the token.
func (srv *userService) Authenticate(_ context.Context, bearerHeader string) (*usecase.Identity, error) {
	if bearerHeader == "" {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "authorization header is missing")
	}

	tokenString := strings.TrimPrefix(bearerHeader, "Bearer ")
	if tokenString == bearerHeader {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "authorization header is not a bearer token")
	}

	claims, err := srv.tokenService.ValidateToken(tokenString)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}

	return &usecase.Identity{
		UserID:   claims.UserID.String(),
		Username: claims.Username,
	}, nil
}

// GetUser loads the account behind a verified identity.
func (srv *userService) GetUser(ctx context.Context, identity *usecase.Identity) (*entity.User, error) {
	userID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "invalid user id in token")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidToken, "token references unknown user")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}
