package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/domain/user"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInternal               = errors.New("internal error")
	ErrInvalidInput           = errors.New("invalid input")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
)

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, string, string, error)
	Login(ctx context.Context, in LoginInput) (user.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	users repository.UserRepository
	jwt   jwt.Service
}

func NewAuthUsecase(users repository.UserRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in RegisterInput) (user.User, string, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !isValidPassword(in.Password) {
		return user.User{}, "", "", ErrInvalidInput
	}

	exists, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	if exists {
		return user.User{}, "", "", ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}

	usr := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := u.users.CreateUser(ctx, usr); err != nil {
		if exists, exErr := u.users.ExistsByEmail(ctx, email); exErr == nil && exists {
			return user.User{}, "", "", ErrEmailAlreadyRegistered
		}
		return user.User{}, "", "", ErrInternal
	}

	if name := strings.TrimSpace(in.DisplayName); name != "" {
		_ = u.users.UpsertProfile(ctx, user.Profile{UserID: usr.ID, DisplayName: name})
	}

	created, err := u.users.GetUserByID(ctx, usr.ID)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	return u.issueTokens(sanitizeUser(created))
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (user.User, string, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, "", "", ErrInvalidCredentials
	}

	usr, err := u.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.User{}, "", "", ErrInvalidCredentials
		}
		return user.User{}, "", "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, "", "", ErrInvalidCredentials
	}

	return u.issueTokens(sanitizeUser(usr))
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", "", ErrInvalidRefreshToken
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}

func (u *Auth) issueTokens(usr user.User) (user.User, string, string, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	return usr, access, refresh, nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
