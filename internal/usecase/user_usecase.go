package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"skillswap/internal/domain/user"
	"skillswap/internal/infrastructure/linkpreview"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

const (
	maxDisplayNameLen = 80
	maxBioLen         = 1000

	linkPreviewTimeout = 10 * time.Second
)

type UpdateProfileInput struct {
	DisplayName  *string
	Bio          *string
	ExternalLink *string
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.Profile, error)
}

type User struct {
	users    repository.UserRepository
	previews linkpreview.Fetcher
	logger   *log.Logger
}

func NewUserUsecase(users repository.UserRepository, previews linkpreview.Fetcher, logger *log.Logger) *User {
	return &User{users: users, previews: previews, logger: logger}
}

func (u *User) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrUnauthorized
	}

	p, err := u.users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.Profile{}, ErrUserNotFound
		}
		return user.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *User) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrUnauthorized
	}

	p, err := u.users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.Profile{}, ErrUserNotFound
		}
		return user.Profile{}, ErrInternal
	}

	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" || len(name) > maxDisplayNameLen {
			return user.Profile{}, ErrInvalidInput
		}
		p.DisplayName = name
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if len(bio) > maxBioLen {
			return user.Profile{}, ErrInvalidInput
		}
		p.Bio = bio
	}
	if in.ExternalLink != nil {
		link := strings.TrimSpace(*in.ExternalLink)
		if link != p.ExternalLink {
			p.ExternalLink = link
			p.LinkTitle = ""
			p.LinkDescription = ""
			if link != "" {
				u.fetchPreview(ctx, &p)
			}
		}
	}

	if err := u.users.UpsertProfile(ctx, p); err != nil {
		return user.Profile{}, ErrInternal
	}

	updated, err := u.users.GetProfile(ctx, userID)
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	return updated, nil
}

// fetchPreview is best effort: a dead or slow link never fails the update.
func (u *User) fetchPreview(ctx context.Context, p *user.Profile) {
	if u.previews == nil {
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, linkPreviewTimeout)
	defer cancel()

	preview, err := u.previews.Fetch(fetchCtx, p.ExternalLink)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Profile] link preview failed | user_id=%s err=%v", p.UserID, err)
		}
		return
	}
	p.LinkTitle = preview.Title
	p.LinkDescription = preview.Description
}
