package usecase

import (
	"context"
	"errors"

	"skillswap/internal/domain/connection"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrConnectionNotFound = errors.New("connection not found")
	ErrConnectionExists   = errors.New("connection already exists")
	ErrSelfConnection     = errors.New("cannot connect to yourself")
)

// Notifier pushes connection events to online users. Delivery is best-effort;
// an offline addressee simply misses the push.
type Notifier interface {
	NotifyConnectionRequest(c connection.Connection)
	NotifyConnectionResponse(c connection.Connection)
}

type ConnectionUsecase interface {
	SendRequest(ctx context.Context, requesterID, addresseeID uuid.UUID, message string) (connection.Connection, error)
	Respond(ctx context.Context, userID, connectionID uuid.UUID, accept bool) (connection.Connection, error)
	List(ctx context.Context, userID uuid.UUID) ([]connection.Connection, error)
}

type Connections struct {
	connections repository.ConnectionRepository
	users       repository.UserRepository
	notifier    Notifier
}

func NewConnectionUsecase(connections repository.ConnectionRepository, users repository.UserRepository, notifier Notifier) *Connections {
	return &Connections{connections: connections, users: users, notifier: notifier}
}

func (u *Connections) SendRequest(ctx context.Context, requesterID, addresseeID uuid.UUID, message string) (connection.Connection, error) {
	if requesterID == uuid.Nil {
		return connection.Connection{}, ErrUnauthorized
	}
	if addresseeID == uuid.Nil {
		return connection.Connection{}, ErrInvalidInput
	}
	if requesterID == addresseeID {
		return connection.Connection{}, ErrSelfConnection
	}

	if _, err := u.users.GetUserByID(ctx, addresseeID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return connection.Connection{}, ErrUserNotFound
		}
		return connection.Connection{}, ErrInternal
	}

	created, err := u.connections.Create(ctx, connection.Connection{
		ID:          uuid.New(),
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      connection.StatusPending,
		Message:     message,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConnectionExists) {
			return connection.Connection{}, ErrConnectionExists
		}
		return connection.Connection{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.NotifyConnectionRequest(created)
	}
	return created, nil
}

// Respond accepts or declines a pending request. Only the addressee may
// respond; the repository enforces both the ownership and pending checks.
func (u *Connections) Respond(ctx context.Context, userID, connectionID uuid.UUID, accept bool) (connection.Connection, error) {
	if userID == uuid.Nil {
		return connection.Connection{}, ErrUnauthorized
	}
	if connectionID == uuid.Nil {
		return connection.Connection{}, ErrInvalidInput
	}

	status := connection.StatusDeclined
	if accept {
		status = connection.StatusAccepted
	}

	updated, err := u.connections.UpdateStatus(ctx, connectionID, userID, status)
	if err != nil {
		if errors.Is(err, repository.ErrConnectionNotFound) {
			return connection.Connection{}, ErrConnectionNotFound
		}
		return connection.Connection{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.NotifyConnectionResponse(updated)
	}
	return updated, nil
}

func (u *Connections) List(ctx context.Context, userID uuid.UUID) ([]connection.Connection, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.connections.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
