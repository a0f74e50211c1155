package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// Unique violations on a specific column; both match ErrAlreadyExists.
	ErrEmailTaken    = fmt.Errorf("%w: email", ErrAlreadyExists)
	ErrUsernameTaken = fmt.Errorf("%w: username", ErrAlreadyExists)
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this and expose sub-repositories per table.
type Store interface {
	Users() Users
	Tasks() Tasks
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Inside fn only the tx repositories may be used.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts u. Duplicate email or username yield ErrEmailTaken
	// or ErrUsernameTaken.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects an already normalised email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// UpdatePasswordHash sets password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, hash string, at time.Time) error

	// UpdateProfileAsset sets profile_pic and bumps updated_at.
	UpdateProfileAsset(ctx context.Context, userID, reference string, at time.Time) error
}

type Tasks interface {
	CreateTask(ctx context.Context, t domain.Task) error
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)

	// ListTasksByOwner returns the owner's tasks oldest first.
	ListTasksByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)

	MarkTaskCompleted(ctx context.Context, id string, at time.Time) error

	// DeleteTask removes the row; ErrNotFound if it did not exist.
	DeleteTask(ctx context.Context, id string) error
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSession(ctx context.Context, id string) (domain.Session, error)

	// DeleteSession is a no-op for unknown ids.
	DeleteSession(ctx context.Context, id string) error

	// DeleteOtherSessions drops every session of userID except keepID,
	// e.g. after a password change. An empty keepID drops them all.
	DeleteOtherSessions(ctx context.Context, userID, keepID string) (int64, error)

	// DeleteExpiredSessions removes sessions expired at now and reports how
	// many went.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
