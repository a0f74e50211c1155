// Package storetest holds store helpers shared by tests in other packages.
package storetest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
)

// ErrInjected is returned by every operation a FailingStore was told to fail.
var ErrInjected = errors.New("storetest: injected failure")

// FailingStore wraps a working store and fails the named operations with
// ErrInjected. Operation names are the repository method names, plus "Tx"
// and "WithTx" for opening a transaction. Repositories reached through a
// transaction fail the same way.
type FailingStore struct {
	store.Store

	mu      sync.RWMutex
	failing map[string]bool
}

func Wrap(st store.Store) *FailingStore {
	return &FailingStore{Store: st, failing: map[string]bool{}}
}

// Fail starts failing ops. It is safe to call while requests are in flight.
func (f *FailingStore) Fail(ops ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, op := range ops {
		f.failing[op] = true
	}
}

// Heal stops failing every operation.
func (f *FailingStore) Heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.failing)
}

func (f *FailingStore) check(op string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.failing[op] {
		return ErrInjected
	}
	return nil
}

func (f *FailingStore) Users() store.Users       { return users{f.Store.Users(), f} }
func (f *FailingStore) Tasks() store.Tasks       { return tasks{f.Store.Tasks(), f} }
func (f *FailingStore) Sessions() store.Sessions { return sessions{f.Store.Sessions(), f} }

func (f *FailingStore) Tx(ctx context.Context) (store.Tx, error) {
	if err := f.check("Tx"); err != nil {
		return nil, err
	}
	tx, err := f.Store.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return failingTx{tx, f}, nil
}

func (f *FailingStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	if err := f.check("WithTx"); err != nil {
		return err
	}
	return f.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(failingTx{tx, f})
	})
}

type failingTx struct {
	store.Tx
	f *FailingStore
}

func (t failingTx) Users() store.Users       { return users{t.Tx.Users(), t.f} }
func (t failingTx) Tasks() store.Tasks       { return tasks{t.Tx.Tasks(), t.f} }
func (t failingTx) Sessions() store.Sessions { return sessions{t.Tx.Sessions(), t.f} }

type users struct {
	store.Users
	f *FailingStore
}

func (u users) CreateUser(ctx context.Context, usr domain.User) error {
	if err := u.f.check("CreateUser"); err != nil {
		return err
	}
	return u.Users.CreateUser(ctx, usr)
}

func (u users) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if err := u.f.check("GetUserByID"); err != nil {
		return domain.User{}, err
	}
	return u.Users.GetUserByID(ctx, id)
}

func (u users) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := u.f.check("GetUserByEmail"); err != nil {
		return domain.User{}, err
	}
	return u.Users.GetUserByEmail(ctx, email)
}

func (u users) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	if err := u.f.check("GetUserByUsername"); err != nil {
		return domain.User{}, err
	}
	return u.Users.GetUserByUsername(ctx, username)
}

func (u users) UpdatePasswordHash(ctx context.Context, userID, hash string, at time.Time) error {
	if err := u.f.check("UpdatePasswordHash"); err != nil {
		return err
	}
	return u.Users.UpdatePasswordHash(ctx, userID, hash, at)
}

func (u users) UpdateProfileAsset(ctx context.Context, userID, reference string, at time.Time) error {
	if err := u.f.check("UpdateProfileAsset"); err != nil {
		return err
	}
	return u.Users.UpdateProfileAsset(ctx, userID, reference, at)
}

type tasks struct {
	store.Tasks
	f *FailingStore
}

func (t tasks) CreateTask(ctx context.Context, task domain.Task) error {
	if err := t.f.check("CreateTask"); err != nil {
		return err
	}
	return t.Tasks.CreateTask(ctx, task)
}

func (t tasks) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	if err := t.f.check("GetTaskByID"); err != nil {
		return domain.Task{}, err
	}
	return t.Tasks.GetTaskByID(ctx, id)
}

func (t tasks) ListTasksByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	if err := t.f.check("ListTasksByOwner"); err != nil {
		return nil, err
	}
	return t.Tasks.ListTasksByOwner(ctx, ownerID)
}

func (t tasks) MarkTaskCompleted(ctx context.Context, id string, at time.Time) error {
	if err := t.f.check("MarkTaskCompleted"); err != nil {
		return err
	}
	return t.Tasks.MarkTaskCompleted(ctx, id, at)
}

func (t tasks) DeleteTask(ctx context.Context, id string) error {
	if err := t.f.check("DeleteTask"); err != nil {
		return err
	}
	return t.Tasks.DeleteTask(ctx, id)
}

type sessions struct {
	store.Sessions
	f *FailingStore
}

func (s sessions) CreateSession(ctx context.Context, sess domain.Session) error {
	if err := s.f.check("CreateSession"); err != nil {
		return err
	}
	return s.Sessions.CreateSession(ctx, sess)
}

func (s sessions) GetSession(ctx context.Context, id string) (domain.Session, error) {
	if err := s.f.check("GetSession"); err != nil {
		return domain.Session{}, err
	}
	return s.Sessions.GetSession(ctx, id)
}

func (s sessions) DeleteSession(ctx context.Context, id string) error {
	if err := s.f.check("DeleteSession"); err != nil {
		return err
	}
	return s.Sessions.DeleteSession(ctx, id)
}

func (s sessions) DeleteOtherSessions(ctx context.Context, userID, keepID string) (int64, error) {
	if err := s.f.check("DeleteOtherSessions"); err != nil {
		return 0, err
	}
	return s.Sessions.DeleteOtherSessions(ctx, userID, keepID)
}

func (s sessions) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	if err := s.f.check("DeleteExpiredSessions"); err != nil {
		return 0, err
	}
	return s.Sessions.DeleteExpiredSessions(ctx, now)
}
