package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/internal/tasks/store/storetest"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/stretchr/testify/require"
)

// breakStore points every service at a wrapper that fails ops.
func (h *harness) breakStore(ops ...string) *storetest.FailingStore {
	fs := storetest.Wrap(h.store)
	fs.Fail(ops...)
	h.creds.Store = fs
	h.sessions.Store = fs
	h.tasks.Store = fs
	h.users.Store = fs
	h.profile.Store = fs
	return fs
}

func TestStoreFailuresAreInfrastructureErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("login", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, "alice", "alice@example.com", "pw")
		h.breakStore("GetUserByEmail")

		_, token, err := h.sessions.Login(ctx, "alice@example.com", "pw")
		require.ErrorIs(t, err, service.ErrInfrastructure)
		require.ErrorIs(t, err, storetest.ErrInjected)
		require.NotErrorIs(t, err, service.ErrInvalidCredentials)
		require.Empty(t, token)
	})

	t.Run("login session insert", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, "alice", "alice@example.com", "pw")
		h.breakStore("CreateSession")

		_, _, err := h.sessions.Login(ctx, "alice@example.com", "pw")
		require.ErrorIs(t, err, service.ErrInfrastructure)
		require.Equal(t, 0, countSessions(t, h.store))
	})

	t.Run("resolve", func(t *testing.T) {
		h := newHarness(t)
		h.register(t, "alice", "alice@example.com", "pw")
		_, token := h.login(t, "alice@example.com", "pw")
		h.breakStore("GetSession")

		_, err := h.sessions.Resolve(ctx, token)
		require.ErrorIs(t, err, service.ErrInfrastructure)
		require.NotErrorIs(t, err, service.ErrUnauthenticated)
	})

	t.Run("complete task lookup", func(t *testing.T) {
		h := newHarness(t)
		u := h.register(t, "alice", "alice@example.com", "pw")
		task, err := h.tasks.CreateTask(ctx, u.ID, "write report", "")
		require.NoError(t, err)
		h.breakStore("GetTaskByID")

		_, err = h.tasks.CompleteTask(ctx, task.ID, u.ID)
		require.ErrorIs(t, err, service.ErrInfrastructure)
		require.NotErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("complete task write", func(t *testing.T) {
		h := newHarness(t)
		u := h.register(t, "alice", "alice@example.com", "pw")
		task, err := h.tasks.CreateTask(ctx, u.ID, "write report", "")
		require.NoError(t, err)
		fs := h.breakStore("MarkTaskCompleted")

		_, err = h.tasks.CompleteTask(ctx, task.ID, u.ID)
		require.ErrorIs(t, err, service.ErrInfrastructure)

		fs.Heal()
		tasks, err := h.tasks.ListTasks(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.False(t, tasks[0].Completed)
	})

	t.Run("delete task", func(t *testing.T) {
		h := newHarness(t)
		u := h.register(t, "alice", "alice@example.com", "pw")
		task, err := h.tasks.CreateTask(ctx, u.ID, "write report", "")
		require.NoError(t, err)
		fs := h.breakStore("WithTx")

		err = h.tasks.DeleteTask(ctx, task.ID, u.ID)
		require.ErrorIs(t, err, service.ErrInfrastructure)

		fs.Heal()
		tasks, err := h.tasks.ListTasks(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
	})

	t.Run("list tasks", func(t *testing.T) {
		h := newHarness(t)
		u := h.register(t, "alice", "alice@example.com", "pw")
		h.breakStore("ListTasksByOwner")

		_, err := h.tasks.ListTasks(ctx, u.ID)
		require.ErrorIs(t, err, service.ErrInfrastructure)
	})

	t.Run("register", func(t *testing.T) {
		h := newHarness(t)
		h.breakStore("CreateUser")

		_, err := h.creds.Register(ctx, "alice", "alice@example.com", "pw")
		require.ErrorIs(t, err, service.ErrInfrastructure)
		require.Equal(t, 0, countUsers(t, h.store))
	})
}

func TestDomainErrorsSurviveInfrastructureWrapping(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.register(t, "alice", "alice@example.com", "pw")
	h.breakStore()

	// An unknown task through the wrapped store is still plain not found.
	err := h.tasks.DeleteTask(ctx, idx.New().String(), u.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	require.NotErrorIs(t, err, service.ErrInfrastructure)
}

func TestLoginWithCorruptStoredHash(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.register(t, "alice", "alice@example.com", "pw")

	corrupt := "$argon2id$v=19$m=19456,t=2,p=0$c2FsdHNhbHQ$aGFzaA"
	require.NoError(t, h.store.Users().UpdatePasswordHash(ctx, u.ID, corrupt, h.clock.Now()))

	require.NotPanics(t, func() {
		_, _, err := h.sessions.Login(ctx, "alice@example.com", "pw")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
