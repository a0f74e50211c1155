package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/internal/tasks/store/drivers/sqlite"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedUser(t *testing.T, st store.Store, username, email string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$stub",
		ProfilePic:   domain.DefaultProfilePic,
		CreatedAt:    t0,
		UpdatedAt:    t0,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestFileBackedStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")
	st, err := sqlite.NewStore(sqlite.DSN(path))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	u := seedUser(t, st, "alice", "a@x.com")
	require.NoError(t, st.Close())

	reopened, err := sqlite.NewStore(sqlite.DSN(path))
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.ApplyMigrations())

	got, err := reopened.Users().GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	alice := seedUser(t, st, "alice", "a@x.com")

	t.Run("lookups round trip", func(t *testing.T) {
		byID, err := st.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, alice, byID)

		byEmail, err := st.Users().GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.Equal(t, alice.ID, byEmail.ID)

		byName, err := st.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, alice.ID, byName.ID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := st.Users().GetUserByEmail(ctx, "nobody@x.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := alice
		dup.ID = idx.New().String()
		dup.Username = "alice2"
		err := st.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrEmailTaken)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup := alice
		dup.ID = idx.New().String()
		dup.Email = "other@x.com"
		require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrUsernameTaken)
	})

	t.Run("updates", func(t *testing.T) {
		later := t0.Add(time.Hour)
		require.NoError(t, st.Users().UpdatePasswordHash(ctx, alice.ID, "$argon2id$new", later))
		require.NoError(t, st.Users().UpdateProfileAsset(ctx, alice.ID, "me.png", later))

		got, err := st.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "$argon2id$new", got.PasswordHash)
		require.Equal(t, "me.png", got.ProfilePic)
		require.Equal(t, later, got.UpdatedAt)
		require.Equal(t, t0, got.CreatedAt)

		require.ErrorIs(t, st.Users().UpdateProfileAsset(ctx, "missing", "x.png", later), store.ErrNotFound)
	})
}

func TestTasks(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	alice := seedUser(t, st, "alice", "a@x.com")
	bob := seedUser(t, st, "bob", "b@x.com")

	var ids []string
	for i, title := range []string{"first", "second", "third"} {
		task := domain.Task{
			ID:        idx.New().String(),
			OwnerID:   alice.ID,
			Title:     title,
			CreatedAt: t0.Add(time.Duration(i) * time.Second),
			UpdatedAt: t0,
		}
		require.NoError(t, st.Tasks().CreateTask(ctx, task))
		ids = append(ids, task.ID)
	}
	require.NoError(t, st.Tasks().CreateTask(ctx, domain.Task{
		ID: idx.New().String(), OwnerID: bob.ID, Title: "bob's", CreatedAt: t0, UpdatedAt: t0,
	}))

	t.Run("list is owner scoped and ordered", func(t *testing.T) {
		list, err := st.Tasks().ListTasksByOwner(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for i, task := range list {
			require.Equal(t, ids[i], task.ID)
			require.Equal(t, alice.ID, task.OwnerID)
			require.False(t, task.Completed)
		}

		none, err := st.Tasks().ListTasksByOwner(ctx, "nobody")
		require.NoError(t, err)
		require.NotNil(t, none)
		require.Empty(t, none)
	})

	t.Run("complete and delete", func(t *testing.T) {
		require.NoError(t, st.Tasks().MarkTaskCompleted(ctx, ids[0], t0.Add(time.Minute)))
		got, err := st.Tasks().GetTaskByID(ctx, ids[0])
		require.NoError(t, err)
		require.True(t, got.Completed)

		require.NoError(t, st.Tasks().DeleteTask(ctx, ids[1]))
		_, err = st.Tasks().GetTaskByID(ctx, ids[1])
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, st.Tasks().DeleteTask(ctx, ids[1]), store.ErrNotFound)
		require.ErrorIs(t, st.Tasks().MarkTaskCompleted(ctx, ids[1], t0), store.ErrNotFound)
	})

	t.Run("owner must exist", func(t *testing.T) {
		err := st.Tasks().CreateTask(ctx, domain.Task{
			ID: idx.New().String(), OwnerID: "ghost", Title: "orphan", CreatedAt: t0, UpdatedAt: t0,
		})
		require.Error(t, err)
	})

	t.Run("blank title rejected by schema", func(t *testing.T) {
		err := st.Tasks().CreateTask(ctx, domain.Task{
			ID: idx.New().String(), OwnerID: alice.ID, Title: "   ", CreatedAt: t0, UpdatedAt: t0,
		})
		require.Error(t, err)
	})
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	alice := seedUser(t, st, "alice", "a@x.com")

	mk := func(expires time.Time) domain.Session {
		s := domain.Session{
			ID:        idx.New().String(),
			UserID:    alice.ID,
			TokenHash: "fp",
			CreatedAt: t0,
			ExpiresAt: expires,
		}
		require.NoError(t, st.Sessions().CreateSession(ctx, s))
		return s
	}

	live := mk(t0.Add(24 * time.Hour))
	stale := mk(t0.Add(-time.Minute))
	other := mk(t0.Add(24 * time.Hour))

	got, err := st.Sessions().GetSession(ctx, live.ID)
	require.NoError(t, err)
	require.Equal(t, live, got)

	n, err := st.Sessions().DeleteExpiredSessions(ctx, t0)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	_, err = st.Sessions().GetSession(ctx, stale.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err = st.Sessions().DeleteOtherSessions(ctx, alice.ID, live.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	_, err = st.Sessions().GetSession(ctx, other.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.Sessions().DeleteSession(ctx, live.ID))
	require.NoError(t, st.Sessions().DeleteSession(ctx, live.ID), "deleting twice is fine")
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	alice := seedUser(t, st, "alice", "a@x.com")
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().UpdateProfileAsset(ctx, alice.ID, "rolled-back.png", t0))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := st.Users().GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultProfilePic, got.ProfilePic)

	require.NoError(t, st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().UpdateProfileAsset(ctx, alice.ID, "committed.png", t0)
	}))
	got, err = st.Users().GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "committed.png", got.ProfilePic)

	require.NoError(t, st.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		require.Error(t, err, "nested transactions are refused")
		return nil
	}))
}
