package http_test

import (
	"context"
	"testing"

	taskshttp "github.com/aussiebroadwan/tasks/internal/tasks/http"
	"github.com/aussiebroadwan/tasks/internal/tasks/store/storetest"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

// withFailingStore routes every service through a wrapper the test can
// later tell to fail.
func withFailingStore(fs **storetest.FailingStore) func(*taskshttp.Router) {
	return func(r *taskshttp.Router) {
		wrapped := storetest.Wrap(r.SessionService.Store)
		r.CredentialService.Store = wrapped
		r.SessionService.Store = wrapped
		r.UserService.Store = wrapped
		r.TaskService.Store = wrapped
		r.ProfileService.Store = wrapped
		*fs = wrapped
	}
}

func requireServerError(t *testing.T, err error) {
	t.Helper()
	apiErr := requireAPIError(t, err, tasksdk.ErrServerError)
	require.Equal(t, "internal server error", apiErr.Description)
	require.Empty(t, apiErr.LoginURL)
}

func TestStoreFailuresReturnServerError(t *testing.T) {
	ctx := context.Background()

	t.Run("session lookup", func(t *testing.T) {
		var fs *storetest.FailingStore
		srv := newTestServer(t, withFailingStore(&fs))
		alice := srv.signup(t, "alice", "a@x.com", "secret1")

		fs.Fail("GetSession")
		_, err := alice.ListTasks(ctx)
		requireServerError(t, err)

		fs.Heal()
		_, err = alice.ListTasks(ctx)
		require.NoError(t, err)
	})

	t.Run("login", func(t *testing.T) {
		var fs *storetest.FailingStore
		srv := newTestServer(t, withFailingStore(&fs))
		srv.signup(t, "alice", "a@x.com", "secret1")

		fs.Fail("GetUserByEmail")
		_, err := srv.client.Login(ctx, "a@x.com", "secret1")
		requireServerError(t, err)
	})

	t.Run("complete and delete task", func(t *testing.T) {
		var fs *storetest.FailingStore
		srv := newTestServer(t, withFailingStore(&fs))
		alice := srv.signup(t, "alice", "a@x.com", "secret1")
		task, err := alice.CreateTask(ctx, "Buy milk", "")
		require.NoError(t, err)

		fs.Fail("GetTaskByID")
		_, err = alice.CompleteTask(ctx, task.ID)
		requireServerError(t, err)
		requireServerError(t, alice.DeleteTask(ctx, task.ID))

		fs.Heal()
		tasks, err := alice.ListTasks(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.False(t, tasks[0].Completed)
	})

	t.Run("list tasks", func(t *testing.T) {
		var fs *storetest.FailingStore
		srv := newTestServer(t, withFailingStore(&fs))
		alice := srv.signup(t, "alice", "a@x.com", "secret1")

		fs.Fail("ListTasksByOwner")
		_, err := alice.ListTasks(ctx)
		requireServerError(t, err)
	})
}
