package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/assets"
	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/internal/tasks/store/drivers/sqlite"
	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const issuer = "tasks-test"

// fakeClock is shared by the services and the token verifier.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	store    *sqlite.Store
	clock    *fakeClock
	creds    *service.CredentialService
	sessions *service.SessionService
	tasks    *service.TaskService
	users    *service.UserService
	profile  *service.ProfileService
	uploads  *assets.LocalStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	clk := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	now := service.Clock(clk.Now)

	uploads, err := assets.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	creds := &service.CredentialService{Store: st, Hasher: cryptox.NewHasher("pepper"), Clock: now}
	return &harness{
		store: st,
		clock: clk,
		creds: creds,
		sessions: &service.SessionService{
			Store:       st,
			Credentials: creds,
			Signer:      signer,
			Verifier:    jwtx.NewVerifierEdDSA(keys, issuer, jwtx.WithClock(clk.Now)),
			Issuer:      issuer,
			TTL:         time.Hour,
			Clock:       now,
		},
		tasks:   &service.TaskService{Store: st, Clock: now},
		users:   &service.UserService{Store: st},
		profile: &service.ProfileService{Store: st, Assets: uploads, Clock: now},
		uploads: uploads,
	}
}

func (h *harness) register(t *testing.T, username, email, password string) domain.User {
	t.Helper()
	u, err := h.creds.Register(context.Background(), username, email, password)
	require.NoError(t, err)
	return u
}

func (h *harness) login(t *testing.T, email, password string) (domain.Principal, string) {
	t.Helper()
	ctx := context.Background()
	_, token, err := h.sessions.Login(ctx, email, password)
	require.NoError(t, err)
	p, err := h.sessions.Resolve(ctx, token)
	require.NoError(t, err)
	return p, token
}

func countUsers(t *testing.T, st *sqlite.Store) int {
	t.Helper()
	var n int
	require.NoError(t, st.DB().QueryRowContext(context.Background(), "SELECT COUNT(*) FROM users").Scan(&n))
	return n
}

func countSessions(t *testing.T, st *sqlite.Store) int {
	t.Helper()
	var n int
	require.NoError(t, st.DB().QueryRowContext(context.Background(), "SELECT COUNT(*) FROM sessions").Scan(&n))
	return n
}
