package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/sentirsebien/go-client/internal/apitest"
	errs "github.com/sentirsebien/go-client/internal/errors"
	"github.com/sentirsebien/go-client/navigator"
	"github.com/sentirsebien/go-client/rest"
	"github.com/sentirsebien/go-client/session"
	"github.com/sentirsebien/go-client/tokenstore"
	"github.com/sentirsebien/go-client/tokenstore/storefake"
	"github.com/sentirsebien/go-client/users"
	"github.com/stretchr/testify/require"
)

const (
	testUserID   = int64(7)
	testUsername = "lucia"
	testPassword = "correct-horse"
)

type testFixture struct {
	server     *apitest.Server
	store      *storefake.FakeTokenRepo
	controller *session.Controller
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	server := apitest.New(t)
	server.AddUser(users.Profile{
		ID:        testUserID,
		Username:  testUsername,
		FirstName: "Lucía",
		LastName:  "Fernández",
		Email:     "lucia@example.com",
		IsOwner:   true,
	}, testUsername, testPassword)

	store := storefake.NewFakeTokenRepo()
	restClient, err := rest.New(server.ClientConfig())
	require.NoError(t, err)

	controller, err := session.NewController(store, restClient)
	require.NoError(t, err)

	return &testFixture{server: server, store: store, controller: controller}
}

func (f *testFixture) storePair(t *testing.T, access, refresh string) {
	t.Helper()
	require.NoError(t, f.store.Save(&tokenstore.TokenPair{Access: access, Refresh: refresh}))
}

func TestInitializeWithNoTokens(t *testing.T) {
	f := setupTestFixture(t)

	f.controller.Initialize(context.Background())

	require.Equal(t, session.StatusAnonymous, f.controller.Status())
	require.Nil(t, f.controller.Profile())
	require.Zero(t, f.server.RefreshCalls)
}

func TestInitializeWithLiveToken(t *testing.T) {
	f := setupTestFixture(t)
	f.storePair(t, f.server.MintAccess(testUserID, time.Now().Add(time.Hour)), "")

	f.controller.Initialize(context.Background())

	require.Equal(t, session.StatusAuthenticated, f.controller.Status())
	require.NotNil(t, f.controller.Profile())
	require.Equal(t, testUsername, f.controller.Profile().Username)
	require.True(t, f.controller.Roles().IsOwner)
	require.Zero(t, f.server.RefreshCalls, "live token must not trigger a refresh")
}

func TestInitializeWithExpiredAccessAndValidRefresh(t *testing.T) {
	f := setupTestFixture(t)
	expired := f.server.MintAccess(testUserID, time.Now().Add(-time.Hour))
	f.storePair(t, expired, f.server.MintRefresh(testUserID))

	f.controller.Initialize(context.Background())

	require.Equal(t, session.StatusAuthenticated, f.controller.Status())
	require.Equal(t, 1, f.server.RefreshCalls, "exactly one refresh call")

	pair, err := f.store.Load()
	require.NoError(t, err)
	require.NotEqual(t, expired, pair.Access, "new access token must be stored")
}

func TestInitializeWithExpiredAccessAndBadRefresh(t *testing.T) {
	f := setupTestFixture(t)
	f.storePair(t, f.server.MintAccess(testUserID, time.Now().Add(-time.Hour)), "bogus-refresh")

	f.controller.Initialize(context.Background())

	require.Equal(t, session.StatusAnonymous, f.controller.Status())
	_, err := f.store.Load()
	require.ErrorIs(t, err, errs.ErrNoTokens, "store must be cleared")
}

func TestInitializeWithUnavailableStore(t *testing.T) {
	f := setupTestFixture(t)
	f.store.Errs = errs.ErrInternal

	f.controller.Initialize(context.Background())

	require.Equal(t, session.StatusAnonymous, f.controller.Status())
}

func TestLoginWithoutStoredToken(t *testing.T) {
	f := setupTestFixture(t)

	err := f.controller.Login(context.Background())
	require.ErrorIs(t, err, errs.ErrAuthentication)
	require.NotEqual(t, session.StatusAuthenticated, f.controller.Status())
}

func TestLoginWithExpiredStoredToken(t *testing.T) {
	f := setupTestFixture(t)
	f.storePair(t, f.server.MintAccess(testUserID, time.Now().Add(-time.Minute)), "")

	err := f.controller.Login(context.Background())
	require.ErrorIs(t, err, errs.ErrAuthentication)
}

func TestLoginWithCredentials(t *testing.T) {
	f := setupTestFixture(t)

	err := f.controller.LoginWithCredentials(context.Background(), testUsername, testPassword)
	require.NoError(t, err)

	require.Equal(t, session.StatusAuthenticated, f.controller.Status())
	require.Equal(t, testUserID, f.controller.Profile().ID)
	require.True(t, f.controller.Roles().IsOwner)
	require.NotEmpty(t, f.controller.AccessToken())

	pair, err := f.store.Load()
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
}

func TestLoginWithBadCredentials(t *testing.T) {
	f := setupTestFixture(t)

	err := f.controller.LoginWithCredentials(context.Background(), testUsername, "wrong")
	require.ErrorIs(t, err, errs.ErrAuthentication)
	require.NotEqual(t, session.StatusAuthenticated, f.controller.Status())
}

func TestLogoutResetsEverythingTogether(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.controller.LoginWithCredentials(context.Background(), testUsername, testPassword))

	f.controller.Logout()

	require.Equal(t, session.StatusAnonymous, f.controller.Status())
	require.Empty(t, f.controller.AccessToken())
	require.Nil(t, f.controller.Profile())
	require.Equal(t, session.RoleFlags{}, f.controller.Roles())

	_, err := f.store.Load()
	require.ErrorIs(t, err, errs.ErrNoTokens)

	// Idempotent: a second logout is a no-op
	f.controller.Logout()
	require.Equal(t, session.StatusAnonymous, f.controller.Status())
}

func TestProfileLoadFailureForcesLogout(t *testing.T) {
	f := setupTestFixture(t)
	// Token names a user the backend has no profile for
	f.storePair(t, f.server.MintAccess(999, time.Now().Add(time.Hour)), "")

	err := f.controller.Login(context.Background())
	require.ErrorIs(t, err, errs.ErrProfileLoad)
	require.Equal(t, session.StatusAnonymous, f.controller.Status())
	require.Nil(t, f.controller.Profile())
}

func TestRefreshFailureReportsSessionExpired(t *testing.T) {
	f := setupTestFixture(t)
	f.storePair(t, f.server.MintAccess(testUserID, time.Now().Add(-time.Hour)), f.server.MintRefresh(testUserID))
	f.server.FailRefresh = true

	_, err := f.controller.Refresh(context.Background())
	require.ErrorIs(t, err, errs.ErrSessionExpired)
	require.Equal(t, session.StatusAnonymous, f.controller.Status())
}

func TestRegister(t *testing.T) {
	f := setupTestFixture(t)

	err := f.controller.Register(context.Background(), users.Registration{
		Username:        "nuevo",
		FirstName:       "Nuevo",
		LastName:        "Cliente",
		CUIT:            "20123456789",
		Email:           "nuevo@example.com",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	})
	require.NoError(t, err)
	require.Equal(t, session.StatusAuthenticated, f.controller.Status())
	require.Equal(t, "nuevo", f.controller.Profile().Username)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	f := setupTestFixture(t)

	err := f.controller.Register(context.Background(), users.Registration{
		Username:        "nuevo",
		Email:           "nuevo@example.com",
		Password:        "one",
		ConfirmPassword: "other",
	})
	require.ErrorIs(t, err, errs.ErrAuthentication)
}

// Full lifecycle: login exposes the owner screens, logout reverts to the
// anonymous set.
func TestLoginLogoutScreenScenario(t *testing.T) {
	f := setupTestFixture(t)
	nav := navigator.New(f.controller)

	reachable := navigator.Reachable(f.controller)
	require.True(t, reachable.Contains(navigator.ScreenLogin))
	require.False(t, reachable.Contains(navigator.ScreenAppointments))

	require.NoError(t, f.controller.LoginWithCredentials(context.Background(), testUsername, testPassword))

	reachable = navigator.Reachable(f.controller)
	require.True(t, reachable.Contains(navigator.ScreenClients))
	require.True(t, reachable.Contains(navigator.ScreenPaymentsList))
	require.False(t, reachable.Contains(navigator.ScreenAppointmentsToRender), "owner is not a professional")

	screen, err := nav.Go(navigator.ScreenClients)
	require.NoError(t, err)
	require.Equal(t, navigator.ScreenClients, screen)

	f.controller.Logout()

	reachable = navigator.Reachable(f.controller)
	require.Equal(t, 3, len(reachable))
	require.True(t, reachable.Contains(navigator.ScreenHome))
	require.True(t, reachable.Contains(navigator.ScreenLogin))
	require.True(t, reachable.Contains(navigator.ScreenRegister))
}
