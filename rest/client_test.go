package rest_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/sentirsebien/go-client/internal/apitest"
	errs "github.com/sentirsebien/go-client/internal/errors"
	"github.com/sentirsebien/go-client/rest"
	"github.com/stretchr/testify/require"
)

// fakeAuth is a minimal TokenProvider/TokenRefresher pair for exercising
// the 401 interceptor without a full session controller.
type fakeAuth struct {
	mu           sync.Mutex
	token        string
	nextToken    string
	refreshErr   error
	refreshCalls int
}

func (a *fakeAuth) AccessToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

func (a *fakeAuth) Refresh(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refreshCalls++
	if a.refreshErr != nil {
		return "", a.refreshErr
	}
	a.token = a.nextToken
	return a.token, nil
}

func (a *fakeAuth) calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.refreshCalls
}

func newTestClient(t *testing.T) (*apitest.Server, *rest.Client, *fakeAuth) {
	t.Helper()

	server := apitest.New(t)
	client, err := rest.New(server.ClientConfig())
	require.NoError(t, err)

	auth := &fakeAuth{token: "stale-token", nextToken: "fresh-token"}
	client.SetAuth(auth, auth)
	return server, client, auth
}

// requireFresh responds 200 only to the fresh token, 401 to anything else.
func requireFresh(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer fresh-token" {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "token not valid"}`))
		return
	}
	w.Write([]byte(`{"ok": true}`))
}

func TestAttachesBearerHeader(t *testing.T) {
	server, client, _ := newTestClient(t)

	var seen string
	server.Handle(http.MethodGet, "/echo/", func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.Get(context.Background(), "echo/", nil))
	require.Equal(t, "Bearer stale-token", seen)
}

func TestWithoutAuthSkipsBearerHeader(t *testing.T) {
	server, client, _ := newTestClient(t)

	var seen string
	server.Handle(http.MethodGet, "/echo/", func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.Get(context.Background(), "echo/", nil, rest.WithoutAuth()))
	require.Empty(t, seen)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	server, client, _ := newTestClient(t)

	ids := map[string]bool{}
	server.Handle(http.MethodGet, "/echo/", func(w http.ResponseWriter, r *http.Request) {
		ids[r.Header.Get("X-Request-ID")] = true
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.Get(context.Background(), "echo/", nil))
	require.NoError(t, client.Get(context.Background(), "echo/", nil))
	require.Len(t, ids, 2, "each request carries its own id")
	require.False(t, ids[""])
}

func Test401TriggersOneRefreshAndRetry(t *testing.T) {
	server, client, auth := newTestClient(t)
	server.Handle(http.MethodGet, "/protected/", requireFresh)

	out := struct {
		OK bool `json:"ok"`
	}{}
	require.NoError(t, client.Get(context.Background(), "protected/", &out))
	require.True(t, out.OK)
	require.Equal(t, 1, auth.calls())
}

func TestSecond401DoesNotTriggerSecondRefresh(t *testing.T) {
	server, client, auth := newTestClient(t)
	auth.nextToken = "still-rejected" // refresh "succeeds" but the server keeps 401ing

	requests := 0
	server.Handle(http.MethodGet, "/protected/", func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "token not valid"}`))
	})

	err := client.Get(context.Background(), "protected/", nil)
	require.True(t, rest.IsStatus(err, http.StatusUnauthorized))
	require.Equal(t, 1, auth.calls(), "one refresh per logical request")
	require.Equal(t, 2, requests, "original plus one retry")
}

func TestRefreshFailurePropagatesOriginal401(t *testing.T) {
	server, client, auth := newTestClient(t)
	auth.refreshErr = errs.ErrSessionExpired

	requests := 0
	server.Handle(http.MethodGet, "/protected/", func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "token not valid"}`))
	})

	err := client.Get(context.Background(), "protected/", nil)
	require.True(t, rest.IsStatus(err, http.StatusUnauthorized))
	require.Equal(t, 1, requests, "no retry when refresh fails")
}

func TestWithoutRetrySuppressesRefresh(t *testing.T) {
	server, client, auth := newTestClient(t)
	server.Handle(http.MethodGet, "/protected/", requireFresh)

	err := client.Get(context.Background(), "protected/", nil, rest.WithoutRetry())
	require.True(t, rest.IsStatus(err, http.StatusUnauthorized))
	require.Zero(t, auth.calls())
}

func TestConcurrent401sShareOneRefresh(t *testing.T) {
	server, client, auth := newTestClient(t)
	server.Handle(http.MethodGet, "/protected/", requireFresh)

	var wg sync.WaitGroup
	errors := make([]error, 8)
	for i := range errors {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errors[i] = client.Get(context.Background(), "protected/", nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errors {
		require.NoError(t, err)
	}
	require.Equal(t, 1, auth.calls(), "burst of 401s must share a single refresh")
}

func TestStatusErrorCarriesDetail(t *testing.T) {
	server, client, _ := newTestClient(t)
	server.Handle(http.MethodGet, "/broken/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "invalid appointment date"}`))
	})

	err := client.Get(context.Background(), "broken/", nil)

	statusErr := &rest.StatusError{}
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadRequest, statusErr.Code)
	require.Equal(t, "invalid appointment date", statusErr.Detail)
}

func TestTransportFailureWrapsNetworkError(t *testing.T) {
	server, client, _ := newTestClient(t)
	server.HTTP.Close()

	err := client.Get(context.Background(), "anything/", nil)
	require.ErrorIs(t, err, errs.ErrNetwork)
}
