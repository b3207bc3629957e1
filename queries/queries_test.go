package queries_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/sentirsebien/go-client/internal/apitest"
	"github.com/sentirsebien/go-client/queries"
	"github.com/sentirsebien/go-client/rest"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*apitest.Server, *queries.Client) {
	t.Helper()

	server := apitest.New(t)
	restClient, err := rest.New(server.ClientConfig())
	require.NoError(t, err)
	return server, queries.NewClient(restClient)
}

func TestCreateAndRespond(t *testing.T) {
	server, client := newTestClient(t)

	var createdQuery map[string]any
	server.Handle(http.MethodPost, "/queries/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&createdQuery))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 3, "title": "Horarios", "content": "Atienden los sabados?"}`))
	})

	var createdResponse map[string]any
	server.Handle(http.MethodPost, "/responses/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&createdResponse))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 8, "content": "Si, de 9 a 13.", "query": 3}`))
	})

	query, err := client.Create(context.Background(), "Horarios", "Atienden los sabados?")
	require.NoError(t, err)
	require.Equal(t, int64(3), query.ID)
	require.Equal(t, "Horarios", createdQuery["title"])

	response, err := client.Respond(context.Background(), query.ID, "Si, de 9 a 13.")
	require.NoError(t, err)
	require.Equal(t, int64(3), response.Query)
	require.EqualValues(t, 3, createdResponse["query"])
}

func TestDelete(t *testing.T) {
	server, client := newTestClient(t)

	deleted := false
	server.Handle(http.MethodDelete, "/queries/3/", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.Delete(context.Background(), 3))
	require.True(t, deleted)
}
