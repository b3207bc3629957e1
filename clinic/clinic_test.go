package clinic_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/sentirsebien/go-client/clinic"
	"github.com/sentirsebien/go-client/internal/apitest"
	"github.com/sentirsebien/go-client/rest"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*apitest.Server, *clinic.Client) {
	t.Helper()

	server := apitest.New(t)
	restClient, err := rest.New(server.ClientConfig())
	require.NoError(t, err)
	return server, clinic.NewClient(restClient)
}

func TestServices(t *testing.T) {
	server, client := newTestClient(t)

	server.Handle(http.MethodGet, "/services/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "name": "Masaje descontracturante", "description": "60 minutos", "price": "1500.00"},
			{"id": 2, "name": "Limpieza facial", "description": "45 minutos", "price": "980.50"}
		]`))
	})

	services, err := client.Services(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 2)
	require.Equal(t, "Masaje descontracturante", services[0].Name)
	require.Equal(t, "1500.00", services[0].Price)
}

func TestProfessionals(t *testing.T) {
	server, client := newTestClient(t)

	server.Handle(http.MethodGet, "/professionals/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 4, "first_name": "Maria", "last_name": "Lopez"}]`))
	})

	professionals, err := client.Professionals(context.Background())
	require.NoError(t, err)
	require.Len(t, professionals, 1)
	require.Equal(t, "Maria Lopez", professionals[0].FullName())
}
