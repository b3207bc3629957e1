package appointments_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/sentirsebien/go-client/appointments"
	"github.com/sentirsebien/go-client/internal/apitest"
	"github.com/sentirsebien/go-client/internal/utils"
	"github.com/sentirsebien/go-client/rest"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*apitest.Server, *appointments.Client) {
	t.Helper()

	server := apitest.New(t)
	restClient, err := rest.New(server.ClientConfig())
	require.NoError(t, err)
	return server, appointments.NewClient(restClient)
}

func TestTotalSumsServicePrices(t *testing.T) {
	appointment := appointments.Appointment{
		ServicesPrices: []string{"1500.00", "980.50"},
	}

	total, err := appointment.Total()
	require.NoError(t, err)
	require.InDelta(t, 2480.50, total, 0.001)
}

func TestTotalRejectsUnparsablePrice(t *testing.T) {
	appointment := appointments.Appointment{
		ServicesPrices: []string{"1500.00", "gratis"},
	}

	_, err := appointment.Total()
	require.ErrorContains(t, err, `bad price "gratis"`)
}

func TestPaid(t *testing.T) {
	require.False(t, (&appointments.Appointment{}).Paid())
	require.True(t, (&appointments.Appointment{Payment: utils.Ptr(int64(3))}).Paid())
}

func TestCreateRequestValidation(t *testing.T) {
	valid := appointments.CreateRequest{
		ProfessionalID:  4,
		ServicesIDs:     []int64{1, 2},
		AppointmentDate: "2026-09-15",
		AppointmentTime: "14:30",
	}
	require.NoError(t, valid.Validate())

	noProfessional := valid
	noProfessional.ProfessionalID = 0
	require.ErrorContains(t, noProfessional.Validate(), "professional is required")

	noServices := valid
	noServices.ServicesIDs = nil
	require.ErrorContains(t, noServices.Validate(), "at least one service")

	noTime := valid
	noTime.AppointmentTime = ""
	require.ErrorContains(t, noTime.Validate(), "date and time are required")
}

func TestCreateDefaultsBookingDiscount(t *testing.T) {
	server, client := newTestClient(t)

	var received appointments.CreateRequest
	server.Handle(http.MethodPost, "/appointments/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(appointments.Appointment{ID: 31})
	})

	created, err := client.Create(context.Background(), appointments.CreateRequest{
		ProfessionalID:  4,
		ServicesIDs:     []int64{1},
		AppointmentDate: "2026-09-15",
		AppointmentTime: "14:30",
	})
	require.NoError(t, err)
	require.Equal(t, int64(31), created.ID)
	require.Equal(t, appointments.BookingDiscount, received.Discount)
}

func TestListAndDelete(t *testing.T) {
	server, client := newTestClient(t)

	server.Handle(http.MethodGet, "/appointments/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]appointments.Appointment{
			{ID: 1, AppointmentDate: "2026-09-15T14:30:00"},
			{ID: 2, AppointmentDate: "2026-09-16T10:00:00"},
		})
	})

	deleted := false
	server.Handle(http.MethodDelete, "/appointments/2/", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})

	list, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, client.Delete(context.Background(), 2))
	require.True(t, deleted)
}

func TestPaymentAndInvoiceURLs(t *testing.T) {
	server, client := newTestClient(t)

	base := server.HTTP.URL + "/sentirseBien/api/v1/appointments/7/"
	require.Equal(t, base+"payment/", client.WebPaymentURL(7))
	require.Equal(t, base+"download_invoice/", client.InvoiceURL(7))
}
