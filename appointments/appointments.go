// Package appointments books and lists spa appointments. Payment for an
// appointment happens either in-app (see the payments package) or through
// the web payment page the API links to.
package appointments

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sentirsebien/go-client/clinic"
	"github.com/sentirsebien/go-client/rest"
)

const appointmentsPath = "appointments/"

// BookingDiscount is applied to appointments created from the app, matching
// the promotion the booking screen advertises.
const BookingDiscount = "0.10"

type Appointment struct {
	ID              int64               `json:"id"`
	Professional    clinic.Professional `json:"professional"`
	ServicesNames   []string            `json:"services_names"`
	ServicesPrices  []string            `json:"services_prices"`
	AppointmentDate string              `json:"appointment_date"`
	Payment         *int64              `json:"payment,omitempty"`
}

// Paid reports whether the appointment already has a payment attached.
func (a *Appointment) Paid() bool {
	return a.Payment != nil
}

// Total sums the service prices the server quotes for this appointment.
func (a *Appointment) Total() (float64, error) {
	total := 0.0
	for _, price := range a.ServicesPrices {
		value, err := strconv.ParseFloat(price, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "[Appointment.Total] bad price %q", price)
		}
		total += value
	}
	return total, nil
}

// CreateRequest books an appointment. Date is YYYY-MM-DD and Time HH:MM,
// the formats the API's pickers submit.
type CreateRequest struct {
	ProfessionalID  int64   `json:"professional_id"`
	ServicesIDs     []int64 `json:"services_ids"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
	Discount        string  `json:"discount"`
}

func (r *CreateRequest) Validate() error {
	if r.ProfessionalID == 0 {
		return errors.New("professional is required")
	}
	if len(r.ServicesIDs) == 0 {
		return errors.New("at least one service is required")
	}
	if r.AppointmentDate == "" || r.AppointmentTime == "" {
		return errors.New("date and time are required")
	}
	return nil
}

type Client struct {
	rest *rest.Client
}

func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

func (c *Client) List(ctx context.Context) ([]Appointment, error) {
	var appointments []Appointment
	if err := c.rest.Get(ctx, appointmentsPath, &appointments); err != nil {
		return nil, errors.Wrap(err, "[appointments.Client.List]")
	}
	return appointments, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*Appointment, error) {
	appointment := &Appointment{}
	if err := c.rest.Get(ctx, fmt.Sprintf("%s%d/", appointmentsPath, id), appointment); err != nil {
		return nil, errors.Wrap(err, "[appointments.Client.Get]")
	}
	return appointment, nil
}

func (c *Client) Create(ctx context.Context, request CreateRequest) (*Appointment, error) {
	if err := request.Validate(); err != nil {
		return nil, errors.Wrap(err, "[appointments.Client.Create]")
	}
	if request.Discount == "" {
		request.Discount = BookingDiscount
	}

	appointment := &Appointment{}
	if err := c.rest.Post(ctx, appointmentsPath, request, appointment); err != nil {
		return nil, errors.Wrap(err, "[appointments.Client.Create]")
	}
	return appointment, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.rest.Delete(ctx, fmt.Sprintf("%s%d/", appointmentsPath, id)); err != nil {
		return errors.Wrap(err, "[appointments.Client.Delete]")
	}
	return nil
}

// WebPaymentURL is the browser fallback for paying an appointment.
func (c *Client) WebPaymentURL(id int64) string {
	return c.rest.URL(fmt.Sprintf("%s%d/payment/", appointmentsPath, id))
}

// InvoiceURL downloads the invoice PDF for a paid appointment.
func (c *Client) InvoiceURL(id int64) string {
	return c.rest.URL(fmt.Sprintf("%s%d/download_invoice/", appointmentsPath, id))
}
