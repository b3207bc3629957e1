// Package payments settles appointments in-app. Card data is validated
// locally before it ever leaves the device; the server performs the real
// charge and owns the outcome.
package payments

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"github.com/sentirsebien/go-client/rest"
)

const (
	paymentsPath     = "payments/"
	paymentTypesPath = "payment-types/"
)

var (
	cardPattern = regexp.MustCompile(`^[0-9]{16}$`)
	pinPattern  = regexp.MustCompile(`^[0-9]{4,6}$`)
)

type PaymentType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Payment is a settled charge, listed on the secretary/owner payments
// screen.
type Payment struct {
	ID          int64  `json:"id"`
	Appointment int64  `json:"appointment"`
	PaymentType int64  `json:"payment_type"`
	Amount      string `json:"amount,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// CreateRequest charges an appointment. Discount mirrors the booking
// promotion and is echoed so the server prices consistently.
type CreateRequest struct {
	Appointment int64   `json:"appointment"`
	CreditCard  string  `json:"credit_card"`
	PIN         string  `json:"pin"`
	PaymentType int64   `json:"payment_type"`
	Discount    float64 `json:"discount"`
}

// Validate applies the same checks the payment screen runs before
// submitting: 16 card digits, 4 to 6 PIN digits.
func (r *CreateRequest) Validate() error {
	if r.Appointment == 0 {
		return errors.New("appointment is required")
	}
	if !cardPattern.MatchString(r.CreditCard) {
		return errors.New("card number must be exactly 16 digits")
	}
	if !pinPattern.MatchString(r.PIN) {
		return errors.New("PIN must be 4 to 6 digits")
	}
	if r.PaymentType == 0 {
		return errors.New("payment type is required")
	}
	return nil
}

type Client struct {
	rest *rest.Client
}

func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

func (c *Client) Types(ctx context.Context) ([]PaymentType, error) {
	var types []PaymentType
	if err := c.rest.Get(ctx, paymentTypesPath, &types); err != nil {
		return nil, errors.Wrap(err, "[payments.Client.Types]")
	}
	return types, nil
}

func (c *Client) List(ctx context.Context) ([]Payment, error) {
	var paymentsList []Payment
	if err := c.rest.Get(ctx, paymentsPath, &paymentsList); err != nil {
		return nil, errors.Wrap(err, "[payments.Client.List]")
	}
	return paymentsList, nil
}

func (c *Client) Create(ctx context.Context, request CreateRequest) (*Payment, error) {
	if err := request.Validate(); err != nil {
		return nil, errors.Wrap(err, "[payments.Client.Create]")
	}

	payment := &Payment{}
	if err := c.rest.Post(ctx, paymentsPath, request, payment); err != nil {
		return nil, errors.Wrap(err, "[payments.Client.Create]")
	}
	return payment, nil
}
