// Package clients covers the owner-side administration surface: the client
// roster with role management, and the per-day / per-professional rollups.
// The server enforces authorization; these calls simply 403 for anyone who
// is not entitled to them.
package clients

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sentirsebien/go-client/rest"
	"github.com/sentirsebien/go-client/users"
)

const (
	clientsPath        = "clients/"
	byDayPath          = "clients-by-day/grouped_by_date/"
	byProfessionalPath = "clients-by-professional/"
)

// DayClient is one row of the clients-by-day rollup.
type DayClient struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Services  []string `json:"services"`
}

// ProfessionalAppointment is one row of the clients-by-professional rollup.
type ProfessionalAppointment struct {
	ClientFirstName string   `json:"client_first_name"`
	ClientLastName  string   `json:"client_last_name"`
	AppointmentDate string   `json:"appointment_date"`
	Services        []string `json:"services"`
}

type Client struct {
	rest *rest.Client
}

func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

// List returns every registered client with their role booleans.
func (c *Client) List(ctx context.Context) ([]users.Profile, error) {
	var roster []users.Profile
	if err := c.rest.Get(ctx, clientsPath, &roster); err != nil {
		return nil, errors.Wrap(err, "[clients.Client.List]")
	}
	return roster, nil
}

// Update pushes a client record back, typically after toggling one of the
// role booleans on the roster screen.
func (c *Client) Update(ctx context.Context, profile users.Profile) error {
	if profile.ID == 0 {
		return errors.New("[clients.Client.Update] client ID is required")
	}
	if err := c.rest.Put(ctx, fmt.Sprintf("%s%d/", clientsPath, profile.ID), profile, nil); err != nil {
		return errors.Wrap(err, "[clients.Client.Update]")
	}
	return nil
}

// ByDay returns clients grouped by appointment date.
func (c *Client) ByDay(ctx context.Context) (map[string][]DayClient, error) {
	grouped := map[string][]DayClient{}
	if err := c.rest.Get(ctx, byDayPath, &grouped); err != nil {
		return nil, errors.Wrap(err, "[clients.Client.ByDay]")
	}
	return grouped, nil
}

// ByProfessional returns upcoming appointments keyed by professional name.
func (c *Client) ByProfessional(ctx context.Context) (map[string][]ProfessionalAppointment, error) {
	grouped := map[string][]ProfessionalAppointment{}
	if err := c.rest.Get(ctx, byProfessionalPath, &grouped); err != nil {
		return nil, errors.Wrap(err, "[clients.Client.ByProfessional]")
	}
	return grouped, nil
}
