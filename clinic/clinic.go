// Package clinic exposes the spa's public catalogs: the services on offer
// and the professionals who render them. Both feed the appointment booking
// flow.
package clinic

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sentirsebien/go-client/rest"
)

const (
	servicesPath      = "services/"
	professionalsPath = "professionals/"
)

type Service struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
}

type Professional struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (p *Professional) FullName() string {
	return p.FirstName + " " + p.LastName
}

type Client struct {
	rest *rest.Client
}

func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

func (c *Client) Services(ctx context.Context) ([]Service, error) {
	var services []Service
	if err := c.rest.Get(ctx, servicesPath, &services); err != nil {
		return nil, errors.Wrap(err, "[clinic.Client.Services]")
	}
	return services, nil
}

func (c *Client) Professionals(ctx context.Context) ([]Professional, error) {
	var professionals []Professional
	if err := c.rest.Get(ctx, professionalsPath, &professionals); err != nil {
		return nil, errors.Wrap(err, "[clinic.Client.Professionals]")
	}
	return professionals, nil
}
