// Package announcements manages the clinic's announcement board. Reading
// is open to every authenticated user; creating and deleting is accepted or
// rejected by the server based on the caller's role.
package announcements

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sentirsebien/go-client/rest"
)

const announcementsPath = "announcements/"

type Announcement struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	DateDescription string `json:"date_description,omitempty"`
}

type CreateRequest struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	DateDescription string `json:"date_description,omitempty"`
}

type Client struct {
	rest *rest.Client
}

func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

func (c *Client) List(ctx context.Context) ([]Announcement, error) {
	var items []Announcement
	if err := c.rest.Get(ctx, announcementsPath, &items); err != nil {
		return nil, errors.Wrap(err, "[announcements.Client.List]")
	}
	return items, nil
}

func (c *Client) Create(ctx context.Context, request CreateRequest) (*Announcement, error) {
	if request.Title == "" || request.Content == "" {
		return nil, errors.New("[announcements.Client.Create] title and content are required")
	}

	announcement := &Announcement{}
	if err := c.rest.Post(ctx, announcementsPath, request, announcement); err != nil {
		return nil, errors.Wrap(err, "[announcements.Client.Create]")
	}
	return announcement, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.rest.Delete(ctx, fmt.Sprintf("%s%d/", announcementsPath, id)); err != nil {
		return errors.Wrap(err, "[announcements.Client.Delete]")
	}
	return nil
}
