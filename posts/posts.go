// Package posts is the public comment wall. Anonymous visitors can post
// under an alias; authenticated users post under their account, so the
// alias field is only sent when there is no session.
package posts

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sentirsebien/go-client/rest"
)

const postsPath = "posts/"

// Post keeps the backend's Spanish wire names behind Go field names.
type Post struct {
	ID      int64   `json:"id"`
	Title   string  `json:"titulo"`
	Content string  `json:"contenido"`
	Alias   *string `json:"alias,omitempty"`
}

type CreateRequest struct {
	Title   string  `json:"titulo"`
	Content string  `json:"contenido"`
	Alias   *string `json:"alias,omitempty"`
}

type Client struct {
	rest *rest.Client
}

func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

func (c *Client) List(ctx context.Context) ([]Post, error) {
	var items []Post
	if err := c.rest.Get(ctx, postsPath, &items); err != nil {
		return nil, errors.Wrap(err, "[posts.Client.List]")
	}
	return items, nil
}

// Create publishes a post. alias is attached only for anonymous posters;
// pass the empty string when a session is active.
func (c *Client) Create(ctx context.Context, title, content, alias string) (*Post, error) {
	if title == "" || content == "" {
		return nil, errors.New("[posts.Client.Create] title and content are required")
	}

	request := CreateRequest{Title: title, Content: content}
	if alias != "" {
		request.Alias = &alias
	}

	post := &Post{}
	if err := c.rest.Post(ctx, postsPath, request, post); err != nil {
		return nil, errors.Wrap(err, "[posts.Client.Create]")
	}
	return post, nil
}
