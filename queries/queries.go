// Package queries is the question-and-answer surface: clients raise
// queries, staff post responses linked back to them.
package queries

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sentirsebien/go-client/rest"
)

const (
	queriesPath   = "queries/"
	responsesPath = "responses/"
)

type Query struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Response struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Query   int64  `json:"query"`
}

type Client struct {
	rest *rest.Client
}

func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

func (c *Client) List(ctx context.Context) ([]Query, error) {
	var items []Query
	if err := c.rest.Get(ctx, queriesPath, &items); err != nil {
		return nil, errors.Wrap(err, "[queries.Client.List]")
	}
	return items, nil
}

func (c *Client) Create(ctx context.Context, title, content string) (*Query, error) {
	if title == "" || content == "" {
		return nil, errors.New("[queries.Client.Create] title and content are required")
	}

	query := &Query{}
	payload := Query{Title: title, Content: content}
	if err := c.rest.Post(ctx, queriesPath, payload, query); err != nil {
		return nil, errors.Wrap(err, "[queries.Client.Create]")
	}
	return query, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.rest.Delete(ctx, fmt.Sprintf("%s%d/", queriesPath, id)); err != nil {
		return errors.Wrap(err, "[queries.Client.Delete]")
	}
	return nil
}

func (c *Client) Responses(ctx context.Context) ([]Response, error) {
	var items []Response
	if err := c.rest.Get(ctx, responsesPath, &items); err != nil {
		return nil, errors.Wrap(err, "[queries.Client.Responses]")
	}
	return items, nil
}

// Respond posts an answer to a query.
func (c *Client) Respond(ctx context.Context, queryID int64, content string) (*Response, error) {
	if content == "" {
		return nil, errors.New("[queries.Client.Respond] content is required")
	}

	response := &Response{}
	payload := Response{Content: content, Query: queryID}
	if err := c.rest.Post(ctx, responsesPath, payload, response); err != nil {
		return nil, errors.Wrap(err, "[queries.Client.Respond]")
	}
	return response, nil
}
