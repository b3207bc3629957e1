package users

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sentirsebien/go-client/rest"
)

const (
	usersPath      = "users"
	selfUpdatePath = "user/update/"
	registerPath   = "register/"
)

var cuitPattern = regexp.MustCompile(`^[0-9]{11}$`)

// Client calls the user endpoints of the API.
type Client struct {
	rest *rest.Client
}

func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

// Get fetches a user's profile by ID.
func (c *Client) Get(ctx context.Context, id int64) (*Profile, error) {
	profile := &Profile{}
	if err := c.rest.Get(ctx, fmt.Sprintf("%s/%d/", usersPath, id), profile); err != nil {
		return nil, errors.Wrap(err, "[users.Client.Get]")
	}
	return profile, nil
}

// Current fetches the authenticated user's own editable profile.
func (c *Client) Current(ctx context.Context) (*Profile, error) {
	profile := &Profile{}
	if err := c.rest.Get(ctx, selfUpdatePath, profile); err != nil {
		return nil, errors.Wrap(err, "[users.Client.Current]")
	}
	return profile, nil
}

// Update submits a self-service profile edit.
func (c *Client) Update(ctx context.Context, update Update) error {
	if err := c.rest.Put(ctx, selfUpdatePath, update, nil); err != nil {
		return errors.Wrap(err, "[users.Client.Update]")
	}
	return nil
}

// ValidateRegistration checks the payload locally before the round trip,
// mirroring the checks the registration screen performs.
func ValidateRegistration(r Registration) error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	if r.Password != r.ConfirmPassword {
		return errors.New("passwords do not match")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("invalid email address")
	}
	if r.CUIT != "" && !cuitPattern.MatchString(r.CUIT) {
		return errors.New("CUIT must be exactly 11 digits")
	}
	return nil
}
