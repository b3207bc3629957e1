package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	errs "github.com/sentirsebien/go-client/internal/errors"
	"github.com/sentirsebien/go-client/rest"
	"github.com/sentirsebien/go-client/token"
	"github.com/sentirsebien/go-client/tokenstore"
	"github.com/sentirsebien/go-client/users"
)

const (
	tokenPath   = "token/"
	refreshPath = "token/refresh/"
)

// Status is the session lifecycle state. It moves Uninitialized → Restoring
// → {Authenticated, Anonymous}; a refresh passes through Restoring again.
type Status int

const (
	StatusUninitialized Status = iota
	StatusRestoring
	StatusAuthenticated
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusRestoring:
		return "restoring"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// RoleFlags is a pure projection of the last successfully loaded profile.
// The flags are set and reset together, never independently.
type RoleFlags struct {
	IsOwner        bool
	IsStaff        bool
	IsProfessional bool
	IsSecretary    bool
}

// Controller owns the authentication state of the client: it restores the
// session at startup, performs login/logout/refresh, and derives role flags
// from the fetched profile. It is the only component allowed to force a
// logout in response to a lower-layer error.
type Controller struct {
	store    tokenstore.Repo
	client   *rest.Client
	usersAPI *users.Client
	logger   zerolog.Logger

	// refreshMu serializes Refresh per controller instance
	refreshMu sync.Mutex

	mu      sync.RWMutex
	status  Status
	access  string // in-memory copy of the access token for request signing
	profile *users.Profile
	flags   RoleFlags
}

var (
	_ rest.TokenProvider  = (*Controller)(nil)
	_ rest.TokenRefresher = (*Controller)(nil)
)

// ControllerOption modifies a Controller during construction.
type ControllerOption func(*Controller)

// WithLogger overrides the default global logger.
func WithLogger(logger zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController wires a session controller to its token store and HTTP
// client. It registers itself as the client's token provider and refresher,
// so interceptor registration happens exactly once, here.
func NewController(store tokenstore.Repo, restClient *rest.Client, options ...ControllerOption) (*Controller, error) {
	if store == nil {
		return nil, errors.New("[NewController] token store is required")
	}
	if restClient == nil {
		return nil, errors.New("[NewController] rest client is required")
	}

	controller := &Controller{
		store:    store,
		client:   restClient,
		usersAPI: users.NewClient(restClient),
		logger:   log.Logger,
		status:   StatusUninitialized,
	}
	for _, opt := range options {
		opt(controller)
	}

	restClient.SetAuth(controller, controller)
	return controller, nil
}

// Initialize restores the session from the token store. It runs once at
// startup and always settles in Authenticated or Anonymous before
// returning; every failure degrades to Anonymous rather than surfacing.
func (c *Controller) Initialize(ctx context.Context) {
	c.setStatus(StatusRestoring)

	pair, err := c.store.Load()
	if err != nil {
		if !errs.Is(err, errs.ErrNoTokens) {
			c.logger.Warn().Err(err).Msg("token store unavailable, starting anonymous")
		}
		c.becomeAnonymous(false)
		return
	}

	if token.IsLive(pair.Access) {
		c.setAccess(pair.Access)
		c.setStatus(StatusAuthenticated)
		if err := c.LoadProfile(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("profile load during restore failed")
		}
		return
	}

	if pair.Refresh == "" {
		c.becomeAnonymous(true)
		return
	}

	// Expired access token but a refresh token on hand: one refresh
	// attempt, then the live-token path.
	if _, err := c.Refresh(ctx); err != nil {
		// Refresh has already logged out
		c.logger.Info().Err(err).Msg("session restore refresh failed")
		return
	}
	c.setStatus(StatusAuthenticated)
	if err := c.LoadProfile(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("profile load after refresh failed")
	}
}

// Login promotes an already-stored token pair to an authenticated session.
// The login screen stores the pair first (LoginWithCredentials does both in
// one step). Fails with ErrAuthentication when no live token is stored.
func (c *Controller) Login(ctx context.Context) error {
	pair, err := c.store.Load()
	if err != nil {
		return errs.Wrapf(errs.ErrAuthentication, "no stored token")
	}
	if !token.IsLive(pair.Access) {
		return errs.Wrapf(errs.ErrAuthentication, "stored token is not live")
	}

	c.setAccess(pair.Access)
	c.setStatus(StatusAuthenticated)
	c.logger.Info().Msg("session authenticated")

	return c.LoadProfile(ctx)
}

// LoginWithCredentials exchanges a username and password at the token
// endpoint, stores the issued pair and promotes it to a session.
func (c *Controller) LoginWithCredentials(ctx context.Context, username, password string) error {
	request := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	tokens := tokenResponse{}
	err := c.client.Post(ctx, tokenPath, request, &tokens, rest.WithoutAuth(), rest.WithoutRetry())
	if err != nil {
		if errs.Is(err, errs.ErrNetwork) {
			return err
		}
		return errs.Wrapf(errs.ErrAuthentication, "token endpoint rejected credentials: %s", err.Error())
	}
	if tokens.Access == "" {
		return errs.Wrapf(errs.ErrAuthentication, "token endpoint returned no access token")
	}

	if err := c.store.Save(&tokenstore.TokenPair{Access: tokens.Access, Refresh: tokens.Refresh}); err != nil {
		return errors.Wrap(err, "[Controller.LoginWithCredentials] store tokens")
	}
	return c.Login(ctx)
}

// Register creates an account and logs straight into it, the way the
// registration screen does.
func (c *Controller) Register(ctx context.Context, registration users.Registration) error {
	if err := users.ValidateRegistration(registration); err != nil {
		return errs.Wrapf(errs.ErrAuthentication, "%s", err.Error())
	}

	tokens := tokenResponse{}
	err := c.client.Post(ctx, "register/", registration, &tokens, rest.WithoutAuth(), rest.WithoutRetry())
	if err != nil {
		if errs.Is(err, errs.ErrNetwork) {
			return err
		}
		return errs.Wrapf(errs.ErrAuthentication, "registration rejected: %s", err.Error())
	}
	if tokens.Access == "" {
		return errs.Wrapf(errs.ErrAuthentication, "registration returned no access token")
	}

	if err := c.store.Save(&tokenstore.TokenPair{Access: tokens.Access, Refresh: tokens.Refresh}); err != nil {
		return errors.Wrap(err, "[Controller.Register] store tokens")
	}
	return c.Login(ctx)
}

// Logout clears storage, the bearer token, the profile and the role flags,
// and settles in Anonymous. Calling it while already anonymous is a no-op.
func (c *Controller) Logout() {
	c.becomeAnonymous(true)
}

// Refresh posts the stored refresh token and applies the newly issued
// access token. Any failure forces a logout and reports ErrSessionExpired.
// Refreshes are serialized per controller instance.
func (c *Controller) Refresh(ctx context.Context) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	pair, err := c.store.Load()
	if err != nil {
		c.becomeAnonymous(true)
		return "", errs.Wrapf(errs.ErrSessionExpired, "no stored tokens")
	}
	if pair.Refresh == "" {
		c.becomeAnonymous(true)
		return "", errs.Wrapf(errs.ErrSessionExpired, "no refresh token")
	}

	request := struct {
		Refresh string `json:"refresh"`
	}{Refresh: pair.Refresh}

	tokens := tokenResponse{}
	if err := c.client.Post(ctx, refreshPath, request, &tokens, rest.WithoutAuth(), rest.WithoutRetry()); err != nil {
		c.becomeAnonymous(true)
		return "", errs.Wrapf(errs.ErrSessionExpired, "refresh rejected: %s", err.Error())
	}
	if tokens.Access == "" {
		c.becomeAnonymous(true)
		return "", errs.Wrapf(errs.ErrSessionExpired, "refresh returned no access token")
	}

	pair.Access = tokens.Access
	if tokens.Refresh != "" {
		pair.Refresh = tokens.Refresh
	}
	if err := c.store.Save(pair); err != nil {
		c.becomeAnonymous(true)
		return "", errs.Wrapf(errs.ErrSessionExpired, "persisting refreshed token: %s", err.Error())
	}

	c.setAccess(tokens.Access)
	c.logger.Debug().Msg("access token refreshed")
	return tokens.Access, nil
}

// LoadProfile fetches the profile named by the access token's user_id claim
// and projects the role flags from it. On any failure the session is torn
// down: the app must never stay authenticated without a profile.
func (c *Controller) LoadProfile(ctx context.Context) error {
	claims, err := token.Decode(c.AccessToken())
	if err != nil {
		c.becomeAnonymous(true)
		return errs.Wrapf(errs.ErrProfileLoad, "decoding user id: %s", err.Error())
	}

	profile, err := c.usersAPI.Get(ctx, claims.UserID)
	if err != nil {
		c.becomeAnonymous(true)
		return errs.Wrapf(errs.ErrProfileLoad, "fetching profile %d: %s", claims.UserID, err.Error())
	}

	c.mu.Lock()
	c.profile = profile
	c.flags = RoleFlags{
		IsOwner:        profile.IsOwner,
		IsStaff:        profile.IsStaff,
		IsProfessional: profile.IsProfessional,
		IsSecretary:    profile.IsSecretary,
	}
	c.mu.Unlock()

	c.logger.Debug().Int64("user_id", profile.ID).Str("username", profile.Username).Msg("profile loaded")
	return nil
}

// AccessToken implements rest.TokenProvider.
func (c *Controller) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.access
}

func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

func (c *Controller) IsAuthenticated() bool {
	return c.Status() == StatusAuthenticated
}

// Profile returns the last loaded profile, or nil when anonymous or the
// profile fetch has not completed.
func (c *Controller) Profile() *users.Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.profile == nil {
		return nil
	}
	copied := *c.profile
	return &copied
}

func (c *Controller) Roles() RoleFlags {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.flags
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (c *Controller) setStatus(status Status) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}

func (c *Controller) setAccess(accessToken string) {
	c.mu.Lock()
	c.access = accessToken
	c.mu.Unlock()
}

// becomeAnonymous resets all session state together. clearStore is false
// only when storage itself was the thing that failed.
func (c *Controller) becomeAnonymous(clearStore bool) {
	if clearStore {
		if err := c.store.Clear(); err != nil {
			c.logger.Warn().Err(err).Msg("clearing token store failed")
		}
	}

	c.mu.Lock()
	wasAuthenticated := c.status == StatusAuthenticated
	c.status = StatusAnonymous
	c.access = ""
	c.profile = nil
	c.flags = RoleFlags{}
	c.mu.Unlock()

	if wasAuthenticated {
		c.logger.Info().Msg("session ended")
	}
}
