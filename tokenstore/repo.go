package tokenstore

// TokenPair holds the credentials the backend issues at login. The access
// token is a short-lived JWT attached to API requests; the refresh token is
// only ever posted to the refresh endpoint, never used as a bearer
// credential.
type TokenPair struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

// Repo defines durable storage for the token pair. Implementations do no
// validation and no network access, they are pure persistence. Absence of a
// stored pair is reported with errors.ErrNoTokens so callers can treat it as
// "no session" rather than a failure.
type Repo interface {
	// Save persists the pair, replacing any previous one
	Save(pair *TokenPair) error

	// Load retrieves the stored pair, or ErrNoTokens when none exists
	Load() (*TokenPair, error)

	// Clear removes any stored pair. Clearing an empty store is a no-op
	Clear() error
}
