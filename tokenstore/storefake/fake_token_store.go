package storefake

import (
	"sync"

	errs "github.com/sentirsebien/go-client/internal/errors"
	"github.com/sentirsebien/go-client/tokenstore"
)

var _ tokenstore.Repo = (*FakeTokenRepo)(nil)

// FakeTokenRepo is an in-memory token store for tests. Errs, when set, is
// returned from every operation to simulate unavailable storage.
type FakeTokenRepo struct {
	mu   sync.Mutex
	pair *tokenstore.TokenPair

	Errs error

	SaveCalls  int
	ClearCalls int
}

func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{}
}

func (r *FakeTokenRepo) Save(pair *tokenstore.TokenPair) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.SaveCalls++
	if r.Errs != nil {
		return r.Errs
	}
	copied := *pair
	r.pair = &copied
	return nil
}

func (r *FakeTokenRepo) Load() (*tokenstore.TokenPair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Errs != nil {
		return nil, r.Errs
	}
	if r.pair == nil {
		return nil, errs.ErrNoTokens
	}
	copied := *r.pair
	return &copied, nil
}

func (r *FakeTokenRepo) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ClearCalls++
	if r.Errs != nil {
		return r.Errs
	}
	r.pair = nil
	return nil
}
