package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	errs "github.com/sentirsebien/go-client/internal/errors"
)

const (
	tokensFileName = "tokens"
	keyFileName    = "tokens.key"
)

// FileRepo stores the token pair in a file under the app's data folder,
// sealed with an installation-local key so tokens are not readable at rest.
type FileRepo struct {
	tokensPath string
	keyPath    string
}

var _ Repo = (*FileRepo)(nil)

// NewFileRepo creates a file-backed token store rooted at folder. An empty
// folder resolves to "<user config dir>/sentirsebien".
func NewFileRepo(folder string) (*FileRepo, error) {
	if folder == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "[NewFileRepo] no user config dir")
		}
		folder = filepath.Join(configDir, "sentirsebien")
	}
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, errors.Wrap(err, "[NewFileRepo] create data folder")
	}
	return &FileRepo{
		tokensPath: filepath.Join(folder, tokensFileName),
		keyPath:    filepath.Join(folder, keyFileName),
	}, nil
}

func (r *FileRepo) Save(pair *TokenPair) error {
	if pair == nil {
		return errors.New("[FileRepo.Save] nil token pair")
	}

	plaintext, err := json.Marshal(pair)
	if err != nil {
		return errors.Wrap(err, "[FileRepo.Save] marshal")
	}

	key, err := r.loadOrCreateKey()
	if err != nil {
		return errors.Wrap(err, "[FileRepo.Save] key")
	}

	sealed, err := seal(key, plaintext)
	if err != nil {
		return errors.Wrap(err, "[FileRepo.Save] seal")
	}

	if err := os.WriteFile(r.tokensPath, sealed, 0o600); err != nil {
		return errors.Wrap(err, "[FileRepo.Save] write")
	}
	return nil
}

func (r *FileRepo) Load() (*TokenPair, error) {
	sealed, err := os.ReadFile(r.tokensPath)
	if os.IsNotExist(err) {
		return nil, errs.ErrNoTokens
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileRepo.Load] read")
	}

	key, err := r.loadOrCreateKey()
	if err != nil {
		return nil, errors.Wrap(err, "[FileRepo.Load] key")
	}

	plaintext, err := open(key, sealed)
	if err != nil {
		// An undecipherable file is as good as no file: treat it as an
		// absent session rather than a hard failure.
		return nil, errs.Wrapf(errs.ErrNoTokens, "unreadable token file")
	}

	pair := &TokenPair{}
	if err := json.Unmarshal(plaintext, pair); err != nil {
		return nil, errs.Wrapf(errs.ErrNoTokens, "corrupt token file")
	}
	if pair.Access == "" && pair.Refresh == "" {
		return nil, errs.ErrNoTokens
	}
	return pair, nil
}

func (r *FileRepo) Clear() error {
	if err := os.Remove(r.tokensPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileRepo.Clear] remove")
	}
	return nil
}
