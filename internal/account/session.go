// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/orquideira/pkg/types"
)

// SessionKey is the file name of the persisted signed-in user.
const SessionKey = "tea_user.json"

// KeyStore persists the signed-in user's profile as one JSON file.
type KeyStore struct {
	path string
}

// NewKeyStore keeps the session key in dir.
func NewKeyStore(dir string) *KeyStore {
	return &KeyStore{path: filepath.Join(dir, SessionKey)}
}

// Path returns the session file path.
func (k *KeyStore) Path() string { return k.path }

// Load returns the stored user, or nil when there is none. A key that
// cannot be decoded is removed and treated as absent.
func (k *KeyStore) Load() (*types.User, error) {
	data, err := os.ReadFile(k.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session key: %w", err)
	}

	var u types.User
	if err := json.Unmarshal(data, &u); err != nil || u.ID == "" {
		logrus.WithField("path", k.path).Warn("discarding unreadable session key")
		if err := k.Remove(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &u, nil
}

// Save writes u, replacing any previous key.
func (k *KeyStore) Save(u types.User) error {
	if err := os.MkdirAll(filepath.Dir(k.path), 0o700); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding session key: %w", err)
	}
	tmp := k.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session key: %w", err)
	}
	return os.Rename(tmp, k.path)
}

// Remove deletes the key. A missing key is not an error.
func (k *KeyStore) Remove() error {
	if err := os.Remove(k.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session key: %w", err)
	}
	return nil
}

// Session is the signed-in state of one process. Call Init once at start
// to pick up a previously persisted user.
type Session struct {
	dir  *Directory
	keys *KeyStore

	mu   sync.RWMutex
	user *types.User
}

// NewSession returns a signed-out session.
func NewSession(dir *Directory, keys *KeyStore) *Session {
	return &Session{dir: dir, keys: keys}
}

// Init loads the persisted user, if any.
func (s *Session) Init() error {
	u, err := s.keys.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	return nil
}

// Login signs in with an email or ORCID iD and persists the user.
func (s *Session) Login(identifier, password string) (types.User, error) {
	u, err := s.dir.Authenticate(identifier, password)
	if err != nil {
		return types.User{}, err
	}
	return u, s.signIn(u)
}

// Register creates an account and signs it in.
func (s *Session) Register(req RegisterRequest) (types.User, error) {
	u, err := s.dir.Register(req)
	if err != nil {
		return types.User{}, err
	}
	return u, s.signIn(u)
}

func (s *Session) signIn(u types.User) error {
	if err := s.keys.Save(u); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	return nil
}

// Logout clears the in-memory user and removes the persisted key.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return s.keys.Remove()
}

// Current returns the signed-in user.
func (s *Session) Current() (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return types.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}
