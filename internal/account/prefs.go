// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package account

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/orquideira/pkg/types"
)

// PrefsFile is the file name of the notification preferences.
const PrefsFile = "notifications.yaml"

// ErrUnknownPref is returned by SetPref for a name not in Prefs.
var ErrUnknownPref = errors.New("unknown notification preference")

// Pref describes one notification toggle.
type Pref struct {
	Key         string
	Label       string
	Description string
	get         func(*types.NotificationPrefs) *bool
}

// Prefs lists the toggles in display order.
var Prefs = []Pref{
	{"new-citations", "Novas citações", "Notificar quando seus trabalhos forem citados",
		func(p *types.NotificationPrefs) *bool { return &p.NewCitations }},
	{"new-publications", "Novas publicações", "Notificar sobre novas publicações de pesquisadores que você segue",
		func(p *types.NotificationPrefs) *bool { return &p.NewPublications }},
	{"new-followers", "Novos seguidores", "Notificar quando alguém seguir seu perfil",
		func(p *types.NotificationPrefs) *bool { return &p.NewFollowers }},
	{"related-papers", "Artigos relacionados", "Notificar sobre novos artigos relacionados aos seus interesses",
		func(p *types.NotificationPrefs) *bool { return &p.RelatedPapers }},
	{"email-digest", "Resumo por email", "Receber um resumo semanal das atividades por email",
		func(p *types.NotificationPrefs) *bool { return &p.EmailDigest }},
}

// Value returns the toggle's state in p.
func (d Pref) Value(p types.NotificationPrefs) bool { return *d.get(&p) }

// SetPref sets the toggle named key.
func SetPref(p *types.NotificationPrefs, key string, on bool) error {
	for _, d := range Prefs {
		if d.Key == key {
			*d.get(p) = on
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownPref, key)
}

// PrefsStore keeps every user's preferences in one YAML file keyed by
// user id.
type PrefsStore struct {
	path string
	mu   sync.Mutex
}

// NewPrefsStore keeps preferences in dir.
func NewPrefsStore(dir string) *PrefsStore {
	return &PrefsStore{path: filepath.Join(dir, PrefsFile)}
}

// Load returns the preferences of userID, or the defaults when none were
// saved.
func (s *PrefsStore) Load(userID string) (types.NotificationPrefs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return types.NotificationPrefs{}, err
	}
	if p, ok := all[userID]; ok {
		return p, nil
	}
	return types.DefaultNotificationPrefs(), nil
}

// Save stores the preferences of userID.
func (s *PrefsStore) Save(userID string, p types.NotificationPrefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return err
	}
	all[userID] = p

	data, err := yaml.Marshal(all)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}

func (s *PrefsStore) readAll() (map[string]types.NotificationPrefs, error) {
	all := map[string]types.NotificationPrefs{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return all, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parsing preferences %s: %w", s.path, err)
	}
	if all == nil {
		all = map[string]types.NotificationPrefs{}
	}
	return all, nil
}
