// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package account is the authentication stub: a small in-memory user
// directory seeded with mock accounts, a local session key that remembers
// who is signed in, and per-user notification preferences. It performs no
// real credential verification against any external system.
package account

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/pdiddy/orquideira/pkg/types"
)

var (
	// ErrInvalidCredentials is returned when no account matches the
	// identifier and password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateUser is returned when registering an email already taken.
	ErrDuplicateUser = errors.New("an account with this email already exists")

	// ErrNotLoggedIn is returned by operations that need a signed-in user.
	ErrNotLoggedIn = errors.New("not logged in")
)

//go:embed users.yaml
var seedUsers []byte

type seedUser struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	ORCID    string `yaml:"orcid_id"`
	Password string `yaml:"password"`
	Avatar   string `yaml:"avatar"`
}

type account struct {
	user types.User
	hash []byte
}

// Directory holds the known accounts. It is safe for concurrent use.
type Directory struct {
	cost int

	mu       sync.RWMutex
	accounts []account
}

// NewDirectory returns a directory holding the seed accounts. cost is the
// bcrypt cost; values below bcrypt.MinCost use bcrypt.DefaultCost.
func NewDirectory(cost int) (*Directory, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	var seeds []seedUser
	if err := yaml.Unmarshal(seedUsers, &seeds); err != nil {
		return nil, fmt.Errorf("parsing seed users: %w", err)
	}

	d := &Directory{cost: cost}
	for _, s := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %s: %w", s.Email, err)
		}
		d.accounts = append(d.accounts, account{
			user: types.User{ID: s.ID, Name: s.Name, Email: s.Email, ORCID: s.ORCID, Avatar: s.Avatar},
			hash: hash,
		})
	}
	return d, nil
}

// Authenticate returns the account whose email or ORCID iD equals
// identifier and whose password matches.
func (d *Directory) Authenticate(identifier, password string) (types.User, error) {
	identifier = strings.TrimSpace(identifier)

	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, a := range d.accounts {
		if !strings.EqualFold(a.user.Email, identifier) && a.user.ORCID != identifier {
			continue
		}
		if bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil {
			return a.user, nil
		}
	}
	return types.User{}, ErrInvalidCredentials
}

// Register validates req and adds a new account. The new user's id is a
// random UUID.
func (d *Directory) Register(req RegisterRequest) (types.User, error) {
	if err := req.Validate(); err != nil {
		return types.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), d.cost)
	if err != nil {
		return types.User{}, fmt.Errorf("hashing password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.accounts {
		if strings.EqualFold(a.user.Email, req.Email) {
			return types.User{}, ErrDuplicateUser
		}
	}
	u := types.User{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(req.Name),
		Email:  req.Email,
		ORCID:  req.ORCID,
		Avatar: req.Avatar,
	}
	d.accounts = append(d.accounts, account{user: u, hash: hash})
	return u, nil
}

// Lookup returns the account with id.
func (d *Directory) Lookup(id string) (types.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, a := range d.accounts {
		if a.user.ID == id {
			return a.user, true
		}
	}
	return types.User{}, false
}
