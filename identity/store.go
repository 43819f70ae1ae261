// Package identity keeps registered accounts and the current session.
//
// Passwords are stored and compared as plain text. This is a demo fixture,
// not an authentication boundary.
package identity

import (
	"fmt"

	"delivery-chain/id"
	"delivery-chain/models"
)

// Store is not safe for concurrent use; the session facade serializes access.
type Store struct {
	accounts []models.Account
	current  *models.User
	newID    func() string
}

type Option func(*Store)

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore starts from persisted accounts (registration order) and an
// optional persisted session.
func NewStore(accounts []models.Account, current *models.User, opts ...Option) *Store {
	s := &Store{
		accounts: append([]models.Account(nil), accounts...),
		newID:    id.NewAccountID,
	}
	if current != nil {
		u := *current
		s.current = &u
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DemoAccounts is the first-run fixture: one customer and one rider with
// well-known credentials.
func DemoAccounts() []models.Account {
	return []models.Account{
		{
			ID:       "demo-customer",
			Email:    "customer@demo.com",
			Password: "customer123",
			Name:     "Demo Customer",
			Role:     models.RoleCustomer,
		},
		{
			ID:       "demo-rider",
			Email:    "rider@demo.com",
			Password: "rider123",
			Name:     "Demo Rider",
			Role:     models.RoleRider,
		},
	}
}

// Register creates an account and makes it the session. A taken email
// leaves both the accounts and the session untouched.
func (s *Store) Register(email, password, name string, role models.UserRole) (models.User, error) {
	if !role.Valid() {
		return models.User{}, fmt.Errorf("register %q: %w", role, models.ErrInvalidRole)
	}
	for _, a := range s.accounts {
		if a.Email == email {
			return models.User{}, models.ErrEmailTaken
		}
	}

	acc := models.Account{
		ID:       s.newID(),
		Email:    email,
		Password: password,
		Name:     name,
		Role:     role,
	}
	s.accounts = append(s.accounts, acc)

	u := acc.User()
	s.current = &u
	return u, nil
}

// Authenticate opens a session on an exact email and password match.
func (s *Store) Authenticate(email, password string) (models.User, error) {
	for _, a := range s.accounts {
		if a.Email == email && a.Password == password {
			u := a.User()
			s.current = &u
			return u, nil
		}
	}
	return models.User{}, models.ErrInvalidCredentials
}

// EndSession clears the session. Calling it with no session is fine.
func (s *Store) EndSession() {
	s.current = nil
}

// Current returns the session account.
func (s *Store) Current() (models.User, bool) {
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// Accounts lists every account without passwords.
func (s *Store) Accounts() []models.User {
	out := make([]models.User, len(s.accounts))
	for i, a := range s.accounts {
		out[i] = a.User()
	}
	return out
}

// Snapshot returns the full account records for persistence.
func (s *Store) Snapshot() []models.Account {
	return append([]models.Account(nil), s.accounts...)
}
