// Package store implements the in-memory user and challenge tables backing
// the authentication service: two maps guarded by a single mutex, in the
// shape of the reference key-value stores this project's database layer was
// built on, but holding opaque encoded point bytes rather than tree nodes.
package store

import (
	"sync"

	"github.com/google/uuid"
)

func dup(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// User is a registered account: the two points proving knowledge of a secret
// scalar, plus the commitment randomness points of any outstanding
// challenge. R1/R2 are nil whenever no challenge is in flight.
type User struct {
	Username string
	Y1, Y2   []byte
	R1, R2   []byte
}

func (u *User) clone() *User {
	if u == nil {
		return nil
	}
	return &User{
		Username: u.Username,
		Y1:       dup(u.Y1),
		Y2:       dup(u.Y2),
		R1:       dup(u.R1),
		R2:       dup(u.R2),
	}
}

// Challenge is a single outstanding proof request, keyed by its auth_id.
type Challenge struct {
	User string
	C    []byte
}

func (c *Challenge) clone() *Challenge {
	if c == nil {
		return nil
	}
	return &Challenge{User: c.User, C: dup(c.C)}
}

// Store is the concurrent key-value store described for the authentication
// service: a username->User map and an auth_id->Challenge map, guarded by a
// single mutex. Splitting the two maps behind independent locks would also
// satisfy the contract; one lock is simplest and is what's used here.
type Store struct {
	mu         sync.Mutex
	users      map[string]*User
	challenges map[string]*Challenge
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:      make(map[string]*User),
		challenges: make(map[string]*Challenge),
	}
}

// CreateUser inserts or overwrites the record for u.Username, clearing any
// in-flight challenge's r1/r2 (registration always starts a user fresh).
func (s *Store) CreateUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Username] = &User{
		Username: u.Username,
		Y1:       dup(u.Y1),
		Y2:       dup(u.Y2),
	}
}

// ReadUser returns a copy of the record for username, or nil if absent.
func (s *Store) ReadUser(username string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[username].clone()
}

// updateUserLocked is the UpdateUser body factored out so CreateChallenge can
// share it from within its own critical section, instead of mutating the
// stored record's fields directly.
func (s *Store) updateUserLocked(u *User) bool {
	if _, ok := s.users[u.Username]; !ok {
		return false
	}
	s.users[u.Username] = u.clone()
	return true
}

// UpdateUser overwrites the record for u.Username in place. It reports false
// if no such user exists.
func (s *Store) UpdateUser(u *User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateUserLocked(u)
}

// DeleteUser removes and returns the record for username, or nil if absent.
func (s *Store) DeleteUser(username string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[username]
	delete(s.users, username)
	return u.clone()
}

// CreateChallenge stores r1, r2 against the named user and allocates a fresh
// auth_id for a new Challenge{user, c}. It reports false if the user does
// not exist; no challenge is created in that case.
func (s *Store) CreateChallenge(username string, r1, r2, c []byte) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return "", false
	}
	updated := u.clone()
	updated.R1, updated.R2 = dup(r1), dup(r2)
	s.updateUserLocked(updated)

	authID := uuid.New().String()
	s.challenges[authID] = &Challenge{User: username, C: dup(c)}
	return authID, true
}

// GetChallenge returns a copy of the challenge registered under id, or nil.
func (s *Store) GetChallenge(id string) *Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.challenges[id].clone()
}

// DeleteChallenge removes the challenge registered under id, if any.
func (s *Store) DeleteChallenge(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, id)
}

// FetchAndConsumeChallenge atomically looks up the challenge for id, deletes
// it, and returns the challenge together with the user record it names (nil
// if that user has since been deleted). Bundling lookup, user fetch, and
// deletion under one critical section closes the narrow re-acquire race the
// reference implementation leaves open between fetching the challenge and
// fetching its user. The stored user's r1/r2 are cleared in the same critical
// section; the returned copy still carries them for verification.
func (s *Store) FetchAndConsumeChallenge(id string) (*Challenge, *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[id]
	if !ok {
		return nil, nil
	}
	delete(s.challenges, id)
	u := s.users[ch.User].clone()
	if u != nil {
		cleared := u.clone()
		cleared.R1, cleared.R2 = nil, nil
		s.updateUserLocked(cleared)
	}
	return ch.clone(), u
}
