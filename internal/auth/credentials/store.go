package credentials

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var ErrNotFound = errors.New("principal not found")

// Store looks up principals by their exact, case-sensitive id.
type Store interface {
	Lookup(ctx context.Context, id string) (*Principal, error)
}

// StaticStore is a read-only Store built once at startup.
type StaticStore struct {
	principals map[string]*Principal
}

// NewStaticStore indexes the given principals by id.
// Ids must be unique and every principal needs a verifier.
func NewStaticStore(list ...Principal) (*StaticStore, error) {
	m := make(map[string]*Principal, len(list))
	for i := range list {
		p := list[i]
		if p.ID == "" {
			return nil, errors.New("credentials: principal id must not be empty")
		}
		if p.Verifier == "" {
			return nil, fmt.Errorf("credentials: principal %q has no verifier", p.ID)
		}
		if _, dup := m[p.ID]; dup {
			return nil, fmt.Errorf("credentials: duplicate principal %q", p.ID)
		}
		m[p.ID] = p.clone()
	}
	return &StaticStore{principals: m}, nil
}

// Lookup returns a copy of the principal, so callers cannot mutate the store.
func (s *StaticStore) Lookup(_ context.Context, id string) (*Principal, error) {
	p, ok := s.principals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.clone(), nil
}

// Len returns the number of configured principals.
func (s *StaticStore) Len() int {
	return len(s.principals)
}

// LegacyVerifiers returns, sorted, the ids whose verifiers NeedsUpgrade.
func (s *StaticStore) LegacyVerifiers() []string {
	var ids []string
	for id, p := range s.principals {
		if NeedsUpgrade(p.Verifier) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
