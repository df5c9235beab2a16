package memorystate

import (
	"context"
	"sort"
	"sync"

	"room-decorator/internal/repository"
)

// Store is an in-process implementation of the repository.Store contract.
// It backs tests and the redis-less development mode. Ordering semantics
// match the redis store: descending ranges order by score descending,
// then member ascending.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	sets   map[string]map[string]struct{}
	sorted map[string]map[string]float64
}

// NewStore creates an empty in-memory Store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]string),
		sets:   make(map[string]map[string]struct{}),
		sorted: make(map[string]map[string]float64),
	}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return value, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *Store) AddToSet(_ context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	for _, m := range members {
		set[m] = struct{}{}
	}
	return nil
}

func (s *Store) RemoveFromSet(_ context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[key]
	if !ok {
		return nil
	}
	for _, m := range members {
		delete(set, m)
	}
	return nil
}

func (s *Store) SetMembers(_ context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.sets[key]
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	sort.Strings(members)
	return members, nil
}

func (s *Store) IsSetMember(_ context.Context, key, member string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sets[key][member]
	return ok, nil
}

func (s *Store) AddScored(_ context.Context, key, member string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, ok := s.sorted[key]
	if !ok {
		zset = make(map[string]float64)
		s.sorted[key] = zset
	}
	zset[member] = score
	return nil
}

func (s *Store) IncrementScore(_ context.Context, key, member string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, ok := s.sorted[key]
	if !ok {
		zset = make(map[string]float64)
		s.sorted[key] = zset
	}
	zset[member] += delta
	return zset[member], nil
}

func (s *Store) RemoveScored(_ context.Context, key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if zset, ok := s.sorted[key]; ok {
		delete(zset, member)
	}
	return nil
}

func (s *Store) rankedMembers(key string) []string {
	zset := s.sorted[key]
	members := make([]string, 0, len(zset))
	for m := range zset {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		si, sj := zset[members[i]], zset[members[j]]
		if si != sj {
			return si > sj
		}
		return members[i] < members[j]
	})
	return members
}

func (s *Store) RangeDescending(_ context.Context, key string, start, stop int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := s.rankedMembers(key)
	n := int64(len(members))
	if stop < 0 {
		stop = n + stop
	}
	if start < 0 {
		start = 0
	}
	if start >= n || stop < start {
		return []string{}, nil
	}
	if stop >= n {
		stop = n - 1
	}
	return members[start : stop+1], nil
}

func (s *Store) RankDescending(_ context.Context, key, member string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, m := range s.rankedMembers(key) {
		if m == member {
			return int64(i), nil
		}
	}
	return 0, repository.ErrNotFound
}
