// Package memory holds map-backed repositories used for local runs and tests.
package memory

import (
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

// Store is the shared state behind the memory repositories.
type Store struct {
	mu           sync.RWMutex
	users        map[string]entity.User
	listings     map[string]entity.Listing
	reviews      map[string]entity.Review
	reservations map[string]entity.Reservation
	faults       map[string]error
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]entity.User),
		listings:     make(map[string]entity.Listing),
		reviews:      make(map[string]entity.Review),
		reservations: make(map[string]entity.Reservation),
		faults:       make(map[string]error),
	}
}

// FailNext makes the next call of op return err. Operation names are
// "<collection>.<Method>", for example "reviews.DeleteReviewsByIDs".
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// fault consumes a pending failure for op. Caller holds the lock.
func (s *Store) fault(op string) error {
	if err, ok := s.faults[op]; ok {
		delete(s.faults, op)
		return err
	}
	return nil
}

// merge applies bson-keyed updates onto doc and decodes the result into out.
func merge(doc interface{}, updates map[string]interface{}, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return err
	}
	for k, v := range updates {
		m[k] = v
	}
	raw, err = bson.Marshal(m)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// without returns ids minus the members of drop, and how many were removed.
func without(ids []string, drop map[string]struct{}) ([]string, int) {
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := drop[id]; !ok {
			kept = append(kept, id)
		}
	}
	return kept, len(ids) - len(kept)
}

func paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
