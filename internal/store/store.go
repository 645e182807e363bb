// Package store holds the client-side mirrors of server resources: one
// state container per entity kind, each exposing CRUD operations that call
// the backend and reconcile the local list afterwards. Mutation is
// confirm-then-apply: the local list changes only after the server has
// accepted the operation, and always with the server's returned entity so
// server-assigned fields (id, timestamps) are picked up.
package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/maraki-learning/adminctl/internal/apiclient"
)

// Entity is anything with a stable server-assigned identifier.
type Entity interface {
	EntityID() string
}

// Filters is the client-side filter criteria: free-text search plus
// enumerated equality filters, combined with AND. An empty value matches
// everything.
type Filters struct {
	Search     string
	Category   string
	Type       string
	Difficulty string
	Status     string
	Role       string
}

// FilterPatch is a partial Filters; nil fields leave the existing value
// untouched.
type FilterPatch struct {
	Search     *string
	Category   *string
	Type       *string
	Difficulty *string
	Status     *string
	Role       *string
}

// MatchFunc decides whether an entity passes the current filters.
type MatchFunc[T Entity] func(T, Filters) bool

// Store is the shared state container behind the users, quizzes and
// materials stores. Items keep the server's order; duplicates by id are
// not expected and not defended against.
type Store[T Entity] struct {
	mu        sync.Mutex
	items     []T
	selected  *T
	filters   Filters
	isLoading bool
	err       string

	match MatchFunc[T]
	log   zerolog.Logger
}

// newStore builds the shared core for a concrete resource store.
func newStore[T Entity](match MatchFunc[T], name string, log zerolog.Logger) *Store[T] {
	return &Store[T]{
		match: match,
		log:   log.With().Str("store", name).Logger(),
	}
}

// Items returns a copy of the loaded entity list.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Selected returns a copy of the selected entity, or nil.
func (s *Store[T]) Selected() *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	e := *s.selected
	return &e
}

// Select sets the selected entity, used to prefill edit forms and confirm
// deletions.
func (s *Store[T]) Select(e T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &e
}

// ClearSelected drops the selection.
func (s *Store[T]) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// IsLoading reports whether an operation is in flight.
func (s *Store[T]) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// Err returns the current error message, empty when the last operation
// succeeded.
func (s *Store[T]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Filters returns the current filter criteria.
func (s *Store[T]) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters shallow-merges the patch into the current criteria. It never
// refetches: filtering is applied client-side over the loaded items.
func (s *Store[T]) SetFilters(patch FilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Search != nil {
		s.filters.Search = *patch.Search
	}
	if patch.Category != nil {
		s.filters.Category = *patch.Category
	}
	if patch.Type != nil {
		s.filters.Type = *patch.Type
	}
	if patch.Difficulty != nil {
		s.filters.Difficulty = *patch.Difficulty
	}
	if patch.Status != nil {
		s.filters.Status = *patch.Status
	}
	if patch.Role != nil {
		s.filters.Role = *patch.Role
	}
}

// Filtered returns the loaded items that pass the current filters, in
// load order.
func (s *Store[T]) Filtered() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(s.items))
	for _, e := range s.items {
		if s.match == nil || s.match(e, s.filters) {
			out = append(out, e)
		}
	}
	return out
}

// ─── Mutation helpers used by the concrete stores ───────────────────────

// begin marks an operation in flight and clears the previous error.
func (s *Store[T]) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = true
	s.err = ""
}

// failOp records the failure message and returns the original error. The
// loaded items are left untouched.
func (s *Store[T]) failOp(err error, fallback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	s.err = apiclient.ErrorMessage(err, fallback)
	s.log.Debug().Err(err).Str("message", s.err).Msg("Operation failed")
	return err
}

// settle marks a successful operation that changed no local state.
func (s *Store[T]) settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	s.err = ""
}

// replaceAll swaps in a freshly fetched list wholesale.
func (s *Store[T]) replaceAll(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.isLoading = false
	s.err = ""
	s.log.Debug().Int("count", len(items)).Msg("List replaced")
}

// setSelected records a fetched entity as the selection without touching
// the list.
func (s *Store[T]) setSelected(e T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &e
	s.isLoading = false
	s.err = ""
}

// prepend puts a server-confirmed creation at the front of the list.
func (s *Store[T]) prepend(e T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T{e}, s.items...)
	s.isLoading = false
	s.err = ""
}

// replaceByID swaps the matching element for the server's updated entity,
// refreshing the selection too when it points at the same id.
func (s *Store[T]) replaceByID(e T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].EntityID() == e.EntityID() {
			s.items[i] = e
			break
		}
	}
	if s.selected != nil && (*s.selected).EntityID() == e.EntityID() {
		s.selected = &e
	}
	s.isLoading = false
	s.err = ""
}

// removeByID drops the matching element, clearing the selection when it
// pointed at the removed id so no dangling reference survives.
func (s *Store[T]) removeByID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, e := range s.items {
		if e.EntityID() != id {
			kept = append(kept, e)
		}
	}
	s.items = kept
	if s.selected != nil && (*s.selected).EntityID() == id {
		s.selected = nil
	}
	s.isLoading = false
	s.err = ""
}

// containsFold is the free-text search primitive: case-insensitive
// substring match.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// firstField picks a stable representative message from a field-error map
// for the store's single error string.
func firstField(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		return fields[k]
	}
	return ""
}
