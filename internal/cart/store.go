package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/foodhubhq/storefront-gateway/pkg/logger"
	"github.com/foodhubhq/storefront-gateway/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Store holds the line items for the active owner scope and keeps them
// durably persisted across restarts. One Store is created at boot and
// lives for the process lifetime; all reads and writes of cart state go
// through its methods.
//
// Mutations are serialized by an internal mutex and never fail: a storage
// write error is contained (logged, counted) and the in-memory lines stay
// authoritative for the rest of the session.
//
// Concurrent callers acting for different owners must not use the bare
// Store methods, which act on whichever scope happens to be active.
// They go through For, whose Scope binds the owner and performs each
// operation inside a single lock hold.
type Store struct {
	mu      sync.Mutex
	baseKey string
	storage Storage
	logg    *logger.Logger
	metrics *metrics.CartMetrics

	owner string
	lines []Line
}

// NewStore builds the store and loads the anonymous scope, mirroring a
// fresh visitor with no session.
func NewStore(ctx context.Context, baseKey string, storage Storage, logg *logger.Logger, m *metrics.CartMetrics) *Store {
	s := &Store{
		baseKey: baseKey,
		storage: storage,
		logg:    logg,
		metrics: m,
	}
	s.lines = s.load(ctx, "")
	return s
}

// Scope is an owner-bound handle on the store. Every operation re-binds
// its owner and runs the whole read or mutation under one lock
// acquisition, so an owner switch from a concurrent request can never
// slip between the bind and the mutation and land lines in the wrong
// scope or under the wrong storage key.
type Scope struct {
	store *Store
	owner string
}

// For returns a handle whose operations always act on the given owner's
// scope, regardless of which scope other callers activate in between.
func (s *Store) For(owner string) Scope {
	return Scope{store: s, owner: owner}
}

// SetOwner switches the active owner scope. Redundant calls with the
// current owner are no-ops so an in-progress cart is never wiped by a
// repeated session signal. On a real switch the visible lines are swapped
// atomically for the new owner's persisted lines (empty if none exist);
// the previous owner's lines stay retrievable under their own key.
func (s *Store) SetOwner(ctx context.Context, owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setOwnerLocked(ctx, owner)
}

// Owner returns the active owner scope ("" for anonymous).
func (s *Store) Owner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// AddItem merges quantity into an existing line for the same meal, or
// appends a new line. Quantities are not clamped here; the HTTP layer
// enforces the per-line maximum.
func (s *Store) AddItem(ctx context.Context, item Item, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addItemLocked(ctx, item, quantity)
}

// UpdateQuantity sets (not increments) the line's quantity. Zero or
// negative removes the line. An absent meal id is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, mealID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateQuantityLocked(ctx, mealID, quantity)
}

// RemoveItem drops the line if present; absent ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, mealID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeItemLocked(ctx, mealID)
}

// Clear empties the active owner's lines. The persisted entry is emptied,
// not removed, so the scope remains materialized.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked(ctx)
}

// Lines returns a copy of the active owner's line list.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linesLocked()
}

// Total sums unit price times quantity across all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// TotalItems sums quantities across all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// AddItem binds the scope's owner and merges or appends the line without
// releasing the lock in between.
func (sc Scope) AddItem(ctx context.Context, item Item, quantity int) {
	st := sc.store
	st.mu.Lock()
	defer st.mu.Unlock()
	st.setOwnerLocked(ctx, sc.owner)
	st.addItemLocked(ctx, item, quantity)
}

// UpdateQuantity binds the scope's owner and applies the set-or-remove
// semantics of Store.UpdateQuantity.
func (sc Scope) UpdateQuantity(ctx context.Context, mealID string, quantity int) {
	st := sc.store
	st.mu.Lock()
	defer st.mu.Unlock()
	st.setOwnerLocked(ctx, sc.owner)
	st.updateQuantityLocked(ctx, mealID, quantity)
}

// RemoveItem binds the scope's owner and drops the line if present.
func (sc Scope) RemoveItem(ctx context.Context, mealID string) {
	st := sc.store
	st.mu.Lock()
	defer st.mu.Unlock()
	st.setOwnerLocked(ctx, sc.owner)
	st.removeItemLocked(ctx, mealID)
}

// Clear binds the scope's owner and empties its lines.
func (sc Scope) Clear(ctx context.Context) {
	st := sc.store
	st.mu.Lock()
	defer st.mu.Unlock()
	st.setOwnerLocked(ctx, sc.owner)
	st.clearLocked(ctx)
}

// Lines binds the scope's owner and returns a copy of its line list.
func (sc Scope) Lines(ctx context.Context) []Line {
	st := sc.store
	st.mu.Lock()
	defer st.mu.Unlock()
	st.setOwnerLocked(ctx, sc.owner)
	return st.linesLocked()
}

func (s *Store) setOwnerLocked(ctx context.Context, owner string) {
	if owner == s.owner {
		return
	}
	s.owner = owner
	s.lines = s.load(ctx, owner)
}

func (s *Store) addItemLocked(ctx context.Context, item Item, quantity int) {
	if quantity <= 0 {
		return
	}

	merged := false
	for i := range s.lines {
		if s.lines[i].MealID == item.MealID {
			s.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, Line{
			MealID:    item.MealID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  quantity,
			Image:     item.Image,
		})
	}

	s.metrics.IncOperation("add_item")
	s.persist(ctx)
}

func (s *Store) updateQuantityLocked(ctx context.Context, mealID string, quantity int) {
	idx := -1
	for i := range s.lines {
		if s.lines[i].MealID == mealID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	if quantity <= 0 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	} else {
		s.lines[idx].Quantity = quantity
	}

	s.metrics.IncOperation("update_quantity")
	s.persist(ctx)
}

func (s *Store) removeItemLocked(ctx context.Context, mealID string) {
	for i := range s.lines {
		if s.lines[i].MealID == mealID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.metrics.IncOperation("remove_item")
			s.persist(ctx)
			return
		}
	}
}

func (s *Store) clearLocked(ctx context.Context) {
	s.lines = nil
	s.metrics.IncOperation("clear")
	s.persist(ctx)
}

func (s *Store) linesLocked() []Line {
	copied := make([]Line, len(s.lines))
	copy(copied, s.lines)
	return copied
}

// load reads the persisted lines for an owner scope. Storage and decode
// failures degrade to an empty cart rather than surfacing an error.
func (s *Store) load(ctx context.Context, owner string) []Line {
	raw, err := s.storage.GetItem(ctx, deriveKey(s.baseKey, owner))
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithOwnerID(ctx, owner), "cart load failed, starting empty")
		}
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithOwnerID(ctx, owner), "cart entry corrupt, starting empty")
		}
		return nil
	}
	return lines
}

// persist writes the current lines best-effort. Callers hold the mutex.
func (s *Store) persist(ctx context.Context) {
	lines := s.lines
	if lines == nil {
		lines = []Line{}
	}
	encoded, err := json.Marshal(lines)
	if err != nil {
		s.reportPersistFailure(ctx, err)
		return
	}
	if err := s.storage.SetItem(ctx, deriveKey(s.baseKey, s.owner), encoded); err != nil {
		s.reportPersistFailure(ctx, err)
	}
}

func (s *Store) reportPersistFailure(ctx context.Context, err error) {
	s.metrics.IncPersistFailure()
	if s.logg != nil {
		ctx = s.logg.WithOwnerID(ctx, s.owner)
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart persist failed, memory state kept")
	}
}
