package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps the catalog in process memory. The chat REPL and tests use it
// when no database is configured. Ids must be 24-hex to resolve, as with MongoRepository.
type MemoryRepository struct {
	mu          sync.RWMutex
	restaurants []Restaurant
	items       map[string]MenuItem
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository(restaurants []Restaurant, items []MenuItem) *MemoryRepository {
	m := &MemoryRepository{
		restaurants: make([]Restaurant, 0, len(restaurants)),
		items:       make(map[string]MenuItem, len(items)),
	}
	m.restaurants = append(m.restaurants, restaurants...)
	for _, it := range items {
		m.items[canonicalID(it.ID)] = it
	}
	return m
}

func (m *MemoryRepository) ListRestaurants(_ context.Context, limit, skip int) ([]Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if skip >= len(m.restaurants) {
		return []Restaurant{}, nil
	}
	end := len(m.restaurants)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	out := make([]Restaurant, end-skip)
	copy(out, m.restaurants[skip:end])
	return out, nil
}

func (m *MemoryRepository) CountRestaurants(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.restaurants)), nil
}

func (m *MemoryRepository) GetRestaurantByID(_ context.Context, id string) (*Restaurant, error) {
	if !IsObjectIDHex(id) {
		return nil, ErrNotFound
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.restaurants {
		if canonicalID(r.ID) == canonicalID(id) {
			rest := r
			return &rest, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) GetRestaurantByStoreID(_ context.Context, storeID string) (*Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.restaurants {
		if r.StoreID == storeID {
			rest := r
			return &rest, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) GetMenuItems(ctx context.Context, restaurantID string) ([]MenuItem, error) {
	r, err := m.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		return []MenuItem{}, nil
	}
	if len(r.Items) == 0 {
		if r.StoreID == "" {
			return []MenuItem{}, nil
		}
		return m.GetMenuItemsByStoreID(ctx, r.StoreID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]MenuItem, 0, len(r.Items))
	seen := make(map[string]bool, len(r.Items))
	for _, id := range r.Items {
		key := canonicalID(id)
		if it, ok := m.items[key]; ok && !seen[key] {
			seen[key] = true
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *MemoryRepository) GetMenuItemsByStoreID(_ context.Context, storeID string) ([]MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []MenuItem{}
	for _, it := range m.items {
		if it.StoreID == storeID {
			out = append(out, it)
		}
	}
	sortByID(out)
	return out, nil
}

func (m *MemoryRepository) GetItemByID(_ context.Context, id string) (*MenuItem, error) {
	if !IsObjectIDHex(id) {
		return nil, ErrNotFound
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[canonicalID(id)]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (m *MemoryRepository) GetItemsByIDs(_ context.Context, ids []string) ([]MenuItem, error) {
	for _, id := range ids {
		if !IsObjectIDHex(id) {
			return []MenuItem{}, nil
		}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []MenuItem{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		key := canonicalID(id)
		if it, ok := m.items[key]; ok && !seen[key] {
			seen[key] = true
			out = append(out, it)
		}
	}
	return out, nil
}

func sortByID(items []MenuItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
